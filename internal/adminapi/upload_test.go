package adminapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/partscatalog/internal/domain"
	"github.com/talkincode/partscatalog/internal/imagehost"
)

func multipartUpload(t *testing.T, token string, fileData []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "part.jpg")
	require.NoError(t, err)
	_, err = part.Write(fileData)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadImage(t *testing.T) {
	ts := newTestServer(t)
	data := []byte("fake-image-bytes")
	ts.uploader.On("Upload", mock.Anything, data).Return(&imagehost.UploadResult{
		URL:      "https://img.example.com/catalogo/abc.jpg",
		PublicID: "catalogo/abc",
	}, nil)

	rec := ts.do(multipartUpload(t, adminToken(t), data))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body imagehost.UploadResult
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "https://img.example.com/catalogo/abc.jpg", body.URL)
	assert.Equal(t, "catalogo/abc", body.PublicID)
	ts.uploader.AssertExpectations(t)
}

func TestUploadImageMissingFile(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := ts.do(req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	ts.uploader.AssertNotCalled(t, "Upload")
}

func TestUploadImageMissingCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.uploader.On("Upload", mock.Anything, mock.Anything).Return(nil, imagehost.ErrMissingCredentials)

	rec := ts.do(multipartUpload(t, adminToken(t), []byte("x")))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "credentials missing")
}

func TestExportProducts(t *testing.T) {
	ts := newTestServer(t)
	item := int64(7)
	ts.repo.On("ListAll", mock.Anything).Return([]domain.Product{
		{ID: 1, ItemNumber: &item, Description: "Pump", Tags: []string{"Volvo"}, IsAvailable: true},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products/export", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "products.xlsx")
	assert.NotZero(t, rec.Body.Len())
	ts.repo.AssertExpectations(t)
}

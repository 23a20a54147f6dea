package adminapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/partscatalog/internal/imagehost"
	"github.com/talkincode/partscatalog/internal/webserver"
	"go.uber.org/zap"
)

func (s *Server) uploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "A file is required for upload", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read uploaded file", nil)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read uploaded file", nil)
	}

	result, err := s.uploader.Upload(c.Request().Context(), data)
	if errors.Is(err, imagehost.ErrMissingCredentials) {
		return webserver.Fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Image host credentials missing", nil)
	}
	if err != nil {
		zap.L().Error("image upload failed", zap.Error(err))
		return webserver.Fail(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to upload image", nil)
	}

	return webserver.Created(c, result)
}

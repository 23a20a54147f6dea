package imagehost

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"
	"github.com/talkincode/partscatalog/config"
)

// ErrMissingCredentials is returned when the image host is not configured.
var ErrMissingCredentials = pkgerrors.New("image host credentials missing")

// UploadResult is the boundary contract with the image host.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Client uploads binary image data to the external image host.
type Client interface {
	Upload(ctx context.Context, data []byte) (*UploadResult, error)
}

// CloudinaryClient implements Client against the Cloudinary upload API.
type CloudinaryClient struct {
	cfg      config.ImageHostConfig
	endpoint string
}

func NewCloudinaryClient(cfg config.ImageHostConfig) *CloudinaryClient {
	return &CloudinaryClient{
		cfg:      cfg,
		endpoint: "https://api.cloudinary.com/v1_1",
	}
}

// SetEndpoint overrides the API endpoint (used in tests).
func (c *CloudinaryClient) SetEndpoint(endpoint string) {
	c.endpoint = strings.TrimRight(endpoint, "/")
}

// SignParams builds the request signature: the parameters sorted by name,
// joined as key=value pairs with &, with the API secret appended, hashed
// with SHA-1.
func SignParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

func (c *CloudinaryClient) Upload(ctx context.Context, data []byte) (*UploadResult, error) {
	if c.cfg.CloudName == "" || c.cfg.APIKey == "" || c.cfg.APISecret == "" {
		return nil, ErrMissingCredentials
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := SignParams(map[string]string{
		"folder":    c.cfg.Folder,
		"timestamp": timestamp,
	}, c.cfg.APISecret)

	var body []byte
	var code int

	err := gout.POST(fmt.Sprintf("%s/%s/image/upload", c.endpoint, c.cfg.CloudName)).
		WithContext(ctx).
		SetForm(gout.H{
			"file":      gout.FormMem(data),
			"api_key":   c.cfg.APIKey,
			"timestamp": timestamp,
			"folder":    c.cfg.Folder,
			"signature": signature,
		}).
		BindBody(&body).
		Code(&code).
		Do()

	var reply struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = jsoniter.Unmarshal(body, &reply)

	if reply.Error.Message != "" {
		return nil, pkgerrors.Errorf("image host upload failed: %s", reply.Error.Message)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "image host request")
	}
	if code < 200 || code >= 300 {
		return nil, pkgerrors.Errorf("image host upload failed: status %d", code)
	}
	if reply.SecureURL == "" {
		return nil, pkgerrors.New("image host returned no url")
	}

	return &UploadResult{URL: reply.SecureURL, PublicID: reply.PublicID}, nil
}

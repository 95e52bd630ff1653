package media

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/arya-5990/RoarFitnessAdmin/pkg/interfaces"
)

// DefaultFolder is where the console's images land on the media service.
const DefaultFolder = "fitmaker_blogs"

// ErrCredentialsMissing reports incomplete uploader credentials.
var ErrCredentialsMissing = errors.New("media: missing upload credentials")

// UploaderConfig carries the hosted media service account details. The
// signature covers the timestamp and destination folder; the secret never
// leaves the client.
type UploaderConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// BaseURL overrides the service endpoint, primarily for tests. The
	// cloud name is interpolated into the default when unset.
	BaseURL string
	// HTTPClient overrides the transport. Defaults to http.DefaultClient;
	// no explicit timeout is configured, failures surface however the
	// transport reports them.
	HTTPClient *http.Client
	// Clock overrides signature timestamps, for tests.
	Clock func() time.Time
}

// HTTPUploader implements interfaces.MediaUploader against the hosted image
// upload endpoint: a multipart POST carrying the binary content plus a
// SHA-1 signature over the sorted parameter pairs and the API secret.
type HTTPUploader struct {
	cfg    UploaderConfig
	client *http.Client
	now    func() time.Time
}

// NewHTTPUploader validates credentials and constructs the uploader.
func NewHTTPUploader(cfg UploaderConfig) (*HTTPUploader, error) {
	if strings.TrimSpace(cfg.CloudName) == "" ||
		strings.TrimSpace(cfg.APIKey) == "" ||
		strings.TrimSpace(cfg.APISecret) == "" {
		return nil, ErrCredentialsMissing
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &HTTPUploader{cfg: cfg, client: client, now: now}, nil
}

var _ interfaces.MediaUploader = (*HTTPUploader)(nil)

// Upload pushes the image and returns its durable URL.
func (u *HTTPUploader) Upload(ctx context.Context, req interfaces.MediaUploadRequest) (*interfaces.MediaUploadResult, error) {
	folder := req.Folder
	if folder == "" {
		folder = DefaultFolder
	}
	timestamp := strconv.FormatInt(u.now().Unix(), 10)
	signature := SignParams(map[string]string{
		"timestamp": timestamp,
		"folder":    folder,
	}, u.cfg.APISecret)

	name := req.Name
	if name == "" {
		name = "upload.jpg"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("media: build upload form: %w", err)
	}
	size, err := io.Copy(part, req.Content)
	if err != nil {
		return nil, fmt.Errorf("media: read upload content: %w", err)
	}
	for field, value := range map[string]string{
		"api_key":   u.cfg.APIKey,
		"timestamp": timestamp,
		"signature": signature,
		"folder":    folder,
	} {
		if err := writer.WriteField(field, value); err != nil {
			return nil, fmt.Errorf("media: build upload form: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("media: build upload form: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint(), &body)
	if err != nil {
		return nil, fmt.Errorf("media: build upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("media: upload failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		SecureURL string `json:"secure_url"`
		PublicID  string `json:"public_id"`
		Bytes     int64  `json:"bytes"`
		Error     *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("media: decode upload response: %w", err)
	}
	if payload.SecureURL == "" {
		if payload.Error != nil && payload.Error.Message != "" {
			return nil, fmt.Errorf("media: upload rejected: %s", payload.Error.Message)
		}
		return nil, errors.New("media: upload rejected")
	}

	if payload.Bytes == 0 {
		payload.Bytes = size
	}
	return &interfaces.MediaUploadResult{
		URL:      payload.SecureURL,
		PublicID: payload.PublicID,
		Bytes:    payload.Bytes,
	}, nil
}

func (u *HTTPUploader) endpoint() string {
	if u.cfg.BaseURL != "" {
		return u.cfg.BaseURL
	}
	return fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", u.cfg.CloudName)
}

// SignParams produces the hex SHA-1 digest of the sorted key=value pairs
// joined by & with the secret appended, the signature format the upload
// endpoint verifies.
func SignParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}
	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(digest[:])
}

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// API defines the backend operations the UI depends on. It is implemented by
// *Client and can be faked in tests.
type API interface {
	CheckHealth(ctx context.Context) (HealthStatus, error)
	AnalyzeVideo(ctx context.Context, upload Upload) (*AnalyzeResponse, error)
	FindSimilarByCatalog(ctx context.Context, product DetectedProduct) (*SimilarResponse, error)
	FindSimilarByAISearch(ctx context.Context, product DetectedProduct) (*SimilarResponse, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// Client talks to the analysis backend over plain HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://127.0.0.1:8000"
	defaultUserAgent = "shopper/0.1"

	pathHealth          = "/health"
	pathAnalyzeVideo    = "/analyze-video"
	pathFindSimilar     = "/find-similar"
	pathFindSimilarByAI = "/find-similar-gemini"

	uploadField = "file"
)

// Upload is a video payload for AnalyzeVideo.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// StatusError reports a non-success HTTP status from the backend.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// NewClient builds a Client for the given base URL. A bare host:port is
// accepted and assumed to be http.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		// Analysis of long videos can take minutes; requests are bounded only
		// by the caller's context.
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized backend origin.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// CheckHealth calls GET /health.
func (c *Client) CheckHealth(ctx context.Context) (HealthStatus, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload HealthStatus
	if err := c.do(ctx, http.MethodGet, pathHealth, nil, "", &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// AnalyzeVideo streams the upload as multipart field "file" to /analyze-video.
func (c *Client) AnalyzeVideo(ctx context.Context, upload Upload) (*AnalyzeResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if upload.Body == nil {
		return nil, fmt.Errorf("upload body is nil")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeUpload(mw, upload))
	}()
	defer func() { _ = pr.Close() }()

	var payload AnalyzeResponse
	if err := c.do(ctx, http.MethodPost, pathAnalyzeVideo, pr, mw.FormDataContentType(), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FindSimilarByCatalog posts the product to /find-similar.
func (c *Client) FindSimilarByCatalog(ctx context.Context, product DetectedProduct) (*SimilarResponse, error) {
	return c.findSimilar(ctx, pathFindSimilar, product)
}

// FindSimilarByAISearch posts the product to /find-similar-gemini.
func (c *Client) FindSimilarByAISearch(ctx context.Context, product DetectedProduct) (*SimilarResponse, error) {
	return c.findSimilar(ctx, pathFindSimilarByAI, product)
}

func (c *Client) findSimilar(ctx context.Context, path string, product DetectedProduct) (*SimilarResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("encode product: %w", err)
	}
	var payload SimilarResponse
	if err := c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func writeUpload(mw *multipart.Writer, upload Upload) error {
	filename := strings.TrimSpace(upload.Filename)
	if filename == "" {
		filename = "video"
	}
	contentType := strings.TrimSpace(upload.ContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, uploadField, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, upload.Body); err != nil {
		return fmt.Errorf("copy upload body: %w", err)
	}
	return mw.Close()
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, dest any) error {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.String(), StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api base url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

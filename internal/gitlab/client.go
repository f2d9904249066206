// Package gitlab provides a minimal authenticated client for the GitLab
// REST API (v4). It is a narrow, stateless translator: one network call per
// invocation, no retries, no caching, no pagination handling.
package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TeslaLord/Gitlab-MCP/internal/common"
	"github.com/TeslaLord/Gitlab-MCP/internal/config"
)

// maxResponseSize caps the response body to prevent OOM from unexpectedly
// large responses.
const maxResponseSize = 50 << 20 // 50MB

// ErrMissingToken is returned when a request is attempted without a
// configured access token. No network call is made in that case.
var ErrMissingToken = errors.New("GITLAB_TOKEN is required: set it in the environment or the [gitlab] config section")

// APIError is a non-2xx response from the GitLab API. The upstream status
// and body are preserved for diagnosability.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gitlab returned %d: %s", e.StatusCode, e.Body)
}

// Client issues authenticated requests against {baseURL}/api/v4.
// It holds no mutable state after construction and is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a GitLab API client from config. The token is held for
// the process lifetime and attached as a PRIVATE-TOKEN header on every call.
func NewClient(cfg config.GitLabConfig, logger *common.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.GetTimeout(),
		},
		logger: logger,
	}
}

// BaseURL returns the configured GitLab base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether an access token is configured.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// Get performs a GET request against the given API path.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post performs a POST request with a JSON body against the given API path.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body interface{}) ([]byte, error) {
	return c.Do(ctx, http.MethodPost, path, query, body)
}

// Put performs a PUT request with a JSON body against the given API path.
func (c *Client) Put(ctx context.Context, path string, query url.Values, body interface{}) ([]byte, error) {
	return c.Do(ctx, http.MethodPut, path, query, body)
}

// Delete performs a DELETE request against the given API path.
func (c *Client) Delete(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, path, query, nil)
}

// Do issues one request against {baseURL}/api/v4/{path}. Path segments
// containing caller-supplied identifiers must already be percent-encoded by
// the caller. An HTTP 204 returns an empty JSON object; a non-2xx status
// returns *APIError with the upstream body intact.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		// Unreachable from the fixed tool catalog; fail loudly rather than
		// defaulting to GET.
		return nil, fmt.Errorf("unsupported HTTP method %q", method)
	}

	endpoint := c.baseURL + "/api/v4/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("gitlab request")

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.Error().Str("method", method).Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("gitlab request failed")
		return nil, fmt.Errorf("gitlab request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Msg("gitlab response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if resp.StatusCode == http.StatusNoContent {
		return []byte("{}"), nil
	}

	return respBody, nil
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-lens/pkg/lens/params"
)

const (
	// DefaultEndpoint is the address of a locally running rendering service.
	DefaultEndpoint = "http://localhost:8000/generate-images/"
	// DefaultTimeout bounds one rendering request.
	DefaultTimeout = 2 * time.Minute
)

// Client posts parameters to the rendering service.
// After creation the client is immutable and safe for concurrent use.
type Client struct {
	endpoint   string
	httpClient *http.Client
	headers    map[string]string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithEndpoint sets the URL the parameters are posted to.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for DefaultEndpoint unless told otherwise.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		headers: make(map[string]string),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Endpoint returns the configured endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Generate posts p and returns the response body. The body is returned for every status; a non-2xx
// status also yields a *StatusError. Failures to reach the service yield a *NetworkError and no body.
func (c *Client) Generate(ctx context.Context, p params.Parameters) ([]byte, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode parameters")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "unable to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/zip, application/json")

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: errors.Wrap(err, "unable to read response body")}
	}

	c.logger.Debug("Rendering service answered",
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return body, &StatusError{StatusCode: resp.StatusCode}
	}

	return body, nil
}

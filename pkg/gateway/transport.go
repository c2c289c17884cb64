package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coinpay/coinpay-go/pkg/logging"
)

// Transport moves raw bytes to and from the gateway. The signing core
// performs no network I/O itself; it hands a marshaled envelope to a
// Transport and gets raw response bytes back.
type Transport interface {
	Post(ctx context.Context, path string, body []byte) ([]byte, error)
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// TransportConfig holds HTTP transport configuration
type TransportConfig struct {
	Timeout             time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
	UserAgent           string
	Client              *http.Client
}

// DefaultTransportConfig returns default HTTP transport configuration
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		Timeout:             30 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		UserAgent:           "coinpay-go",
	}
}

// TransportOption is a function that modifies TransportConfig
type TransportOption func(*TransportConfig)

// WithTimeout sets the request timeout
func WithTimeout(timeout time.Duration) TransportOption {
	return func(c *TransportConfig) {
		c.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) TransportOption {
	return func(c *TransportConfig) {
		c.UserAgent = ua
	}
}

// WithHTTPClient supplies a fully configured http.Client, overriding the
// other transport options
func WithHTTPClient(client *http.Client) TransportOption {
	return func(c *TransportConfig) {
		c.Client = client
	}
}

// HTTPTransport is the bundled net/http-backed Transport.
type HTTPTransport struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    logging.Logger
}

// NewHTTPTransport creates a transport rooted at baseURL.
func NewHTTPTransport(baseURL string, logger logging.Logger, opts ...TransportOption) *HTTPTransport {
	cfg := DefaultTransportConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	client := cfg.Client
	if client == nil {
		client = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        cfg.MaxIdleConns,
				MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
				IdleConnTimeout:     cfg.IdleConnTimeout,
			},
		}
	}

	if logger == nil {
		logger = logging.NewNopLogger()
	}

	return &HTTPTransport{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    client,
		logger:    logger,
	}
}

// Post sends a JSON body and returns the raw response bytes.
func (t *HTTPTransport) Post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &ResponseError{Message: "failed to build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	return t.do(req)
}

// Get sends a GET request and returns the raw response bytes.
func (t *HTTPTransport) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := t.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &ResponseError{Message: "failed to build request", Cause: err}
	}
	req.Header.Set("User-Agent", t.userAgent)

	return t.do(req)
}

func (t *HTTPTransport) do(req *http.Request) ([]byte, error) {
	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &ResponseError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResponseError{Message: "failed to read response body", Cause: err}
	}

	t.logger.Debug("gateway request completed",
		logging.String("method", req.Method),
		logging.String("path", req.URL.Path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	return raw, nil
}

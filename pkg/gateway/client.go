// Package gateway is the coinpay API client: it signs payout and
// collection order requests, looks up order status, lists supported
// symbols, and serves verified webhook notifications. Payload field
// schemas are the caller's business — the client signs whatever payload
// it is given and returns the gateway's response as a canonical value.
package gateway

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/coinpay/coinpay-go/pkg/canonical"
	"github.com/coinpay/coinpay-go/pkg/logging"
	"github.com/coinpay/coinpay-go/pkg/signing"
)

// Gateway endpoint paths
const (
	pathPayoutOrder     = "/api/v1/payout/order"
	pathCollectionOrder = "/api/v1/collection/order"
	pathOrderStatus     = "/api/v1/order/status"
	pathSymbols         = "/api/v1/symbols"
)

// Client talks to the coinpay gateway. Safe for concurrent use.
type Client struct {
	signer    *signing.Signer
	transport Transport
	logger    logging.Logger
}

// ClientOption is a function that modifies a Client
type ClientOption func(*Client)

// WithTransport replaces the bundled HTTP transport
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger
func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSigner replaces the signer, for callers that need a custom nonce
// source or clock
func WithSigner(s *signing.Signer) ClientOption {
	return func(c *Client) {
		c.signer = s
	}
}

// NewClient creates a gateway client for the given shared secret and
// base URL.
func NewClient(secret, baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		signer: signing.NewSigner(secret),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(baseURL, c.logger)
	}
	return c
}

// OrderResult is the decoded gateway response envelope. Data keeps the
// gateway's own structure untouched.
type OrderResult struct {
	Code    int64
	Message string
	Data    canonical.Value
}

// CreatePayoutOrder signs and submits a payout order.
func (c *Client) CreatePayoutOrder(ctx context.Context, payload *canonical.Payload) (*OrderResult, error) {
	return c.postSigned(ctx, pathPayoutOrder, payload)
}

// CreateCollectionOrder signs and submits a collection order.
func (c *Client) CreateCollectionOrder(ctx context.Context, payload *canonical.Payload) (*OrderResult, error) {
	return c.postSigned(ctx, pathCollectionOrder, payload)
}

// GetOrderStatus signs and submits an order-status lookup.
func (c *Client) GetOrderStatus(ctx context.Context, orderID string) (*OrderResult, error) {
	payload := canonical.NewPayload().Set("orderId", canonical.String(orderID))
	return c.postSigned(ctx, pathOrderStatus, payload)
}

// ListSymbols fetches the supported symbol listing. The listing is
// public and goes out unsigned.
func (c *Client) ListSymbols(ctx context.Context) (canonical.Value, error) {
	raw, err := c.transport.Get(ctx, pathSymbols, url.Values{})
	if err != nil {
		return canonical.Null(), err
	}

	doc, err := canonical.DecodeJSON(raw)
	if err != nil {
		return canonical.Null(), &ResponseError{Message: "failed to decode symbol listing", Cause: err}
	}
	return doc, nil
}

func (c *Client) postSigned(ctx context.Context, path string, payload *canonical.Payload) (*OrderResult, error) {
	envelope, err := c.signer.Sign(payload)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, &ResponseError{Message: "failed to marshal envelope", Cause: err}
	}

	c.logger.Debug("submitting signed request",
		logging.String("path", path),
		logging.Int64("timestamp", envelope.Timestamp),
	)

	raw, err := c.transport.Post(ctx, path, body)
	if err != nil {
		return nil, err
	}

	return decodeOrderResult(raw)
}

// decodeOrderResult interprets the standard {code, msg, data} response
// envelope. Unknown shapes come back with Data holding the whole
// document so callers can still inspect it.
func decodeOrderResult(raw []byte) (*OrderResult, error) {
	doc, err := canonical.DecodeJSON(raw)
	if err != nil {
		return nil, &ResponseError{Message: "failed to decode response", Cause: err}
	}

	fields := doc.Nested()
	if fields == nil {
		return &OrderResult{Data: doc}, nil
	}

	result := &OrderResult{Data: doc}
	if v, ok := fields.Get("code"); ok && v.Kind() == canonical.KindNumber {
		if n, err := json.Number(v.Literal()).Int64(); err == nil {
			result.Code = n
		}
	}
	if v, ok := fields.Get("msg"); ok && v.Kind() == canonical.KindString {
		result.Message = v.Text()
	}
	if v, ok := fields.Get("data"); ok {
		result.Data = v
	}
	return result, nil
}

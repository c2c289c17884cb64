package signing

import (
	"crypto/hmac"
	"strconv"
	"time"

	"github.com/coinpay/coinpay-go/pkg/canonical"
	"github.com/coinpay/coinpay-go/pkg/logging"
)

// DefaultReplayWindow is the maximum allowed skew between a webhook's
// timestamp and the local clock, in either direction.
const DefaultReplayWindow = 30 * time.Second

// Verifier checks inbound webhook bodies against the shared secret. It
// is stateless apart from its configuration and safe for concurrent use.
type Verifier struct {
	secret string
	window time.Duration
	now    func() time.Time
	logger logging.Logger
}

// VerifierOption is a function that modifies a Verifier
type VerifierOption func(*Verifier)

// WithReplayWindow overrides the replay window
func WithReplayWindow(window time.Duration) VerifierOption {
	return func(v *Verifier) {
		v.window = window
	}
}

// WithVerifierClock overrides the clock, mainly for tests
func WithVerifierClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) {
		v.now = now
	}
}

// WithVerifierLogger sets the logger
func WithVerifierLogger(logger logging.Logger) VerifierOption {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// NewVerifier creates a verifier for the given shared secret.
func NewVerifier(secret string, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		secret: secret,
		window: DefaultReplayWindow,
		now:    time.Now,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify reports whether body carries a valid webhook signature.
//
// suppliedSig and suppliedTS override the document's own sign and
// timestamp fields when non-zero; nonce and notifyType are always taken
// from the document. A body that does not parse as JSON is checked
// against the degraded raw-body scheme instead (see verifyRaw) — parse
// failures never surface to the caller.
//
// Verify never returns an error. Replay-window violations fail before
// any signature is computed.
func (v *Verifier) Verify(body []byte, suppliedSig string, suppliedTS int64) bool {
	doc, err := canonical.DecodeJSON(body)
	if err != nil {
		v.logger.Debug("webhook body is not valid JSON, using raw scheme",
			logging.Err(err),
		)
		return v.verifyRaw(body, suppliedSig, suppliedTS)
	}

	// A parseable but non-object body has no fields; lookups below all
	// come back empty and verification fails on the missing signature
	// unless the caller supplied one.
	fields := doc.Nested()
	if fields == nil {
		fields = canonical.NewPayload()
	}

	signature := suppliedSig
	if signature == "" {
		signature = textField(fields, "sign")
	}
	if signature == "" {
		v.logger.Warn("webhook rejected: no signature supplied or present in body")
		return false
	}

	timestamp := suppliedTS
	if timestamp == 0 {
		timestamp = timestampField(fields, "timestamp")
	}

	if !v.withinWindow(timestamp) {
		v.logger.Warn("webhook rejected: timestamp outside replay window",
			logging.Int64("timestamp", timestamp),
			logging.Duration("window", v.window),
		)
		return false
	}

	nonce := textField(fields, "nonce")
	notifyType := textField(fields, "notifyType")

	dataStr := ""
	if data, ok := fields.Get("data"); ok && data.Kind() == canonical.KindMapping {
		dataStr = canonical.Serialize(data.Nested())
	}

	expected := computeHMAC(v.secret, webhookSignatureBase(dataStr, nonce, notifyType, timestamp))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		v.logger.Warn("webhook rejected: signature mismatch",
			logging.String("notify_type", notifyType),
		)
		return false
	}

	return true
}

// Parse verifies body and, on success, returns the typed event built
// from the document's own fields. It returns nil on any failure — bad
// JSON, replay-window violation, signature mismatch — and never panics.
//
// suppliedSig and suppliedTS participate in verification exactly as in
// Verify but are not copied into the returned event: the event reports
// what the document itself carried.
//
// When the body is not JSON but its raw-scheme signature matches, the
// returned event carries only the supplied signature and timestamp.
func (v *Verifier) Parse(body []byte, suppliedSig string, suppliedTS int64) *WebhookEvent {
	if !v.Verify(body, suppliedSig, suppliedTS) {
		return nil
	}

	doc, err := canonical.DecodeJSON(body)
	if err != nil || doc.Kind() != canonical.KindMapping {
		return &WebhookEvent{Sign: suppliedSig, Timestamp: suppliedTS}
	}

	fields := doc.Nested()
	event := &WebhookEvent{
		Sign:       textField(fields, "sign"),
		Timestamp:  timestampField(fields, "timestamp"),
		Nonce:      textField(fields, "nonce"),
		NotifyType: textField(fields, "notifyType"),
	}
	if data, ok := fields.Get("data"); ok && data.Kind() == canonical.KindMapping {
		event.Data = data.Nested()
	}

	return event
}

// verifyRaw implements the degraded scheme for bodies that are not
// structured data: the signed message is the decimal timestamp
// concatenated directly with the raw body text. This compatibility path
// for malformed or pre-JSON webhook bodies is deliberately separate from
// the primary algorithm.
func (v *Verifier) verifyRaw(body []byte, suppliedSig string, suppliedTS int64) bool {
	if suppliedSig == "" {
		v.logger.Warn("raw webhook rejected: no signature supplied")
		return false
	}

	message := strconv.FormatInt(suppliedTS, 10) + string(body)
	expected := computeHMAC(v.secret, message)
	if !hmac.Equal([]byte(expected), []byte(suppliedSig)) {
		v.logger.Warn("raw webhook rejected: signature mismatch")
		return false
	}

	return true
}

// withinWindow checks |now - timestamp| against the replay window. The
// comparison stays in whole seconds: converting an arbitrary skew to a
// time.Duration would overflow int64 nanoseconds for timestamps more
// than ~292 years out.
func (v *Verifier) withinWindow(timestamp int64) bool {
	skew := v.now().Unix() - timestamp
	if skew < 0 {
		skew = -skew
	}
	return skew <= int64(v.window/time.Second)
}

// webhookSignatureBase assembles the inbound verification string. Unlike
// the outbound base it includes notifyType, and timestamp comes last.
func webhookSignatureBase(dataStr, nonce, notifyType string, timestamp int64) string {
	return "data={" + dataStr + "}&nonce=" + nonce + "&notifyType=" + notifyType +
		"&timestamp=" + strconv.FormatInt(timestamp, 10)
}

// textField returns the string form of a scalar document field, or "".
func textField(p *canonical.Payload, key string) string {
	v, ok := p.Get(key)
	if !ok {
		return ""
	}
	switch v.Kind() {
	case canonical.KindString:
		return v.Text()
	case canonical.KindNumber:
		return v.Literal()
	default:
		return ""
	}
}

// timestampField coerces a document field to whole seconds, accepting a
// JSON number or a numeric string. Fractional values truncate.
func timestampField(p *canonical.Payload, key string) int64 {
	raw := textField(p, key)
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int64(f)
	}
	return 0
}

package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/coinpay/coinpay-go/pkg/canonical"
	"github.com/coinpay/coinpay-go/pkg/logging"
)

// Signer produces signed envelopes for outbound gateway requests. It is
// stateless apart from the immutable secret and safe for concurrent use.
type Signer struct {
	secret string
	now    func() time.Time
	nonce  func() (string, error)
	logger logging.Logger
}

// SignerOption is a function that modifies a Signer
type SignerOption func(*Signer)

// WithSignerClock overrides the clock, mainly for tests
func WithSignerClock(now func() time.Time) SignerOption {
	return func(s *Signer) {
		s.now = now
	}
}

// WithNonceSource overrides the nonce generator
func WithNonceSource(nonce func() (string, error)) SignerOption {
	return func(s *Signer) {
		s.nonce = nonce
	}
}

// WithSignerLogger sets the logger
func WithSignerLogger(logger logging.Logger) SignerOption {
	return func(s *Signer) {
		s.logger = logger
	}
}

// NewSigner creates a signer for the given shared secret.
func NewSigner(secret string, opts ...SignerOption) *Signer {
	s := &Signer{
		secret: secret,
		now:    time.Now,
		nonce:  NewNonce,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sign builds the signed envelope for a payload: a Unix-second
// timestamp, a fresh nonce, and the HMAC-SHA256 hex digest of
//
//	data={<serialized payload>}&nonce=<nonce>&timestamp=<timestamp>
//
// keyed by the shared secret. A nil payload signs as an empty mapping.
func (s *Signer) Sign(payload *canonical.Payload) (*Envelope, error) {
	if payload == nil {
		payload = canonical.NewPayload()
	}

	timestamp := s.now().Unix()
	nonce, err := s.nonce()
	if err != nil {
		return nil, err
	}

	base := signatureBase(canonical.Serialize(payload), nonce, timestamp)
	signature := computeHMAC(s.secret, base)

	s.logger.Debug("signed outbound payload",
		logging.Int64("timestamp", timestamp),
		logging.String("nonce", nonce),
	)

	return &Envelope{
		Sign:      signature,
		Timestamp: timestamp,
		Nonce:     nonce,
		Data:      payload,
	}, nil
}

// SignValue converts an ordinary Go value into a canonical payload and
// signs it. The value must convert to a mapping at the top level; a
// value the payload model cannot represent — a plain Go map, a struct,
// a channel — fails with an InvalidPayloadError rather than being
// stringified.
func (s *Signer) SignValue(in interface{}) (*Envelope, error) {
	v, err := canonical.FromGo(in)
	if err != nil {
		return nil, &InvalidPayloadError{Message: "payload is not signable", Cause: err}
	}
	if v.Kind() != canonical.KindMapping {
		return nil, NewInvalidPayloadError("top-level payload must be a mapping, got %s", v.Kind())
	}
	return s.Sign(v.Nested())
}

// signatureBase assembles the outbound signing string. The inbound
// string (see verifier.go) uses a different field order and includes
// notifyType; the two are intentionally not shared.
func signatureBase(dataStr, nonce string, timestamp int64) string {
	return "data={" + dataStr + "}&nonce=" + nonce + "&timestamp=" + strconv.FormatInt(timestamp, 10)
}

// computeHMAC returns the lowercase hex HMAC-SHA256 of message keyed by
// secret.
func computeHMAC(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

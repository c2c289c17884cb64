package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpay/coinpay-go/pkg/canonical"
)

const testSecret = "test-shared-secret"

func hmacHex(t *testing.T, secret, message string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func fixedSigner(secret, nonce string, at int64) *Signer {
	return NewSigner(secret,
		WithSignerClock(func() time.Time { return time.Unix(at, 0) }),
		WithNonceSource(func() (string, error) { return nonce, nil }),
	)
}

func TestSignProducesExpectedSignature(t *testing.T) {
	payload := canonical.NewPayload().
		Set("orderId", canonical.String("ord-1")).
		Set("amount", canonical.Number("100.00000000"))

	signer := fixedSigner(testSecret, "nonce-1", 1724900000)
	envelope, err := signer.Sign(payload)
	require.NoError(t, err)

	// Verification symmetry: the signature must equal the HMAC of the
	// literal outbound string
	expected := hmacHex(t, testSecret,
		"data={orderId=ord-1, amount=100.00000000}&nonce=nonce-1&timestamp=1724900000")

	assert.Equal(t, expected, envelope.Sign)
	assert.Equal(t, int64(1724900000), envelope.Timestamp)
	assert.Equal(t, "nonce-1", envelope.Nonce)
	assert.Same(t, payload, envelope.Data)
}

func TestSignIsDeterministicForFixedInputs(t *testing.T) {
	payload := canonical.NewPayload().Set("a", canonical.Int(1))

	signer := fixedSigner(testSecret, "n", 100)
	first, err := signer.Sign(payload)
	require.NoError(t, err)
	second, err := signer.Sign(payload)
	require.NoError(t, err)

	assert.Equal(t, first.Sign, second.Sign)
}

func TestSignOrderSensitivity(t *testing.T) {
	signer := fixedSigner(testSecret, "n", 100)

	ab, err := signer.Sign(canonical.NewPayload().
		Set("a", canonical.Int(1)).
		Set("b", canonical.Int(2)))
	require.NoError(t, err)

	ba, err := signer.Sign(canonical.NewPayload().
		Set("b", canonical.Int(2)).
		Set("a", canonical.Int(1)))
	require.NoError(t, err)

	assert.NotEqual(t, ab.Sign, ba.Sign,
		"insertion order is part of the signature")
}

func TestSignNilPayload(t *testing.T) {
	signer := fixedSigner(testSecret, "n", 100)

	envelope, err := signer.Sign(nil)
	require.NoError(t, err)

	assert.Equal(t, hmacHex(t, testSecret, "data={}&nonce=n&timestamp=100"), envelope.Sign)
	require.NotNil(t, envelope.Data)
	assert.Equal(t, 0, envelope.Data.Len())
}

func TestSignOmitsNotifyType(t *testing.T) {
	// The outbound string never carries notifyType, even though the
	// inbound verification string does
	signer := fixedSigner(testSecret, "n", 100)
	envelope, err := signer.Sign(canonical.NewPayload())
	require.NoError(t, err)

	withNotifyType := hmacHex(t, testSecret, "data={}&nonce=n&notifyType=&timestamp=100")
	assert.NotEqual(t, withNotifyType, envelope.Sign)
}

func TestSignValueAcceptsPayload(t *testing.T) {
	signer := fixedSigner(testSecret, "n", 100)
	payload := canonical.NewPayload().Set("orderId", canonical.String("ord-1"))

	direct, err := signer.Sign(payload)
	require.NoError(t, err)
	viaValue, err := signer.SignValue(payload)
	require.NoError(t, err)

	assert.Equal(t, direct.Sign, viaValue.Sign)
}

func TestSignValueRejectsPlainMap(t *testing.T) {
	signer := NewSigner(testSecret)

	_, err := signer.SignValue(map[string]interface{}{"a": 1})
	require.Error(t, err)

	var payloadErr *InvalidPayloadError
	require.ErrorAs(t, err, &payloadErr)

	var typeErr *canonical.UnsupportedTypeError
	assert.ErrorAs(t, err, &typeErr, "the conversion failure stays inspectable through Unwrap")
}

func TestSignValueRejectsNonMappingTopLevel(t *testing.T) {
	signer := NewSigner(testSecret)

	for _, in := range []interface{}{"hello", 42, []interface{}{1, 2}, nil} {
		_, err := signer.SignValue(in)

		var payloadErr *InvalidPayloadError
		assert.ErrorAs(t, err, &payloadErr, "input %v must fail as an invalid payload", in)
	}
}

func TestSignNonceFailure(t *testing.T) {
	signer := NewSigner(testSecret,
		WithNonceSource(func() (string, error) { return "", errors.New("entropy exhausted") }),
	)

	_, err := signer.Sign(canonical.NewPayload())
	assert.Error(t, err)
}

func TestSignDefaultNonceIsFresh(t *testing.T) {
	signer := NewSigner(testSecret)

	first, err := signer.Sign(canonical.NewPayload())
	require.NoError(t, err)
	second, err := signer.Sign(canonical.NewPayload())
	require.NoError(t, err)

	assert.NotEqual(t, first.Nonce, second.Nonce)
}

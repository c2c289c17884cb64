// Package signing implements the coinpay gateway request signing
// convention and the inverse webhook verification path.
//
// # Outbound
//
// A request payload is serialized with pkg/canonical, combined with a
// fresh nonce and a Unix-second timestamp into the literal string
//
//	data={<serialized payload>}&nonce=<nonce>&timestamp=<timestamp>
//
// and HMAC-SHA256 signed with the shared secret, hex lowercase. The
// resulting envelope {sign, timestamp, nonce, data} is what the
// transport posts to the gateway.
//
// # Inbound
//
// Webhook bodies are verified by rebuilding the expected string from the
// document's own fields:
//
//	data={<serialized data>}&nonce=<nonce>&notifyType=<notifyType>&timestamp=<timestamp>
//
// The inbound string includes notifyType and orders fields differently
// from the outbound one. This asymmetry is part of the gateway protocol
// (outbound requests carry no notifyType) and must not be unified.
//
// Verification enforces a replay window: a webhook whose timestamp is
// more than 30 seconds away from the local clock (in either direction)
// is rejected before any signature computation. Bodies that are not
// valid JSON are checked against a degraded scheme that signs the
// timestamp concatenated with the raw body text; see Verifier.
//
// # Security
//
//   - Signatures are compared in constant time (hmac.Equal)
//   - Nonces come from crypto/rand, 16 bytes hex encoded
//   - Verify and Parse never return an error: failures are false/nil,
//     with the reason logged at warn level
package signing

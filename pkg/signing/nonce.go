package signing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// nonceBytes is the amount of randomness behind each nonce. 16 bytes is
// enough that collisions within the replay window are not a concern.
const nonceBytes = 16

// NewNonce generates a random opaque nonce: 16 bytes from crypto/rand,
// hex encoded to 32 characters.
func NewNonce() (string, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("signing: failed to generate nonce: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

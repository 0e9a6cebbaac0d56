package security

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns a hex-encoded opaque token with n bytes of entropy.
// Used for email confirmation tokens; refresh tokens use UUIDs instead so
// their format matches what older clients already store.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

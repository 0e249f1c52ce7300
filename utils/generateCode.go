package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateCode returns a URL-safe random token of byteLength random
// bytes, hex encoded. Used for account activation and password reset
// links.
func GenerateCode(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

package orders

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

const orderNumberPrefix = "TRT-"

// NewOrderNumber builds a human-readable order number with a
// high-entropy suffix, so numbers never collide without any counter
// coordination.
func NewOrderNumber() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate order number: %w", err)
	}
	suffix := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
	return orderNumberPrefix + suffix, nil
}

package booking

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const TokenTTL = 7 * 24 * time.Hour

// NewConfirmationToken returns 32 random bytes hex encoded.
func NewConfirmationToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

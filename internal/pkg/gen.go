package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// GenerateJoinKey - generates a URL-safe key from size random bytes.
func GenerateJoinKey(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateID - generates a unique identifier for sessions and connections.
func GenerateID() string {
	return uuid.New().String()
}

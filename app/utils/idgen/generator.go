package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// GenerateSecureID returns "<prefix>_<random>" where the random part is
// crypto/rand based, base64url encoded and truncated to length. Used for API
// keys and the public IDs handed to clients.
func GenerateSecureID(prefix string, length int) (string, error) {
	// base64 expands 3 bytes to 4 characters; over-provision slightly so the
	// encoded string is always long enough to truncate.
	byteLength := (length * 3 / 4) + 2
	bytes := make([]byte, byteLength)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	encoded := base64.URLEncoding.EncodeToString(bytes)
	encoded = strings.TrimRight(encoded, "=")
	if len(encoded) > length {
		encoded = encoded[:length]
	}

	return fmt.Sprintf("%s_%s", prefix, encoded), nil
}

package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureID(t *testing.T) {
	id, err := GenerateSecureID("pl", 32)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "pl_"))
	assert.Len(t, id, len("pl_")+32)

	for _, char := range strings.TrimPrefix(id, "pl_") {
		valid := (char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '-' || char == '_'
		assert.True(t, valid, "unexpected character %q", char)
	}
}

func TestGenerateSecureIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := GenerateSecureID("key", 16)
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

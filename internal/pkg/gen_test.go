package pkg

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJoinKey(t *testing.T) {
	// When: a key is generated from 3 bytes
	key, err := GenerateJoinKey(3)

	// Then: it is 4 URL-safe characters that decode back to 3 bytes
	require.NoError(t, err)
	assert.Len(t, key, 4)

	raw, err := base64.RawURLEncoding.DecodeString(key)
	require.NoError(t, err)
	assert.Len(t, raw, 3)
}

func TestGenerateID(t *testing.T) {
	assert.NotEqual(t, GenerateID(), GenerateID())
}

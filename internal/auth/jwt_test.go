package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestValidateToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ValidateToken("not.a.jwt")
	assert.Error(t, err)
}

func TestValidateToken_Tampered(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(42)
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := tok[:len(tok)-2] + "xx"
	_, err = ValidateToken(tampered)
	assert.Error(t, err)
}

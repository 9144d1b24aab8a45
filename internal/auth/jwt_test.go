// File: internal/auth/jwt_test.go
package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("acc-1", secret)
	require.NoError(t, err)

	sub, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", sub)
}

func TestGenerateTokenRequiresAccountID(t *testing.T) {
	_, err := GenerateToken("", []byte("test-secret"))
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	token, err := GenerateToken("acc-1", []byte("key-one"))
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("key-two"))
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("patient-42", []byte("test-secret"))
	assert.Error(t, err)
}

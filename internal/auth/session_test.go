package auth

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret-key-12345")
}

func TestIssueAndValidateToken(t *testing.T) {
	setSecret(t)

	token, err := IssueToken()
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	assert.Equal(t, "v1", parts[0])

	assert.NoError(t, ValidateToken(token))
}

func TestValidateTokenRejectsMalformed(t *testing.T) {
	setSecret(t)

	for _, token := range []string{
		"",
		"v1",
		"v1.123",
		"v2.123.sig",
		"v1..sig",
		"v1.123.",
		"v1.notanumber.sig",
		"v1.123.sig.extra",
	} {
		assert.ErrorIs(t, ValidateToken(token), ErrInvalidSession, "token %q", token)
	}
}

// A correctly signed token past the TTL must still be rejected.
func TestValidateTokenRejectsExpired(t *testing.T) {
	setSecret(t)

	ts := time.Now().Add(-SessionTTL - time.Hour).Unix()
	secret := []byte("test-secret-key-12345")
	token := fmt.Sprintf("v1.%d.%s", ts, sign(secret, "v1", ts))

	assert.ErrorIs(t, ValidateToken(token), ErrInvalidSession)
}

func TestValidateTokenRejectsTamperedSignature(t *testing.T) {
	setSecret(t)

	token, err := IssueToken()
	require.NoError(t, err)

	// Flip one signature byte.
	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	assert.ErrorIs(t, ValidateToken(string(tampered)), ErrInvalidSession)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	setSecret(t)
	token, err := IssueToken()
	require.NoError(t, err)

	t.Setenv("SESSION_SECRET", "a-different-secret")
	assert.ErrorIs(t, ValidateToken(token), ErrInvalidSession)
}

func TestLoginFlow(t *testing.T) {
	setSecret(t)

	service, err := NewService("hunter2")
	require.NoError(t, err)

	token, err := service.Login("hunter2")
	require.NoError(t, err)
	assert.NoError(t, ValidateToken(token))

	_, err = service.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestServiceRequiresPassword(t *testing.T) {
	_, err := NewService("")
	assert.Error(t, err)
}

package authn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "notarium/pkg/domain-errors"
)

const testKey = "test-signing-key-at-least-32-bytes!"

func TestIssueAndValidate(t *testing.T) {
	svc := NewTokenService(testKey, "notarium", time.Hour)

	token, err := svc.Issue("Admin@Example.com", "Admin")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email, "email is lowercased at issue time")
	assert.Equal(t, "Admin", claims.Name)
	assert.Equal(t, "notarium", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestIssue_EmptyEmailRejected(t *testing.T) {
	svc := NewTokenService(testKey, "notarium", time.Hour)

	_, err := svc.Issue("   ", "Nobody")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestValidate_ExpiredToken(t *testing.T) {
	svc := NewTokenService(testKey, "notarium", -time.Minute)

	token, err := svc.Issue("admin@example.com", "")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidate_WrongKeyRejected(t *testing.T) {
	issuer := NewTokenService(testKey, "notarium", time.Hour)
	verifier := NewTokenService("another-signing-key-32-bytes-long!!", "notarium", time.Hour)

	token, err := issuer.Issue("admin@example.com", "")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidate_WrongIssuerRejected(t *testing.T) {
	issuer := NewTokenService(testKey, "someone-else", time.Hour)
	verifier := NewTokenService(testKey, "notarium", time.Hour)

	token, err := issuer.Issue("admin@example.com", "")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidate_GarbageRejected(t *testing.T) {
	svc := NewTokenService(testKey, "notarium", time.Hour)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.Validate(token)
		assert.Error(t, err, "token %q", token)
	}
}

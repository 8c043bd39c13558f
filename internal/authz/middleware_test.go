package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notarium/internal/authn"
	"notarium/pkg/requestcontext"
	"notarium/pkg/secrets"
)

func newGateHandler(t *testing.T, gate *Gate) (http.Handler, *string) {
	t.Helper()
	var actor string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = requestcontext.ActorEmail(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	return gate.RequireAdmin(inner), &actor
}

func TestRequireAdmin_OperatorToken(t *testing.T) {
	hash, err := secrets.Hash("super-secret")
	require.NoError(t, err)
	gate := NewGate(NewPolicy(nil), nil, hash)
	handler, actor := newGateHandler(t, gate)

	req := httptest.NewRequest(http.MethodPost, "/admin/listings/x/verify", nil)
	req.Header.Set("X-Admin-Token", "super-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "operator", *actor)
}

func TestRequireAdmin_WrongOperatorToken(t *testing.T) {
	hash, err := secrets.Hash("super-secret")
	require.NoError(t, err)
	gate := NewGate(NewPolicy(nil), nil, hash)
	handler, _ := newGateHandler(t, gate)

	req := httptest.NewRequest(http.MethodGet, "/admin/listings", nil)
	req.Header.Set("X-Admin-Token", "guessed")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_BearerAllowlistedEmail(t *testing.T) {
	tokens := authn.NewTokenService("test-signing-key-at-least-32-bytes!", "notarium", time.Hour)
	gate := NewGate(NewPolicy([]string{"root@example.com"}), tokens, "")
	handler, actor := newGateHandler(t, gate)

	token, err := tokens.Issue("root@example.com", "Root")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "root@example.com", *actor)
}

func TestRequireAdmin_BearerNonAdminForbidden(t *testing.T) {
	tokens := authn.NewTokenService("test-signing-key-at-least-32-bytes!", "notarium", time.Hour)
	gate := NewGate(NewPolicy([]string{"root@example.com"}), tokens, "")
	handler, _ := newGateHandler(t, gate)

	token, err := tokens.Issue("guest@example.com", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdmin_NoCredentials(t *testing.T) {
	gate := NewGate(NewPolicy(nil), nil, "")
	handler, _ := newGateHandler(t, gate)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "notarium/pkg/domain-errors"
)

type stubDirectory struct {
	admins map[string]bool
	err    error
}

func (d stubDirectory) IsAdmin(_ context.Context, email string) (bool, error) {
	return d.admins[email], d.err
}

func TestAuthorize_Allowlist(t *testing.T) {
	policy := NewPolicy([]string{"Root@Example.com", "  ops@example.com  "})
	ctx := context.Background()

	assert.NoError(t, policy.Authorize(ctx, "root@example.com"))
	assert.NoError(t, policy.Authorize(ctx, "OPS@example.com"), "comparison is case-insensitive")

	err := policy.Authorize(ctx, "guest@example.com")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestAuthorize_DirectoryFlag(t *testing.T) {
	policy := NewPolicy(nil, WithDirectory(stubDirectory{
		admins: map[string]bool{"flagged@example.com": true},
	}))
	ctx := context.Background()

	assert.NoError(t, policy.Authorize(ctx, "flagged@example.com"))

	err := policy.Authorize(ctx, "guest@example.com")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestAuthorize_AllowlistWinsOverDirectoryError(t *testing.T) {
	policy := NewPolicy([]string{"root@example.com"},
		WithDirectory(stubDirectory{err: errors.New("store down")}))
	ctx := context.Background()

	assert.NoError(t, policy.Authorize(ctx, "root@example.com"))

	err := policy.Authorize(ctx, "other@example.com")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestAuthorize_EmptyEmail(t *testing.T) {
	policy := NewPolicy([]string{"root@example.com"})

	err := policy.Authorize(context.Background(), "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

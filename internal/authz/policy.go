// Package authz decides who may use the admin console. An email is an admin
// when it appears on the static allowlist or carries the admin flag in the
// admin directory store.
package authz

import (
	"context"
	"strings"

	dErrors "notarium/pkg/domain-errors"
)

// AdminDirectory answers admin-flag lookups, normally store-backed.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// Policy combines a static allowlist with an optional directory lookup.
type Policy struct {
	allowlist map[string]struct{}
	directory AdminDirectory
}

type PolicyOption func(*Policy)

// WithDirectory adds a store-backed admin lookup consulted after the allowlist.
func WithDirectory(d AdminDirectory) PolicyOption {
	return func(p *Policy) {
		p.directory = d
	}
}

func NewPolicy(allowlist []string, opts ...PolicyOption) *Policy {
	p := &Policy{allowlist: make(map[string]struct{}, len(allowlist))}
	for _, email := range allowlist {
		email = normalizeEmail(email)
		if email != "" {
			p.allowlist[email] = struct{}{}
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Authorize reports whether email may perform admin operations. The allowlist
// is checked first so a directory outage cannot lock out bootstrap admins.
func (p *Policy) Authorize(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "email required")
	}
	if _, ok := p.allowlist[email]; ok {
		return nil
	}
	if p.directory != nil {
		isAdmin, err := p.directory.IsAdmin(ctx, email)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "admin lookup failed")
		}
		if isAdmin {
			return nil
		}
	}
	return dErrors.New(dErrors.CodeForbidden, "not an admin")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

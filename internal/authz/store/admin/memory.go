// Package admin stores the admin directory: which emails carry the admin flag.
package admin

import (
	"context"
	"strings"
	"sync"
	"time"

	"notarium/internal/sentinel"
)

// Record is one admin directory entry.
type Record struct {
	Email     string
	GrantedBy string
	GrantedAt time.Time
}

// ErrNotFound is returned when an email has no admin entry.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores admin grants in memory for the demo environment.
type InMemory struct {
	mu     sync.RWMutex
	admins map[string]Record
}

// NewInMemory creates an in-memory admin directory.
func NewInMemory() *InMemory {
	return &InMemory{admins: make(map[string]Record)}
}

// Grant marks email as an admin. Granting twice is a no-op that keeps the
// original grant record.
func (s *InMemory) Grant(_ context.Context, email, grantedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalize(email)
	if _, exists := s.admins[key]; exists {
		return nil
	}
	s.admins[key] = Record{Email: key, GrantedBy: grantedBy, GrantedAt: time.Now().UTC()}
	return nil
}

// Revoke removes the admin flag.
func (s *InMemory) Revoke(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalize(email)
	if _, exists := s.admins[key]; !exists {
		return ErrNotFound
	}
	delete(s.admins, key)
	return nil
}

// IsAdmin reports whether email carries the admin flag.
func (s *InMemory) IsAdmin(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.admins[normalize(email)]
	return ok, nil
}

// List returns all admin entries.
func (s *InMemory) List(_ context.Context) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Record, 0, len(s.admins))
	for _, r := range s.admins {
		out = append(out, r)
	}
	return out, nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

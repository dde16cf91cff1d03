// Package memtoken provides a process-local token store.
package memtoken

import (
	"context"
	"errors"
	"sync"

	"github.com/sigmaport/prodmon-ui/internal/ports"
)

var _ ports.TokenStore = (*Store)(nil)

// Store holds the token in memory; it is lost when the process exits.
type Store struct {
	mu    sync.Mutex
	token string
}

// New creates an empty Store.
func New() *Store { return &Store{} }

// NewWithToken creates a Store preloaded with token.
func NewWithToken(token string) *Store { return &Store{token: token} }

func (s *Store) Load(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != "", nil
}

func (s *Store) Save(_ context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

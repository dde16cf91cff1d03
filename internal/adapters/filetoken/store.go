// Package filetoken persists the operator's bearer token in a single local file.
package filetoken

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/sigmaport/prodmon-ui/internal/ports"
)

var _ ports.TokenStore = (*Store)(nil)

// Store keeps the token in a file. Writes go through a temporary file and a
// rename so a crash never leaves a truncated token behind.
type Store struct {
	path string
}

// New creates a Store writing to path. The parent directory is created on save.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("token file path is required")
	}
	return &Store{path: path}, nil
}

// Path returns the file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Load(_ context.Context) (string, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

func (s *Store) Save(_ context.Context, token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := atomic.WriteFile(s.path, strings.NewReader(token)); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	// atomic.WriteFile keeps the mode of an existing file; force owner-only.
	if err := os.Chmod(s.path, 0o600); err != nil {
		return fmt.Errorf("chmod token file: %w", err)
	}
	return nil
}

func (s *Store) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

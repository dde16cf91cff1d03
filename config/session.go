package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TokenStoreKind selects where the session token is persisted.
type TokenStoreKind string

const (
	TokenStoreFile   TokenStoreKind = "file"
	TokenStoreRedis  TokenStoreKind = "redis"
	TokenStoreMemory TokenStoreKind = "memory"
)

// SessionConfig controls the operator session.
type SessionConfig struct {
	// IdleTimeout ends the session after this long without operator activity.
	// 0 disables idle enforcement.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"20m"`

	// TokenStore is one of file, redis or memory.
	TokenStore TokenStoreKind `env:"TOKEN_STORE" envDefault:"file"`

	// TokenFile is the token path for the file store. Defaults to
	// $XDG_CONFIG_HOME/prodmon/token.
	TokenFile string `env:"TOKEN_FILE"`

	// TokenKey is the Redis key for the redis store.
	TokenKey string `env:"TOKEN_KEY" envDefault:"prodmon:token"`
}

// Sanitize normalises session settings.
func (s *SessionConfig) Sanitize() {
	if s.IdleTimeout < 0 {
		s.IdleTimeout = 0
	}
	s.TokenStore = TokenStoreKind(strings.ToLower(strings.TrimSpace(string(s.TokenStore))))
	if s.TokenStore == "" {
		s.TokenStore = TokenStoreFile
	}
	s.TokenFile = strings.TrimSpace(s.TokenFile)
	if s.TokenStore == TokenStoreFile && s.TokenFile == "" {
		s.TokenFile = DefaultTokenFile()
	}
	s.TokenKey = strings.TrimSpace(s.TokenKey)
	if s.TokenKey == "" {
		s.TokenKey = "prodmon:token"
	}
}

// Validate rejects unknown store kinds.
func (s *SessionConfig) Validate() error {
	switch s.TokenStore {
	case TokenStoreFile:
		if s.TokenFile == "" {
			return fmt.Errorf("TOKEN_FILE is required for the file token store")
		}
		return nil
	case TokenStoreRedis, TokenStoreMemory:
		return nil
	default:
		return fmt.Errorf("TOKEN_STORE %q must be file, redis or memory", s.TokenStore)
	}
}

// DefaultTokenFile is the per-user token location.
func DefaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(os.TempDir(), "prodmon", "token")
	}
	return filepath.Join(dir, "prodmon", "token")
}

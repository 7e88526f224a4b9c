package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/spf13/viper"
)

// Well-known secret keys.
const (
	LinkStateSigningSecret = "link_state_signing_secret"
	PlatformSigningSecret  = "platform_signing_secret"
	SessionCookieSecret    = "linkbridge_session_secret"
)

// ErrNotFound is returned when a secret key has no value.
var ErrNotFound = errors.New("secret not found")

// Store resolves secret values by key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
}

// EnvStore reads secrets from the process environment through viper.
// Keys are matched case-insensitively against upper-cased variable names.
type EnvStore struct {
	v         *viper.Viper
	fallbacks map[string]string
}

// NewEnvStore constructs an environment-backed store. Fallbacks are used for
// keys that are unset, which local development relies on.
func NewEnvStore(fallbacks map[string]string) *EnvStore {
	v := viper.New()
	v.AutomaticEnv()
	return &EnvStore{v: v, fallbacks: fallbacks}
}

func (s *EnvStore) Get(_ context.Context, key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return "", fmt.Errorf("secret key is required")
	}
	if value := strings.TrimSpace(s.v.GetString(key)); value != "" {
		return value, nil
	}
	if value := strings.TrimSpace(s.fallbacks[key]); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, key)
}

// CachedStore memoizes another store for a bounded time.
type CachedStore struct {
	next Store
	lru  *expirable.LRU[string, string]
}

func NewCachedStore(next Store, size int, ttl time.Duration) *CachedStore {
	if size <= 0 {
		size = 64
	}
	return &CachedStore{
		next: next,
		lru:  expirable.NewLRU[string, string](size, nil, ttl),
	}
}

func (s *CachedStore) Get(ctx context.Context, key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if value, ok := s.lru.Get(key); ok {
		return value, nil
	}
	value, err := s.next.Get(ctx, key)
	if err != nil {
		return "", err
	}
	s.lru.Add(key, value)
	return value, nil
}

// Invalidate drops a cached key so the next Get reads through.
func (s *CachedStore) Invalidate(key string) {
	s.lru.Remove(strings.ToLower(strings.TrimSpace(key)))
}

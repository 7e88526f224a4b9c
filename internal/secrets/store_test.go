package secrets

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingStore struct {
	calls  int
	values map[string]string
}

func (s *countingStore) Get(_ context.Context, key string) (string, error) {
	s.calls++
	value, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func TestEnvStoreReadsEnvironment(t *testing.T) {
	t.Setenv("PARTNER_OAUTH_CLIENT_ID", "client-123")

	store := NewEnvStore(nil)
	value, err := store.Get(context.Background(), "partner_oauth_client_id")
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if value != "client-123" {
		t.Fatalf("unexpected value: %q", value)
	}
}

func TestEnvStoreFallsBackAndReportsMissing(t *testing.T) {
	t.Setenv("LINK_STATE_SIGNING_SECRET", "")

	store := NewEnvStore(map[string]string{LinkStateSigningSecret: "local-dev"})
	value, err := store.Get(context.Background(), LinkStateSigningSecret)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if value != "local-dev" {
		t.Fatalf("expected fallback value, got %q", value)
	}

	_, err = store.Get(context.Background(), "missing_secret_for_test")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCachedStoreReadsThroughOnce(t *testing.T) {
	next := &countingStore{values: map[string]string{"k": "v"}}
	store := NewCachedStore(next, 4, time.Minute)

	for i := 0; i < 3; i++ {
		value, err := store.Get(context.Background(), "k")
		if err != nil {
			t.Fatalf("Get error = %v", err)
		}
		if value != "v" {
			t.Fatalf("unexpected value: %q", value)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected one read-through, got %d", next.calls)
	}

	store.Invalidate("k")
	if _, err := store.Get(context.Background(), "k"); err != nil {
		t.Fatalf("Get after invalidate error = %v", err)
	}
	if next.calls != 2 {
		t.Fatalf("expected read-through after invalidate, got %d calls", next.calls)
	}
}

func TestCachedStoreDoesNotCacheErrors(t *testing.T) {
	next := &countingStore{values: map[string]string{}}
	store := NewCachedStore(next, 4, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := store.Get(context.Background(), "absent"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}
	if next.calls != 2 {
		t.Fatalf("expected errors to bypass cache, got %d calls", next.calls)
	}
}

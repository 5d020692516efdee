// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func storeFactories(t *testing.T) map[string]func() SessionStore {
	t.Helper()
	return map[string]func() SessionStore{
		"memory": func() SessionStore { return NewMemorySessionStore() },
		"badger": func() SessionStore {
			s, err := OpenBadgerSessionStore("")
			if err != nil {
				t.Fatalf("OpenBadgerSessionStore: %v", err)
			}
			return s
		},
	}
}

func TestNewSession(t *testing.T) {
	t.Parallel()

	a, err := NewSession(7, "a@b.c", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := NewSession(7, "a@b.c", time.Hour)
	if len(a.ID) != 64 || a.ID == b.ID {
		t.Errorf("session ids should be 64 hex chars and unique: %q %q", a.ID, b.ID)
	}
	if a.IsExpired() {
		t.Error("fresh session reported expired")
	}
}

func TestSessionStores(t *testing.T) {
	t.Parallel()

	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := factory()
			defer func() { _ = store.Close() }()

			live, _ := NewSession(1, "live@example.com", time.Hour)
			if err := store.Create(ctx, live); err != nil {
				t.Fatalf("Create: %v", err)
			}

			got, err := store.Get(ctx, live.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.UserID != 1 || got.Email != "live@example.com" {
				t.Errorf("Get = %+v", got)
			}

			if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get(missing) = %v", err)
			}

			newExpiry := time.Now().Add(2 * time.Hour)
			if err := store.Touch(ctx, live.ID, newExpiry); err != nil {
				t.Fatalf("Touch: %v", err)
			}
			got, _ = store.Get(ctx, live.ID)
			if got.ExpiresAt.Before(newExpiry.Add(-time.Second)) {
				t.Errorf("Touch did not extend expiry: %v", got.ExpiresAt)
			}
			if err := store.Touch(ctx, "missing", newExpiry); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Touch(missing) = %v", err)
			}

			if err := store.Delete(ctx, live.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := store.Delete(ctx, live.ID); err != nil {
				t.Errorf("second Delete: %v", err)
			}
			if _, err := store.Get(ctx, live.ID); !errors.Is(err, ErrSessionNotFound) {
				t.Errorf("Get after Delete = %v", err)
			}
		})
	}
}

func TestMemorySessionStore_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemorySessionStore()

	expired, _ := NewSession(1, "old@example.com", -time.Minute)
	live, _ := NewSession(2, "new@example.com", time.Hour)
	_ = store.Create(ctx, expired)
	_ = store.Create(ctx, live)

	if _, err := store.Get(ctx, expired.ID); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Get(expired) = %v, want ErrSessionExpired", err)
	}

	n, err := store.CleanupExpired(ctx)
	if err != nil || n != 1 {
		t.Fatalf("CleanupExpired = %d, %v", n, err)
	}
	if count, _ := store.Count(ctx); count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}
}

func TestBadgerSessionStore_ExpiredIsUnusable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := OpenBadgerSessionStore("")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.Close() }()

	expired, _ := NewSession(1, "old@example.com", -time.Minute)
	live, _ := NewSession(2, "new@example.com", time.Hour)
	if err := store.Create(ctx, expired); err != nil {
		t.Fatal(err)
	}
	if err := store.Create(ctx, live); err != nil {
		t.Fatal(err)
	}

	// Badger may already have dropped the entry through its TTL.
	_, err = store.Get(ctx, expired.ID)
	if !errors.Is(err, ErrSessionExpired) && !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(expired) = %v", err)
	}

	if _, err := store.CleanupExpired(ctx); err != nil {
		t.Fatalf("CleanupExpired: %v", err)
	}
	if _, err := store.Get(ctx, live.ID); err != nil {
		t.Errorf("live session lost during cleanup: %v", err)
	}
}

func TestBadgerSessionStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()

	store, err := OpenBadgerSessionStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := NewSession(3, "keep@example.com", time.Hour)
	if err := store.Create(ctx, s); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenBadgerSessionStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = reopened.Close() }()
	if got, err := reopened.Get(ctx, s.ID); err != nil || got.Email != "keep@example.com" {
		t.Errorf("Get after reopen = %+v, %v", got, err)
	}
}

func TestNewSessionStore(t *testing.T) {
	t.Parallel()

	s, err := NewSessionStore("", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*MemorySessionStore); !ok {
		t.Errorf("default store is %T", s)
	}
	if _, err := NewSessionStore("redis", ""); err == nil {
		t.Error("unknown store accepted")
	}
}

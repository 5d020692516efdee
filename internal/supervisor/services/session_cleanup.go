// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package services

import (
	"context"
	"time"

	"github.com/tomtom215/moviematch/internal/logging"
)

// ExpiredSessionCleaner is satisfied by auth.SessionStore.
type ExpiredSessionCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// SessionCleanupService removes expired sessions on a fixed interval.
type SessionCleanupService struct {
	store    ExpiredSessionCleaner
	interval time.Duration
}

// NewSessionCleanupService defaults to a 15 minute interval.
func NewSessionCleanupService(store ExpiredSessionCleaner, interval time.Duration) *SessionCleanupService {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &SessionCleanupService{store: store, interval: interval}
}

// Serve implements suture.Service. Cleanup errors are logged, not returned:
// the next tick simply tries again.
func (s *SessionCleanupService) Serve(ctx context.Context) error {
	log := logging.WithComponent("session-cleanup")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n, err := s.store.CleanupExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("Expired session cleanup failed")
				continue
			}
			if n > 0 {
				log.Debug().Int("removed", n).Msg("Removed expired sessions")
			}
		}
	}
}

func (s *SessionCleanupService) String() string { return "session-cleanup" }

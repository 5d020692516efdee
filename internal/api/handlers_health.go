// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/moviematch/internal/logging"
)

// readinessTimeout bounds the database ping in HealthReady.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness check requests.
// Returns 200 whenever the process can serve HTTP, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness check requests.
// Returns 200 only when a model is loaded and the users database answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	modelLoaded := h.Model() != nil

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()
	dbErr := h.users.Ping(ctx)
	if dbErr != nil {
		logging.Ctx(r.Context()).Warn().Err(dbErr).Msg("Readiness: users database unreachable")
	}

	ready := modelLoaded && dbErr == nil
	data := map[string]interface{}{
		"model_loaded":       modelLoaded,
		"database_connected": dbErr == nil,
		"ready_to_serve":     ready,
		"uptime_seconds":     time.Since(h.startTime).Seconds(),
	}
	if !ready {
		writeJSON(w, r, http.StatusServiceUnavailable, &APIResponse{
			Success: false,
			Data:    data,
			Error:   &APIError{Code: ErrCodeNotReady, Message: "Service is not ready", RequestID: logging.RequestIDFromContext(r.Context())},
		})
		return
	}
	respondSuccess(w, r, data)
}

// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/recommend/storage"
	"github.com/tomtom215/moviematch/internal/validation"
)

// RecommendationsResponse is the data of GET /api/v1/recommendations.
type RecommendationsResponse struct {
	Title           string                     `json:"title"`
	K               int                        `json:"k"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
}

// ModelResponse is the data of GET /api/v1/model.
type ModelResponse struct {
	Info     recommend.Info   `json:"info"`
	Artifact storage.Metadata `json:"artifact"`
	LoadedAt time.Time        `json:"loaded_at"`
}

// requireModel answers 503 and returns nil when no model is loaded.
func (h *Handler) requireModel(w http.ResponseWriter, r *http.Request) *LoadedModel {
	loaded := h.Model()
	if loaded == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeModelNotLoaded, "No similarity model is loaded", nil)
	}
	return loaded
}

// Movies handles GET /api/v1/movies.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	loaded := h.requireModel(w, r)
	if loaded == nil {
		return
	}
	titles := loaded.Model.Titles()
	respondSuccess(w, r, titles, len(titles))
}

// Recommendations handles GET /api/v1/recommendations?title=&k=.
// An unknown title is 404; a malformed or out of range k is 400.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	loaded := h.requireModel(w, r)
	if loaded == nil {
		return
	}

	query := validation.RecommendationQuery{
		Title: r.URL.Query().Get("title"),
		K:     h.config.DefaultK,
	}
	if raw := r.URL.Query().Get("k"); raw != "" {
		k, err := strconv.Atoi(raw)
		if err != nil {
			metrics.RecordLookup(metrics.LookupInvalid, 0)
			respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "k must be an integer", nil)
			return
		}
		query.K = k
	}
	if verr := validation.ValidateStruct(&query); verr != nil {
		metrics.RecordLookup(metrics.LookupInvalid, 0)
		respondValidationError(w, r, verr)
		return
	}
	if query.K > h.config.MaxK {
		metrics.RecordLookup(metrics.LookupInvalid, 0)
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation,
			fmt.Sprintf("k must be at most %d", h.config.MaxK), nil)
		return
	}

	start := time.Now()
	recs, found := loaded.Model.RecommendScored(query.Title, query.K)
	if !found {
		metrics.RecordLookup(metrics.LookupUnknownTitle, time.Since(start))
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Unknown movie title", nil)
		return
	}
	metrics.RecordLookup(metrics.LookupHit, time.Since(start))

	respondSuccess(w, r, &RecommendationsResponse{
		Title:           query.Title,
		K:               query.K,
		Recommendations: recs,
	}, len(recs))
}

// ModelInfo handles GET /api/v1/model.
func (h *Handler) ModelInfo(w http.ResponseWriter, r *http.Request) {
	loaded := h.requireModel(w, r)
	if loaded == nil {
		return
	}
	respondSuccess(w, r, &ModelResponse{
		Info:     loaded.Model.Info(),
		Artifact: loaded.Artifact,
		LoadedAt: loaded.LoadedAt,
	})
}

// unauthorizedJSON is the RequireAuth fallback for API routes.
func (h *Handler) unauthorizedJSON(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication required", nil)
}

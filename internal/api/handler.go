// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/moviematch/internal/auth"
	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/recommend/storage"
	"github.com/tomtom215/moviematch/internal/users"
	"github.com/tomtom215/moviematch/internal/validation"
)

// maxFormBytes bounds login, signup and home form bodies.
const maxFormBytes = 64 << 10

// UserStore is the subset of users.Store the handlers need.
type UserStore interface {
	Create(ctx context.Context, email, password string) (*users.User, error)
	Authenticate(ctx context.Context, email, password string) (*users.User, error)
	Ping(ctx context.Context) error
}

// LoadedModel is the similarity model currently being served.
type LoadedModel struct {
	Model    *recommend.Model
	Artifact storage.Metadata
	LoadedAt time.Time
}

// HandlerConfig bounds JSON recommendation requests.
type HandlerConfig struct {
	// DefaultK is used when the k query parameter is absent.
	DefaultK int
	// MaxK is the largest k accepted, capped at validation.MaxK.
	MaxK int
}

// DefaultHandlerConfig returns k=5 with a ceiling of 50.
func DefaultHandlerConfig() HandlerConfig {
	return HandlerConfig{DefaultK: recommend.DefaultK, MaxK: validation.MaxK}
}

// Handler serves pages and JSON endpoints.
type Handler struct {
	model     atomic.Pointer[LoadedModel]
	users     UserStore
	sessions  *auth.SessionMiddleware
	templates *Templates
	config    HandlerConfig
	startTime time.Time
}

// NewHandler wires the handler's dependencies. A model must be supplied with
// SetModel before recommendation endpoints report ready.
func NewHandler(userStore UserStore, sessions *auth.SessionMiddleware, templates *Templates, cfg HandlerConfig) *Handler {
	if cfg.DefaultK <= 0 {
		cfg.DefaultK = recommend.DefaultK
	}
	if cfg.MaxK <= 0 || cfg.MaxK > validation.MaxK {
		cfg.MaxK = validation.MaxK
	}
	return &Handler{
		users:     userStore,
		sessions:  sessions,
		templates: templates,
		config:    cfg,
		startTime: time.Now(),
	}
}

// SetModel atomically replaces the served model. Requests already running
// keep the model they started with.
func (h *Handler) SetModel(model *recommend.Model, artifact storage.Metadata) {
	loaded := &LoadedModel{Model: model, Artifact: artifact, LoadedAt: time.Now()}
	h.model.Store(loaded)

	info := model.Info()
	metrics.SetModelInfo(model.Len(), info.VocabularySize, loaded.LoadedAt)
}

// Model returns the served model, or nil before SetModel.
func (h *Handler) Model() *LoadedModel {
	return h.model.Load()
}

// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/moviematch/internal/auth"
	"github.com/tomtom215/moviematch/internal/middleware"
)

// Router assembles handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	sessions      *auth.SessionMiddleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. chiMW may be nil for defaults.
func NewRouter(handler *Handler, sessions *auth.SessionMiddleware, chiMW *ChiMiddleware) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, sessions: sessions, chiMiddleware: chiMW}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)
	r.Use(SecurityHeaders)

	r.Handle("/metrics", promhttp.Handler())

	// ========================
	// Pages
	// ========================
	r.Group(func(r chi.Router) {
		r.Use(router.sessions.Authenticate)
		r.Get("/", h.LoginPage)
		r.Get("/signup", h.SignupPage)
		r.Get("/logout", h.Logout)
	})
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitLogin())
		r.Post("/", h.Login)
		r.Post("/signup", h.Signup)
	})
	r.Group(func(r chi.Router) {
		r.Use(router.sessions.RedirectUnauthenticated("/"))
		r.Get("/home", h.Home)
		r.Post("/home", h.HomeRecommend)
	})

	// ========================
	// JSON API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "Endpoint not found", nil)
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
		})

		r.Route("/health", func(r chi.Router) {
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(router.sessions.RequireAuthWith(h.unauthorizedJSON))
			r.Get("/movies", h.Movies)
			r.Get("/recommendations", h.Recommendations)
			r.Get("/model", h.ModelInfo)
		})
	})

	return r
}

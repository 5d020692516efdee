// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package main is the entry point for the MovieMatch web server.
//
// MovieMatch recommends movies by content similarity. Users sign up, log in,
// pick a movie they like and get the five most similar titles from a
// precomputed cosine similarity matrix built by cmd/train.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, config.yaml and environment variables (Koanf v2)
//  2. Logging: zerolog, JSON or console
//  3. Users: SQLite credential database
//  4. Model: latest similarity artifact from the model directory
//  5. Sessions: in-memory or BadgerDB session store
//  6. HTTP: chi router with pages, JSON API, health and metrics
//  7. Supervisor tree: HTTP server and session cleanup under suture
//
// A missing artifact is not fatal: the server starts, reports not ready and
// answers recommendation requests with 503 until it is restarted with a
// model. A corrupt artifact is fatal.
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree. The HTTP service stops
// accepting connections and waits for in-flight requests up to the
// configured shutdown timeout.
//
// # Example Usage
//
//	train -input data/movies.csv
//	SESSION_STORE=badger COOKIE_SECURE=true ENVIRONMENT=production ./moviematch
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/moviematch/internal/api"
	"github.com/tomtom215/moviematch/internal/auth"
	"github.com/tomtom215/moviematch/internal/config"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/recommend/storage"
	"github.com/tomtom215/moviematch/internal/supervisor"
	"github.com/tomtom215/moviematch/internal/supervisor/services"
	"github.com/tomtom215/moviematch/internal/users"
)

// sessionCleanupInterval is how often expired sessions are purged.
const sessionCleanupInterval = 15 * time.Minute

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
}

//nolint:gocyclo // sequential setup steps
func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logging.Init(cfg.Logging.LoggerConfig())

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("model_dir", cfg.Model.ArtifactDir).
		Str("session_store", cfg.Security.SessionStore).
		Msg("Starting MovieMatch")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userStore, err := users.Open(ctx, cfg.Database.Path, users.WithBcryptCost(cfg.Security.BcryptCost))
	if err != nil {
		return fmt.Errorf("open users database: %w", err)
	}
	defer func() {
		if err := userStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing users database")
		}
	}()
	logging.Info().Msg("Users database initialized")

	model, artifact, err := loadModel(ctx, &cfg.Model)
	if err != nil {
		return err
	}

	sessionStore, err := auth.NewSessionStore(cfg.Security.SessionStore, cfg.Security.SessionStorePath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() {
		if err := sessionStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	sessionCfg := auth.DefaultSessionMiddlewareConfig()
	sessionCfg.SessionTTL = cfg.Security.SessionTTL
	sessionCfg.CookieSecure = cfg.Security.CookieSecure
	sessions := auth.NewSessionMiddleware(sessionStore, sessionCfg)

	templates, err := api.LoadTemplates()
	if err != nil {
		return err
	}

	handler := api.NewHandler(userStore, sessions, templates, api.HandlerConfig{
		DefaultK: cfg.Model.DefaultK,
		MaxK:     cfg.Model.MaxK,
	})
	if model != nil {
		handler.SetModel(model, *artifact)
	}

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled
	mwCfg.LoginRateLimitRequests = cfg.Security.LoginRateLimitReqs
	router := api.NewRouter(handler, sessions, api.NewChiMiddleware(mwCfg))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// === SUPERVISOR TREE ===

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout + 5*time.Second
	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeCfg)

	tree.AddDataService(services.NewSessionCleanupService(sessionStore, sessionCleanupInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	err = supervisor.Wait(ctx, errCh, func() {
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
	})
	stop()
	if err != nil {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}

// loadModel loads the latest artifact. A missing artifact returns nil
// without error; a corrupt one is an error.
func loadModel(ctx context.Context, cfg *config.ModelConfig) (*recommend.Model, *storage.Metadata, error) {
	store, err := storage.NewStore(cfg.ArtifactDir)
	if err != nil {
		return nil, nil, err
	}

	model, meta, err := store.Load(ctx, cfg.ArtifactName, 0)
	switch {
	case errors.Is(err, storage.ErrNoModel):
		logging.Warn().
			Str("dir", cfg.ArtifactDir).
			Str("name", cfg.ArtifactName).
			Msg("No similarity artifact found; run the trainer. Serving without recommendations")
		return nil, nil, nil
	case errors.Is(err, recommend.ErrCorruptArtifact):
		return nil, nil, fmt.Errorf("refusing to serve corrupt artifact: %w", err)
	case err != nil:
		return nil, nil, fmt.Errorf("load similarity artifact: %w", err)
	}

	logging.Info().
		Str("name", meta.Name).
		Int("version", meta.Version).
		Int("movies", model.Len()).
		Str("checksum", meta.Checksum).
		Msg("Similarity artifact loaded")
	return model, meta, nil
}

// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package config

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/moviematch/internal/auth"
	"github.com/tomtom215/moviematch/internal/logging"
)

var validLogFormats = map[string]bool{"json": true, "console": true}

var validEnvironments = map[string]bool{"development": true, "production": true}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if c.Database.Path == "" {
		return fmt.Errorf("USERS_DB_PATH is required")
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, production")
	}
	for name, d := range map[string]time.Duration{
		"HTTP_READ_TIMEOUT":     c.Server.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":    c.Server.WriteTimeout,
		"HTTP_SHUTDOWN_TIMEOUT": c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	return nil
}

func (c *Config) validateModel() error {
	m := c.Model
	if m.ArtifactDir == "" {
		return fmt.Errorf("MODEL_DIR is required")
	}
	if m.ArtifactName == "" {
		return fmt.Errorf("MODEL_NAME is required")
	}
	if _, err := m.BuildConfig(); err != nil {
		return fmt.Errorf("invalid model build settings: %w", err)
	}
	if m.MaxK < 1 {
		return fmt.Errorf("MAX_K must be at least 1, got %d", m.MaxK)
	}
	if m.DefaultK < 1 || m.DefaultK > m.MaxK {
		return fmt.Errorf("DEFAULT_K must be between 1 and MAX_K (%d), got %d", m.MaxK, m.DefaultK)
	}
	if m.KeepVersions < 1 {
		return fmt.Errorf("KEEP_VERSIONS must be at least 1, got %d", m.KeepVersions)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	s := c.Security
	switch s.SessionStore {
	case auth.StoreMemory:
	case auth.StoreBadger:
		if s.SessionStorePath == "" {
			return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE=badger")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be one of: memory, badger")
	}

	if s.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least 1m, got %v", s.SessionTTL)
	}
	if s.BcryptCost < bcrypt.MinCost || s.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	// Session cookies are credentials, so a wildcard origin is never allowed.
	if slices.Contains(s.CORSOrigins, "*") {
		return fmt.Errorf("CORS_ORIGINS must list explicit origins; wildcard is not allowed with session cookies")
	}

	if c.Server.IsProduction() && !s.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when ENVIRONMENT=production")
	}

	return c.validateRateLimits()
}

func (c *Config) validateRateLimits() error {
	s := c.Security
	if s.RateLimitDisabled {
		return nil
	}
	if s.RateLimitReqs < 1 || s.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000")
	}
	if s.LoginRateLimitReqs < 1 || s.LoginRateLimitReqs > s.RateLimitReqs {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be between 1 and RATE_LIMIT_REQUESTS")
	}
	if s.RateLimitWindow < time.Second || s.RateLimitWindow > time.Hour {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between 1s and 1h")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

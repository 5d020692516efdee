// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Model    ModelConfig    `koanf:"model"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development" or "production"
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether production-only checks apply.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DatabaseConfig locates the users database.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// ModelConfig controls how the similarity artifact is built and served.
type ModelConfig struct {
	DatasetPath  string   `koanf:"dataset_path"`
	ArtifactDir  string   `koanf:"artifact_dir"`
	ArtifactName string   `koanf:"artifact_name"`
	Fields       []string `koanf:"fields"`
	StopWords    string   `koanf:"stop_words"`
	MaxFeatures  int      `koanf:"max_features"`

	// DefaultK is used when a JSON request omits k. HTML pages always show 5.
	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`

	// KeepVersions is how many artifacts the trainer leaves on disk.
	KeepVersions int `koanf:"keep_versions"`
}

// BuildConfig converts the model section into a recommend.BuildConfig.
func (m ModelConfig) BuildConfig() (recommend.BuildConfig, error) {
	fields, err := recommend.ParseFields(m.Fields)
	if err != nil {
		return recommend.BuildConfig{}, err
	}
	cfg := recommend.BuildConfig{
		Fields:      fields,
		StopWords:   m.StopWords,
		MaxFeatures: m.MaxFeatures,
	}
	if err := cfg.Validate(); err != nil {
		return recommend.BuildConfig{}, err
	}
	return cfg, nil
}

// SecurityConfig holds authentication, session and request limiting settings
type SecurityConfig struct {
	// SessionStore is "memory" (default) or "badger".
	SessionStore string `koanf:"session_store"`
	// SessionStorePath is the BadgerDB directory when session_store=badger.
	SessionStorePath string        `koanf:"session_store_path"`
	SessionTTL       time.Duration `koanf:"session_ttl"`
	CookieSecure     bool          `koanf:"cookie_secure"`

	BcryptCost int `koanf:"bcrypt_cost"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitReqs      int           `koanf:"rate_limit_reqs"`
	RateLimitWindow    time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled  bool          `koanf:"rate_limit_disabled"`
	LoginRateLimitReqs int           `koanf:"login_rate_limit_reqs"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// LoggerConfig converts the logging section for logging.Init.
func (l LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = l.Level
	if l.Format != "" {
		cfg.Format = l.Format
	}
	cfg.Caller = l.Caller
	return cfg
}

// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package config loads MovieMatch configuration for the server and the
offline trainer.

# Configuration Sources

Sources are layered with koanf, later layers overriding earlier ones:

 1. Struct defaults (defaultConfig)
 2. A YAML file: $CONFIG_PATH, then config.yaml / config.yml in the working
    directory, then /etc/moviematch/config.yaml
 3. Environment variables listed below

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 5000)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown window (default: 10s)
  - ENVIRONMENT: development or production

Users database:
  - USERS_DB_PATH: SQLite file holding accounts (default: data/users.db)

Model:
  - DATASET_PATH: CSV consumed by the trainer (default: data/movies.csv)
  - MODEL_DIR: Directory of versioned similarity artifacts (default: data/models)
  - MODEL_NAME: Artifact name (default: similarity)
  - MODEL_FIELDS: Comma separated text columns (default: tags)
  - STOP_WORDS: none or english (default: none)
  - MAX_FEATURES: Vocabulary cap, 0 for unlimited
  - DEFAULT_K, MAX_K: Recommendation counts for the JSON API
  - KEEP_VERSIONS: Artifacts retained by the trainer (default: 3)

Security:
  - SESSION_STORE: memory or badger
  - SESSION_STORE_PATH: Badger directory
  - SESSION_TTL, COOKIE_SECURE, CORS_ORIGINS, BCRYPT_COST
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - LOGIN_RATE_LIMIT: Requests per window for login and signup

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load("")
	if err != nil {
	    log.Fatal(err)
	}
	addr := cfg.Server.Addr()
*/
package config

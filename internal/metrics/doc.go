// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package metrics registers MovieMatch's Prometheus collectors.

Collectors are created with promauto on the default registry and exposed
by the server at /metrics:

	curl http://localhost:5000/metrics

# Available Metrics

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendations:
  - recommend_lookups_total{outcome}: outcome is hit, unknown_title or invalid
  - recommend_lookup_duration_seconds
  - recommend_model_movies: titles in the loaded model
  - recommend_model_vocabulary_size
  - recommend_model_loaded_timestamp_seconds

Accounts:
  - auth_login_attempts_total{result}: success, invalid_credentials or error
  - auth_signups_total{result}: created, exists or error

Endpoint labels are chi route patterns, never raw paths, so unknown URLs
cannot grow label cardinality.
*/
package metrics

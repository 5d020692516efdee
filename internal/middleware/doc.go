// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package middleware provides chi-compatible HTTP middleware shared by every
route group.

  - RequestID: accepts or generates X-Request-ID and stores it for logging
  - AccessLog: one zerolog line per request with status, size and latency
  - PrometheusMetrics: request counters and latency histograms labelled by
    chi route pattern

Typical global stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware

// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

/*
Package api serves MovieMatch over HTTP: server-rendered pages for people
and a small JSON API for programs.

# Pages

  - GET  /        login form
  - POST /        log in, redirect to /home or show "Invalid Credentials"
  - GET  /signup  signup form
  - POST /signup  create the account, redirect to / or show "User already exists"
  - GET  /home    movie picker (login required)
  - POST /home    top 5 recommendations for the picked movie (login required)
  - GET  /logout  end the session and redirect to /

# JSON API

All JSON responses use the APIResponse envelope.

  - GET /api/v1/movies                        titles in model order
  - GET /api/v1/recommendations?title=&k=     ranked neighbours with scores
  - GET /api/v1/model                         artifact metadata
  - GET /api/v1/health/live                   process liveness
  - GET /api/v1/health/ready                  model loaded and user DB reachable

GET /metrics exposes Prometheus metrics.

Movie, recommendation and model endpoints require a session cookie obtained
by logging in through the pages.

# Middleware

Global: request ID, real IP, access log, panic recovery, CORS, Prometheus
metrics, security headers. Login and signup POSTs carry a stricter per-IP
rate limit than the rest of the API.
*/
package api

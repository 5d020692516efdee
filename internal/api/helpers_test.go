// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/moviematch/internal/auth"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/recommend/storage"
	"github.com/tomtom215/moviematch/internal/users"
)

var testMovies = []recommend.Movie{
	{Title: "Alien", Tags: "space horror alien ship crew"},
	{Title: "Aliens", Tags: "space horror alien marines crew"},
	{Title: "Gravity", Tags: "space astronaut survival"},
	{Title: "Toy Story", Tags: "animation toys friendship"},
	{Title: "Toy Story 2", Tags: "animation toys friendship sequel"},
	{Title: "Heat", Tags: "crime heist los angeles"},
	{Title: "Ronin", Tags: "crime heist car chase"},
}

// testEnv is a fully wired router backed by an in-memory user database.
type testEnv struct {
	t        *testing.T
	handler  *Handler
	users    *users.Store
	sessions *auth.MemorySessionStore
	router   http.Handler
	cookies  []*http.Cookie
}

type envOption func(*ChiMiddlewareConfig)

func newTestEnv(t *testing.T, withModel bool, opts ...envOption) *testEnv {
	t.Helper()

	store, err := users.Open(context.Background(), ":memory:", users.WithBcryptCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("users.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	sessionStore := auth.NewMemorySessionStore()
	cfg := auth.DefaultSessionMiddlewareConfig()
	cfg.CookieSecure = false
	sessions := auth.NewSessionMiddleware(sessionStore, cfg)

	templates, err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates: %v", err)
	}

	h := NewHandler(store, sessions, templates, DefaultHandlerConfig())
	if withModel {
		model, err := recommend.Build(context.Background(), testMovies, recommend.DefaultBuildConfig())
		if err != nil {
			t.Fatalf("recommend.Build: %v", err)
		}
		h.SetModel(model, storage.Metadata{Name: "similarity", Version: 1})
	}

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	for _, opt := range opts {
		opt(mwCfg)
	}

	return &testEnv{
		t:        t,
		handler:  h,
		users:    store,
		sessions: sessionStore,
		router:   NewRouter(h, sessions, NewChiMiddleware(mwCfg)).SetupChi(),
	}
}

// do sends a request through the router, carrying cookies between calls
// like a browser would.
func (e *testEnv) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	e.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range e.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		e.setCookie(c)
	}
	return rec
}

func (e *testEnv) setCookie(c *http.Cookie) {
	kept := e.cookies[:0]
	for _, existing := range e.cookies {
		if existing.Name != c.Name {
			kept = append(kept, existing)
		}
	}
	if c.MaxAge >= 0 && c.Value != "" {
		kept = append(kept, c)
	}
	e.cookies = kept
}

// login creates a user and logs in, leaving a session cookie on e.
func (e *testEnv) login(email, password string) {
	e.t.Helper()
	if _, err := e.users.Create(context.Background(), email, password); err != nil {
		e.t.Fatalf("users.Create: %v", err)
	}
	rec := e.do(http.MethodPost, "/", url.Values{"email": {email}, "password": {password}})
	if rec.Code != http.StatusSeeOther {
		e.t.Fatalf("login status = %d, want %d; body: %s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) (APIResponse, map[string]json.RawMessage) {
	t.Helper()

	var envelope struct {
		APIResponse
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v; body: %s", err, rec.Body.String())
	}
	fields := map[string]json.RawMessage{}
	if len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		if err := json.Unmarshal(envelope.Data, &fields); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	resp := envelope.APIResponse
	resp.Data = envelope.Data
	return resp, fields
}

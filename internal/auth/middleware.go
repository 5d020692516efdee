// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/moviematch/internal/logging"
)

type contextKey string

// AuthSubjectContextKey holds the *AuthSubject of an authenticated request.
const AuthSubjectContextKey contextKey = "auth_subject"

// AuthSubject identifies the logged-in user of a request.
type AuthSubject struct {
	UserID    int64
	Email     string
	SessionID string
}

// GetAuthSubject returns the request's subject or nil.
func GetAuthSubject(ctx context.Context) *AuthSubject {
	subject, _ := ctx.Value(AuthSubjectContextKey).(*AuthSubject)
	return subject
}

// WithAuthSubject stores subject in ctx. Used by middleware and tests.
func WithAuthSubject(ctx context.Context, subject *AuthSubject) context.Context {
	return context.WithValue(ctx, AuthSubjectContextKey, subject)
}

// SessionMiddlewareConfig configures cookies and expiry.
type SessionMiddlewareConfig struct {
	CookieName     string
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite

	SessionTTL time.Duration

	// SlidingSession pushes the expiry forward on every authenticated request.
	SlidingSession bool
}

// DefaultSessionMiddlewareConfig returns a 24h sliding, HttpOnly, Lax cookie.
func DefaultSessionMiddlewareConfig() *SessionMiddlewareConfig {
	return &SessionMiddlewareConfig{
		CookieName:     "moviematch_session",
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
		SessionTTL:     24 * time.Hour,
		SlidingSession: true,
	}
}

// SessionMiddleware loads sessions from cookies and guards routes.
type SessionMiddleware struct {
	store  SessionStore
	config *SessionMiddlewareConfig
}

// NewSessionMiddleware uses DefaultSessionMiddlewareConfig when config is nil.
func NewSessionMiddleware(store SessionStore, config *SessionMiddlewareConfig) *SessionMiddleware {
	if config == nil {
		config = DefaultSessionMiddlewareConfig()
	}
	return &SessionMiddleware{store: store, config: config}
}

// Authenticate attaches an AuthSubject when the request carries a valid
// session cookie. Requests without one pass through unchanged.
func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := m.SessionID(r)
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		session, err := m.store.Get(r.Context(), id)
		if err != nil {
			if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
				logging.Ctx(r.Context()).Error().Err(err).Msg("Session lookup failed")
			}
			next.ServeHTTP(w, r)
			return
		}

		if m.config.SlidingSession {
			if err := m.store.Touch(r.Context(), id, time.Now().Add(m.config.SessionTTL)); err != nil {
				logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to extend session")
			}
		}

		ctx := WithAuthSubject(r.Context(), &AuthSubject{
			UserID:    session.UserID,
			Email:     session.Email,
			SessionID: session.ID,
		})
		ctx = logging.ContextWithUser(ctx, session.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth answers 401 when the request has no valid session.
func (m *SessionMiddleware) RequireAuth(next http.Handler) http.Handler {
	return m.requireAuth(next, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Unauthorized: authentication required", http.StatusUnauthorized)
	})
}

// RequireAuthWith calls unauthorized instead of next for anonymous requests.
func (m *SessionMiddleware) RequireAuthWith(unauthorized http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m.requireAuth(next, unauthorized)
	}
}

// RedirectUnauthenticated sends anonymous browsers to target.
func (m *SessionMiddleware) RedirectUnauthenticated(target string) func(http.Handler) http.Handler {
	return m.RequireAuthWith(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target, http.StatusSeeOther)
	})
}

func (m *SessionMiddleware) requireAuth(next http.Handler, unauthorized http.HandlerFunc) http.Handler {
	return m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthSubject(r.Context()) == nil {
			unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// SessionID reads the session cookie.
func (m *SessionMiddleware) SessionID(r *http.Request) string {
	c, err := r.Cookie(m.config.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// CreateSession starts a session for the user and sets the cookie. Any
// session the request already carried is deleted first so a pre-login ID
// can never be promoted to an authenticated one.
func (m *SessionMiddleware) CreateSession(w http.ResponseWriter, r *http.Request, userID int64, email string) (*Session, error) {
	if old := m.SessionID(r); old != "" {
		if err := m.store.Delete(r.Context(), old); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to delete previous session")
		}
	}

	session, err := NewSession(userID, email, m.config.SessionTTL)
	if err != nil {
		return nil, err
	}
	if err := m.store.Create(r.Context(), session); err != nil {
		return nil, err
	}
	m.setCookie(w, session.ID, int(m.config.SessionTTL.Seconds()))
	return session, nil
}

// DestroySession deletes the request's session, if any, and clears the cookie.
func (m *SessionMiddleware) DestroySession(w http.ResponseWriter, r *http.Request) error {
	var err error
	if id := m.SessionID(r); id != "" {
		err = m.store.Delete(r.Context(), id)
	}
	m.setCookie(w, "", -1)
	return err
}

func (m *SessionMiddleware) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.config.CookieName,
		Value:    value,
		Path:     m.config.CookiePath,
		MaxAge:   maxAge,
		Secure:   m.config.CookieSecure,
		HttpOnly: true,
		SameSite: m.config.CookieSameSite,
	})
}

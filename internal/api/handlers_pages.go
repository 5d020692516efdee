// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/moviematch/internal/auth"
	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/metrics"
	"github.com/tomtom215/moviematch/internal/recommend"
	"github.com/tomtom215/moviematch/internal/users"
	"github.com/tomtom215/moviematch/internal/validation"
)

// Messages shown on the pages.
const (
	msgInvalidCredentials = "Invalid Credentials"
	msgUserExists         = "User already exists"
	msgServerError        = "Something went wrong. Please try again."
	msgModelNotLoaded     = "Recommendations are not available yet."
	msgUnknownMovie       = "We don't know that movie."
	msgBadRequest         = "The form could not be read."
)

// LoginPage handles GET /. Visitors with a live session go straight home.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if auth.GetAuthSubject(r.Context()) != nil {
		http.Redirect(w, r, "/home", http.StatusFound)
		return
	}
	h.templates.render(w, r, http.StatusOK, pageLogin, &pageData{Title: "Log in"})
}

// Login handles POST /.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		h.templates.render(w, r, http.StatusBadRequest, pageLogin, &pageData{Title: "Log in", Error: msgBadRequest})
		return
	}

	form := validation.LoginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	data := &pageData{Title: "Log in", Email: form.Email}

	if verr := validation.ValidateStruct(&form); verr != nil {
		metrics.RecordLogin(metrics.LoginInvalidCredentials)
		data.Error = msgInvalidCredentials
		h.templates.render(w, r, http.StatusUnauthorized, pageLogin, data)
		return
	}

	user, err := h.users.Authenticate(r.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, users.ErrInvalidCredentials):
		metrics.RecordLogin(metrics.LoginInvalidCredentials)
		logging.Ctx(r.Context()).Info().Msg("Login rejected")
		data.Error = msgInvalidCredentials
		h.templates.render(w, r, http.StatusUnauthorized, pageLogin, data)
		return
	case err != nil:
		metrics.RecordLogin(metrics.LoginError)
		logging.Ctx(r.Context()).Error().Err(err).Msg("Login failed")
		data.Error = msgServerError
		h.templates.render(w, r, http.StatusInternalServerError, pageLogin, data)
		return
	}

	if _, err := h.sessions.CreateSession(w, r, user.ID, user.Email); err != nil {
		metrics.RecordLogin(metrics.LoginError)
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to create session")
		data.Error = msgServerError
		h.templates.render(w, r, http.StatusInternalServerError, pageLogin, data)
		return
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User logged in")
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// SignupPage handles GET /signup.
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.templates.render(w, r, http.StatusOK, pageSignup, signupData(""))
}

func signupData(email string) *pageData {
	return &pageData{Title: "Sign up", Email: email, MinPasswordLength: validation.MinPasswordLength}
}

// Signup handles POST /signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		data := signupData("")
		data.Error = msgBadRequest
		h.templates.render(w, r, http.StatusBadRequest, pageSignup, data)
		return
	}

	form := validation.SignupForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	data := signupData(form.Email)

	if verr := validation.ValidateStruct(&form); verr != nil {
		data.Error = verr.Error()
		h.templates.render(w, r, http.StatusBadRequest, pageSignup, data)
		return
	}

	user, err := h.users.Create(r.Context(), form.Email, form.Password)
	switch {
	case errors.Is(err, users.ErrUserExists):
		metrics.RecordSignup(metrics.SignupExists)
		data.Error = msgUserExists
		h.templates.render(w, r, http.StatusConflict, pageSignup, data)
		return
	case err != nil:
		metrics.RecordSignup(metrics.SignupError)
		logging.Ctx(r.Context()).Error().Err(err).Msg("Signup failed")
		data.Error = msgServerError
		h.templates.render(w, r, http.StatusInternalServerError, pageSignup, data)
		return
	}

	metrics.RecordSignup(metrics.SignupCreated)
	logging.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User signed up")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Home handles GET /home.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	data, ok := h.homeData(r)
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}
	h.templates.render(w, r, status, pageHome, data)
}

// HomeRecommend handles POST /home: the top five movies for the one picked.
func (h *Handler) HomeRecommend(w http.ResponseWriter, r *http.Request) {
	data, ok := h.homeData(r)
	if !ok {
		h.templates.render(w, r, http.StatusServiceUnavailable, pageHome, data)
		return
	}
	if !parseForm(w, r) {
		data.Error = msgBadRequest
		h.templates.render(w, r, http.StatusBadRequest, pageHome, data)
		return
	}

	form := validation.HomeForm{Movie: r.PostFormValue("movie")}
	if verr := validation.ValidateStruct(&form); verr != nil {
		metrics.RecordLookup(metrics.LookupInvalid, 0)
		data.Error = verr.Error()
		h.templates.render(w, r, http.StatusBadRequest, pageHome, data)
		return
	}

	loaded := h.Model()
	start := time.Now()
	recs, found := loaded.Model.RecommendScored(form.Movie, recommend.DefaultK)
	outcome := metrics.LookupHit
	if !found {
		outcome = metrics.LookupUnknownTitle
		data.Error = msgUnknownMovie
	}
	metrics.RecordLookup(outcome, time.Since(start))

	data.Selected = form.Movie
	data.Recommended = make([]string, len(recs))
	for i, rec := range recs {
		data.Recommended[i] = rec.Title
	}
	h.templates.render(w, r, http.StatusOK, pageHome, data)
}

// homeData fills the fields every home render needs. ok is false when no
// model is loaded yet.
func (h *Handler) homeData(r *http.Request) (*pageData, bool) {
	data := &pageData{Title: "Home"}
	if subject := auth.GetAuthSubject(r.Context()); subject != nil {
		data.Email = subject.Email
	}
	loaded := h.Model()
	if loaded == nil {
		data.Error = msgModelNotLoaded
		return data, false
	}
	data.Movies = loaded.Model.Titles()
	return data, true
}

// Logout handles GET /logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.DestroySession(w, r); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to delete session on logout")
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// parseForm reads a size-limited urlencoded or multipart body.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Unreadable form body")
		return false
	}
	return true
}

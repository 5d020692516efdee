// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/tomtom215/moviematch/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	pageLogin  = "login"
	pageSignup = "signup"
	pageHome   = "home"
)

// pageData is shared by every page template.
type pageData struct {
	Title             string
	Error             string
	Email             string
	MinPasswordLength int

	// Home page only.
	Movies      []string
	Selected    string
	Recommended []string
}

// Templates holds one parsed template set per page, each sharing the layout.
type Templates struct {
	pages map[string]*template.Template
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageLogin, pageSignup, pageHome} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		t.pages[name] = tmpl
	}
	return t, nil
}

// render executes the page into a buffer first so a template error never
// leaves a half written response.
func (t *Templates) render(w http.ResponseWriter, r *http.Request, status int, name string, data *pageData) {
	tmpl, ok := t.pages[name]
	if !ok {
		logging.Ctx(r.Context()).Error().Str("page", name).Msg("Unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", name).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

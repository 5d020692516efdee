// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package api

import (
	"net/http"
	"testing"

	"github.com/goccy/go-json"
)

func TestRecommendationsAPI(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.login("ada@example.com", "correct horse")

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   string
		wantCount  int
	}{
		{"default k", "?title=Alien", http.StatusOK, "", 5},
		{"explicit k", "?title=Alien&k=2", http.StatusOK, "", 2},
		{"k larger than catalogue", "?title=Alien&k=50", http.StatusOK, "", len(testMovies) - 1},
		{"unknown title", "?title=Nope", http.StatusNotFound, ErrCodeNotFound, 0},
		{"missing title", "", http.StatusBadRequest, ErrCodeValidation, 0},
		{"non-integer k", "?title=Alien&k=five", http.StatusBadRequest, ErrCodeValidation, 0},
		{"zero k", "?title=Alien&k=0", http.StatusBadRequest, ErrCodeValidation, 0},
		{"k over max", "?title=Alien&k=51", http.StatusBadRequest, ErrCodeValidation, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodGet, "/api/v1/recommendations"+tt.query, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			resp, fields := decodeResponse(t, rec)

			if tt.wantCode != "" {
				if resp.Success || resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Fatalf("error = %+v, want code %s", resp.Error, tt.wantCode)
				}
				return
			}

			var recs []struct {
				Title string  `json:"title"`
				Index int     `json:"index"`
				Score float64 `json:"score"`
			}
			if err := json.Unmarshal(fields["recommendations"], &recs); err != nil {
				t.Fatalf("decode recommendations: %v", err)
			}
			if len(recs) != tt.wantCount {
				t.Fatalf("got %d recommendations, want %d", len(recs), tt.wantCount)
			}
			if recs[0].Title != "Aliens" {
				t.Errorf("first recommendation = %q, want Aliens", recs[0].Title)
			}
			for i, r := range recs {
				if r.Title == "Alien" {
					t.Error("query title returned in its own recommendations")
				}
				if i > 0 && r.Score > recs[i-1].Score {
					t.Errorf("scores not descending at %d: %v > %v", i, r.Score, recs[i-1].Score)
				}
			}
			if resp.Meta == nil || resp.Meta.Count == nil || *resp.Meta.Count != tt.wantCount {
				t.Errorf("meta count = %+v, want %d", resp.Meta, tt.wantCount)
			}
		})
	}
}

func TestMoviesAPI(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.login("ada@example.com", "correct horse")

	rec := env.do(http.MethodGet, "/api/v1/movies", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp, _ := decodeResponse(t, rec)

	var titles []string
	if err := json.Unmarshal(resp.Data.(json.RawMessage), &titles); err != nil {
		t.Fatalf("decode titles: %v", err)
	}
	if len(titles) != len(testMovies) {
		t.Fatalf("titles = %d, want %d", len(titles), len(testMovies))
	}
	for i, m := range testMovies {
		if titles[i] != m.Title {
			t.Errorf("titles[%d] = %q, want %q", i, titles[i], m.Title)
		}
	}
}

func TestModelAPI(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)
	env.login("ada@example.com", "correct horse")

	rec := env.do(http.MethodGet, "/api/v1/model", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	_, fields := decodeResponse(t, rec)

	var info struct {
		MovieCount int `json:"movie_count"`
	}
	if err := json.Unmarshal(fields["info"], &info); err != nil {
		t.Fatalf("decode info: %v", err)
	}
	if info.MovieCount != len(testMovies) {
		t.Errorf("movie_count = %d, want %d", info.MovieCount, len(testMovies))
	}

	var artifact struct {
		Name    string `json:"name"`
		Version int    `json:"version"`
	}
	if err := json.Unmarshal(fields["artifact"], &artifact); err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	if artifact.Name != "similarity" || artifact.Version != 1 {
		t.Errorf("artifact = %+v", artifact)
	}
}

func TestAPIRequiresSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, true)

	for _, path := range []string{"/api/v1/movies", "/api/v1/recommendations?title=Alien", "/api/v1/model"} {
		rec := env.do(http.MethodGet, path, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s = %d, want 401", path, rec.Code)
			continue
		}
		resp, _ := decodeResponse(t, rec)
		if resp.Error == nil || resp.Error.Code != ErrCodeUnauthorized {
			t.Errorf("GET %s error = %+v", path, resp.Error)
		}
	}
}

func TestAPIWithoutModel(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, false)
	env.login("ada@example.com", "correct horse")

	for _, path := range []string{"/api/v1/movies", "/api/v1/recommendations?title=Alien", "/api/v1/model"} {
		rec := env.do(http.MethodGet, path, nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s = %d, want 503", path, rec.Code)
			continue
		}
		resp, _ := decodeResponse(t, rec)
		if resp.Error == nil || resp.Error.Code != ErrCodeModelNotLoaded {
			t.Errorf("GET %s error = %+v", path, resp.Error)
		}
	}
}

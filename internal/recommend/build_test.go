// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"context"
	"errors"
	"math"
	"testing"
)

func tagged(pairs ...string) []Movie {
	movies := make([]Movie, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		movies = append(movies, Movie{Title: pairs[i], Tags: pairs[i+1]})
	}
	return movies
}

func TestBuild_EmptyDataset(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), nil, DefaultBuildConfig())
	var empty *EmptyDatasetError
	if !errors.As(err, &empty) {
		t.Fatalf("err = %v, want *EmptyDatasetError", err)
	}
	if !errors.Is(err, ErrEmptyDataset) {
		t.Error("errors.Is(err, ErrEmptyDataset) = false")
	}
}

func TestBuild_MatrixProperties(t *testing.T) {
	t.Parallel()

	movies := tagged(
		"Alien", "space horror crew monster",
		"Aliens", "space marines monster action",
		"Heat", "heist crime los angeles",
		"Ronin", "heist crime action paris",
		"Blank", "",
	)
	m, err := Build(context.Background(), movies, DefaultBuildConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	n := m.Len()
	if n != len(movies) {
		t.Fatalf("Len = %d, want %d", n, len(movies))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.Similarity(i, j)
			if v < 0 || v > 1 {
				t.Errorf("sim(%d,%d) = %v outside [0,1]", i, j, v)
			}
			if v != m.Similarity(j, i) {
				t.Errorf("sim(%d,%d) != sim(%d,%d)", i, j, j, i)
			}
		}
	}
	for i := 0; i < 4; i++ {
		if m.Similarity(i, i) != 1 {
			t.Errorf("sim(%d,%d) = %v, want 1", i, i, m.Similarity(i, i))
		}
	}
	if got := m.Similarity(4, 4); got != 0 {
		t.Errorf("zero-vector self similarity = %v, want 0", got)
	}

	// Alien/Aliens share "space" and "monster": 2 / (2*2)
	if got := m.Similarity(0, 1); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("sim(Alien, Aliens) = %v, want 0.5", got)
	}
	if got := m.Similarity(0, 2); got != 0 {
		t.Errorf("sim(Alien, Heat) = %v, want 0", got)
	}
}

func TestBuild_StopWords(t *testing.T) {
	t.Parallel()

	movies := tagged("A", "the of and war", "B", "the of and peace")

	plain, err := Build(context.Background(), movies, DefaultBuildConfig())
	if err != nil {
		t.Fatal(err)
	}
	if plain.Similarity(0, 1) == 0 {
		t.Error("without stop words the shared function words should match")
	}

	cfg := DefaultBuildConfig()
	cfg.StopWords = "english"
	filtered, err := Build(context.Background(), movies, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := filtered.Similarity(0, 1); got != 0 {
		t.Errorf("with english stop words sim = %v, want 0", got)
	}
	if filtered.Info().StopWords != "english" {
		t.Errorf("Info().StopWords = %q", filtered.Info().StopWords)
	}
}

func TestBuild_Fields(t *testing.T) {
	t.Parallel()

	movies := []Movie{
		{Title: "A", Tags: "heist", Genre: "drama"},
		{Title: "B", Tags: "space", Genre: "drama"},
	}

	tagsOnly, err := Build(context.Background(), movies, DefaultBuildConfig())
	if err != nil {
		t.Fatal(err)
	}
	if tagsOnly.Similarity(0, 1) != 0 {
		t.Error("tags-only documents should not overlap")
	}

	withGenre, err := Build(context.Background(), movies, BuildConfig{Fields: AllFields})
	if err != nil {
		t.Fatal(err)
	}
	if withGenre.Similarity(0, 1) <= 0 {
		t.Error("genre field should make the documents overlap")
	}
}

func TestBuild_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  BuildConfig
	}{
		{"no fields", BuildConfig{}},
		{"bad field", BuildConfig{Fields: []Field{"plot"}}},
		{"bad stop words", BuildConfig{Fields: []Field{FieldTags}, StopWords: "french"}},
		{"negative max features", BuildConfig{Fields: []Field{FieldTags}, MaxFeatures: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Build(context.Background(), tagged("A", "x y"), tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuild_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, tagged("A", "one two", "B", "two three"), DefaultBuildConfig())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuild_SingleEmptyMovie(t *testing.T) {
	t.Parallel()

	m, err := Build(context.Background(), tagged("X", ""), DefaultBuildConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Len() != 1 || m.Similarity(0, 0) != 0 {
		t.Errorf("want 1x1 [[0]], got len %d sim %v", m.Len(), m.Similarity(0, 0))
	}
	if got := m.Recommend("X", 5); len(got) != 0 {
		t.Errorf("Recommend(X) = %v, want empty", got)
	}
}

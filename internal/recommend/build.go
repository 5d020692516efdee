// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/moviematch/internal/recommend/text"
)

// BuildConfig controls how movie documents are vectorized.
type BuildConfig struct {
	// Fields are concatenated, space separated, to form each document.
	Fields []Field

	// StopWords names a list understood by text.StopWords ("none" or "english").
	StopWords string

	// MaxFeatures caps the vocabulary size when > 0.
	MaxFeatures int
}

// DefaultBuildConfig vectorizes the tags column with no stop-word filtering.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Fields:    []Field{FieldTags},
		StopWords: text.StopWordsNone,
	}
}

// Validate checks the configuration without building anything.
func (c *BuildConfig) Validate() error {
	if len(c.Fields) == 0 {
		return fmt.Errorf("at least one text field is required")
	}
	for _, f := range c.Fields {
		if _, err := ParseField(string(f)); err != nil {
			return err
		}
	}
	if _, err := text.StopWords(c.StopWords); err != nil {
		return err
	}
	if c.MaxFeatures < 0 {
		return fmt.Errorf("max features must be >= 0, got %d", c.MaxFeatures)
	}
	return nil
}

// Build vectorizes movies and computes their cosine similarity matrix.
// Movie order is preserved. An empty slice returns *EmptyDatasetError.
func Build(ctx context.Context, movies []Movie, cfg BuildConfig) (*Model, error) {
	if len(movies) == 0 {
		return nil, &EmptyDatasetError{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid build config: %w", err)
	}
	stop, _ := text.StopWords(cfg.StopWords)

	docs := make([]string, len(movies))
	for i := range movies {
		docs[i] = movies[i].Document(cfg.Fields)
	}

	vec := text.NewCountVectorizer(text.Options{StopWords: stop, MaxFeatures: cfg.MaxFeatures})
	counts := vec.FitTransform(docs)

	sim, err := cosineSimilarity(ctx, counts)
	if err != nil {
		return nil, err
	}

	stopName := cfg.StopWords
	if stopName == "" {
		stopName = text.StopWordsNone
	}
	return NewModel(slices.Clone(movies), sim, Info{
		VocabularySize: counts.Terms,
		StopWords:      stopName,
		Fields:         slices.Clone(cfg.Fields),
		BuiltAt:        time.Now().UTC(),
	})
}

type posting struct {
	doc   int
	count float64
}

// cosineSimilarity accumulates the Gram matrix X·Xᵀ term by term through an
// inverted index, then divides by the row norms. Only the upper triangle is
// written, so the result is symmetric by construction.
func cosineSimilarity(ctx context.Context, counts *text.Counts) (*mat.SymDense, error) {
	n := len(counts.Rows)

	postings := make([][]posting, counts.Terms)
	norms := make([]float64, n)
	for i, row := range counts.Rows {
		var sq float64
		for _, e := range row {
			postings[e.Term] = append(postings[e.Term], posting{doc: i, count: e.Count})
			sq += e.Count * e.Count
		}
		norms[i] = math.Sqrt(sq)
	}

	sim := mat.NewSymDense(n, nil)
	raw := sim.RawSymmetric()
	for t, list := range postings {
		if t%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		// postings are in ascending doc order, so a.doc <= b.doc
		for x, a := range list {
			for _, b := range list[x:] {
				raw.Data[a.doc*raw.Stride+b.doc] += a.count * b.count
			}
		}
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := i; j < n; j++ {
			idx := i*raw.Stride + j
			switch {
			case norms[i] == 0 || norms[j] == 0:
				raw.Data[idx] = 0
			case i == j:
				raw.Data[idx] = 1
			default:
				raw.Data[idx] = math.Min(1, raw.Data[idx]/(norms[i]*norms[j]))
			}
		}
	}
	return sim, nil
}

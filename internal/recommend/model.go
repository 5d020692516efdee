// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/mat"
)

// DefaultK is the number of recommendations returned when k <= 0.
const DefaultK = 5

// symmetryTolerance bounds |m[i][j] - m[j][i]| for a loaded matrix.
const symmetryTolerance = 1e-9

// Info describes how a model was built.
type Info struct {
	MovieCount     int       `json:"movie_count"`
	VocabularySize int       `json:"vocabulary_size"`
	StopWords      string    `json:"stop_words"`
	Fields         []Field   `json:"fields"`
	BuiltAt        time.Time `json:"built_at"`
}

// Recommendation is a ranked neighbour of the query movie.
type Recommendation struct {
	Title string  `json:"title"`
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Model pairs the ordered movie list with its similarity matrix.
// It is never modified after construction.
type Model struct {
	movies []Movie
	sim    *mat.SymDense
	index  map[string]int
	info   Info
}

// NewModel validates that sim is n×n for n movies and takes ownership of
// both arguments.
func NewModel(movies []Movie, sim *mat.SymDense, info Info) (*Model, error) {
	if len(movies) == 0 {
		return nil, &CorruptArtifactError{Reason: "model has no movies"}
	}
	if sim == nil {
		return nil, &CorruptArtifactError{Reason: "missing similarity matrix"}
	}
	if n := sim.SymmetricDim(); n != len(movies) {
		return nil, &CorruptArtifactError{
			Reason: fmt.Sprintf("similarity matrix is %dx%d but there are %d movies", n, n, len(movies)),
		}
	}

	index := make(map[string]int, len(movies))
	for i := range movies {
		if movies[i].Title == "" {
			continue
		}
		// first occurrence wins for duplicate titles
		if _, dup := index[movies[i].Title]; !dup {
			index[movies[i].Title] = i
		}
	}

	info.MovieCount = len(movies)
	return &Model{movies: movies, sim: sim, index: index, info: info}, nil
}

// NewModelFromRowMajor rebuilds a model from a flattened n×n matrix, as
// stored in an artifact. The data must be square, finite and symmetric.
func NewModelFromRowMajor(movies []Movie, data []float64, info Info) (*Model, error) {
	n := len(movies)
	if n == 0 {
		return nil, &CorruptArtifactError{Reason: "model has no movies"}
	}
	if len(data) != n*n {
		return nil, &CorruptArtifactError{
			Reason: fmt.Sprintf("matrix has %d entries, want %d for %d movies", len(data), n*n, n),
		}
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			a, b := data[i*n+j], data[j*n+i]
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return nil, &CorruptArtifactError{Reason: fmt.Sprintf("non-finite similarity at (%d,%d)", i, j)}
			}
			if math.Abs(a-b) > symmetryTolerance {
				return nil, &CorruptArtifactError{Reason: fmt.Sprintf("matrix not symmetric at (%d,%d)", i, j)}
			}
		}
	}

	// SymDense reads only the upper triangle; copy so callers keep their slice.
	buf := make([]float64, len(data))
	copy(buf, data)
	return NewModel(movies, mat.NewSymDense(n, buf), info)
}

// Recommend returns up to k titles most similar to title. k <= 0 means
// DefaultK. Unknown titles return an empty, non-nil slice.
func (m *Model) Recommend(title string, k int) []string {
	recs, _ := m.RecommendScored(title, k)
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}
	return out
}

// RecommendScored is Recommend with scores; ok is false for an unknown title.
func (m *Model) RecommendScored(title string, k int) (recs []Recommendation, ok bool) {
	if k <= 0 {
		k = DefaultK
	}
	if title == "" {
		return []Recommendation{}, false
	}
	q, ok := m.index[title]
	if !ok {
		return []Recommendation{}, false
	}

	n := len(m.movies)
	cands := make([]Recommendation, 0, n-1)
	for j := 0; j < n; j++ {
		if j == q {
			continue
		}
		cands = append(cands, Recommendation{Title: m.movies[j].Title, Index: j, Score: m.sim.At(q, j)})
	}

	slices.SortFunc(cands, func(a, b Recommendation) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})

	if len(cands) > k {
		cands = cands[:k]
	}
	return cands, true
}

// Lookup returns the dataset index of title.
func (m *Model) Lookup(title string) (int, bool) {
	i, ok := m.index[title]
	return i, ok
}

// Contains reports whether title is in the model.
func (m *Model) Contains(title string) bool {
	_, ok := m.index[title]
	return ok
}

// Len is the number of movies.
func (m *Model) Len() int { return len(m.movies) }

// Similarity returns sim(i, j).
func (m *Model) Similarity(i, j int) float64 { return m.sim.At(i, j) }

// Titles lists movie titles in dataset order.
func (m *Model) Titles() []string {
	out := make([]string, len(m.movies))
	for i := range m.movies {
		out[i] = m.movies[i].Title
	}
	return out
}

// Movies returns a copy of the movie list.
func (m *Model) Movies() []Movie {
	return slices.Clone(m.movies)
}

// Info returns build metadata.
func (m *Model) Info() Info {
	info := m.info
	info.Fields = slices.Clone(m.info.Fields)
	return info
}

// RowMajor flattens the full matrix, both triangles included.
func (m *Model) RowMajor() []float64 {
	n := len(m.movies)
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i*n+j] = m.sim.At(i, j)
		}
	}
	return out
}

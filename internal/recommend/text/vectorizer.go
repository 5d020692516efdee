// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package text

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrNotFitted is returned by Transform before Fit has been called.
var ErrNotFitted = errors.New("vectorizer has not been fitted")

// Options configures a CountVectorizer.
type Options struct {
	// StopWords are dropped from the vocabulary. Compared after lowercasing.
	StopWords []string

	// MaxFeatures keeps only the most frequent terms when > 0.
	// Ties are broken alphabetically.
	MaxFeatures int
}

// Entry is one non-zero cell of a count row.
type Entry struct {
	Term  int
	Count float64
}

// Counts is a sparse document-term matrix. Rows[i] lists the non-zero
// entries of document i in ascending term order.
type Counts struct {
	Rows  [][]Entry
	Terms int
}

// Dense expands c into a gonum matrix. A corpus with no terms yields a
// single all-zero column, since gonum has no zero-width matrices. Returns
// nil when there are no documents.
func (c *Counts) Dense() *mat.Dense {
	if len(c.Rows) == 0 {
		return nil
	}
	cols := c.Terms
	if cols == 0 {
		cols = 1
	}
	d := mat.NewDense(len(c.Rows), cols, nil)
	for i, row := range c.Rows {
		for _, e := range row {
			d.Set(i, e.Term, e.Count)
		}
	}
	return d
}

// CountVectorizer maps documents to term-count vectors.
type CountVectorizer struct {
	stop        map[string]struct{}
	maxFeatures int

	vocab []string
	index map[string]int
}

// NewCountVectorizer returns an unfitted vectorizer.
func NewCountVectorizer(opts Options) *CountVectorizer {
	stop := make(map[string]struct{}, len(opts.StopWords))
	for _, w := range opts.StopWords {
		stop[w] = struct{}{}
	}
	return &CountVectorizer{stop: stop, maxFeatures: opts.MaxFeatures}
}

// Fit learns the vocabulary from docs, replacing any earlier one.
func (v *CountVectorizer) Fit(docs []string) {
	freq := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range Tokenize(doc) {
			if _, skip := v.stop[tok]; skip {
				continue
			}
			freq[tok]++
		}
	}

	terms := make([]string, 0, len(freq))
	for t := range freq {
		terms = append(terms, t)
	}

	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		sort.Slice(terms, func(a, b int) bool {
			if freq[terms[a]] != freq[terms[b]] {
				return freq[terms[a]] > freq[terms[b]]
			}
			return terms[a] < terms[b]
		})
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	v.vocab = terms
	v.index = make(map[string]int, len(terms))
	for i, t := range terms {
		v.index[t] = i
	}
}

// Transform counts vocabulary terms in each document. Unknown terms and
// stop words are ignored, so a document may produce an empty row.
func (v *CountVectorizer) Transform(docs []string) (*Counts, error) {
	if v.index == nil {
		return nil, ErrNotFitted
	}

	out := &Counts{Rows: make([][]Entry, len(docs)), Terms: len(v.vocab)}
	for i, doc := range docs {
		counts := make(map[int]float64)
		for _, tok := range Tokenize(doc) {
			if j, ok := v.index[tok]; ok {
				counts[j]++
			}
		}
		row := make([]Entry, 0, len(counts))
		for j, c := range counts {
			row = append(row, Entry{Term: j, Count: c})
		}
		sort.Slice(row, func(a, b int) bool { return row[a].Term < row[b].Term })
		out.Rows[i] = row
	}
	return out, nil
}

// FitTransform is Fit followed by Transform on the same documents.
func (v *CountVectorizer) FitTransform(docs []string) *Counts {
	v.Fit(docs)
	c, _ := v.Transform(docs) // cannot fail after Fit
	return c
}

// Vocabulary returns the learned terms in column order.
func (v *CountVectorizer) Vocabulary() []string {
	out := make([]string, len(v.vocab))
	copy(out, v.vocab)
	return out
}

// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package text

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single letters dropped", "a b c", nil},
		{"lowercased", "Action THRILLER", []string{"action", "thriller"}},
		{"punctuation splits", "Sci-Fi, a space_opera!", []string{"sci", "fi", "space_opera"}},
		{"digits kept", "top 10 of 2001", []string{"top", "10", "of", "2001"}},
		{"unicode letters", "Amélie Café", []string{"amélie", "café"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStopWords(t *testing.T) {
	t.Parallel()

	none, err := StopWords("")
	if err != nil || none != nil {
		t.Fatalf("StopWords(\"\") = %v, %v", none, err)
	}
	en, err := StopWords("English")
	if err != nil {
		t.Fatalf("StopWords(English): %v", err)
	}
	if len(en) != len(englishStopWords) {
		t.Errorf("english list has %d words, want %d", len(en), len(englishStopWords))
	}
	if _, err := StopWords("klingon"); err == nil {
		t.Error("expected error for unknown list")
	}
}

func TestCountVectorizer_Vocabulary(t *testing.T) {
	t.Parallel()

	docs := []string{"the dark knight", "dark city", "the city of god"}

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"all terms sorted", Options{}, []string{"city", "dark", "god", "knight", "of", "the"}},
		{"english stop words", Options{StopWords: EnglishStopWords()}, []string{"city", "dark", "god", "knight"}},
		// city=2 dark=2 the=2, alphabetical tie-break keeps city and dark
		{"max features", Options{MaxFeatures: 2}, []string{"city", "dark"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := NewCountVectorizer(tt.opts)
			v.Fit(docs)
			if got := v.Vocabulary(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Vocabulary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountVectorizer_Transform(t *testing.T) {
	t.Parallel()

	v := NewCountVectorizer(Options{})
	counts := v.FitTransform([]string{"war war peace", "", "peace"})

	if counts.Terms != 2 {
		t.Fatalf("Terms = %d, want 2", counts.Terms)
	}
	want := [][]Entry{
		{{Term: 0, Count: 1}, {Term: 1, Count: 2}},
		{},
		{{Term: 0, Count: 1}},
	}
	if !reflect.DeepEqual(counts.Rows, want) {
		t.Errorf("Rows = %v, want %v", counts.Rows, want)
	}

	d := counts.Dense()
	if r, c := d.Dims(); r != 3 || c != 2 {
		t.Fatalf("Dense dims = %dx%d", r, c)
	}
	if d.At(0, 1) != 2 {
		t.Errorf("Dense(0,1) = %v, want 2", d.At(0, 1))
	}
}

func TestCountVectorizer_EmptyVocabulary(t *testing.T) {
	t.Parallel()

	v := NewCountVectorizer(Options{StopWords: EnglishStopWords()})
	counts := v.FitTransform([]string{"the and of", ""})

	if counts.Terms != 0 {
		t.Errorf("Terms = %d, want 0", counts.Terms)
	}
	for i, row := range counts.Rows {
		if len(row) != 0 {
			t.Errorf("row %d = %v, want empty", i, row)
		}
	}
	if _, c := counts.Dense().Dims(); c != 1 {
		t.Errorf("Dense cols = %d, want 1", c)
	}
}

func TestCountVectorizer_TransformBeforeFit(t *testing.T) {
	t.Parallel()

	_, err := NewCountVectorizer(Options{}).Transform([]string{"x"})
	if !errors.Is(err, ErrNotFitted) {
		t.Errorf("err = %v, want ErrNotFitted", err)
	}
}

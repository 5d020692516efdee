// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import (
	"fmt"
	"strings"
)

// Movie is one row of the dataset. Title is the lookup key.
type Movie struct {
	Title    string `json:"title"`
	Tags     string `json:"tags,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Actor    string `json:"actor,omitempty"`
	Language string `json:"language,omitempty"`
}

// Field names a descriptive Movie column.
type Field string

const (
	FieldTags     Field = "tags"
	FieldGenre    Field = "genre"
	FieldActor    Field = "actor"
	FieldLanguage Field = "language"
)

// AllFields is the enriched document layout: tags genre actor language.
var AllFields = []Field{FieldTags, FieldGenre, FieldActor, FieldLanguage}

// ParseField validates a field name (case-insensitive).
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FieldTags, FieldGenre, FieldActor, FieldLanguage:
		return f, nil
	}
	return "", fmt.Errorf("unknown movie field %q", s)
}

// ParseFields validates a list of field names.
func ParseFields(names []string) ([]Field, error) {
	out := make([]Field, 0, len(names))
	for _, n := range names {
		f, err := ParseField(n)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Value returns the movie's text for f.
func (m *Movie) Value(f Field) string {
	switch f {
	case FieldTags:
		return m.Tags
	case FieldGenre:
		return m.Genre
	case FieldActor:
		return m.Actor
	case FieldLanguage:
		return m.Language
	}
	return ""
}

// Document joins the given fields with single spaces, in order.
func (m *Movie) Document(fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = m.Value(f)
	}
	return strings.Join(parts, " ")
}

// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package dataset reads the movie CSV consumed by the trainer.
//
// The first row is a header. Columns are located by name, ignoring case and
// surrounding whitespace, so their order does not matter and unknown columns
// are ignored. Only "title" is required; "tags", "genre", "actor" and
// "language" default to empty text when absent. Rows whose title is blank
// are skipped and counted.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tomtom215/moviematch/internal/logging"
	"github.com/tomtom215/moviematch/internal/recommend"
)

// ErrNoTitleColumn means the header lacks a title column.
var ErrNoTitleColumn = errors.New("csv header has no title column")

// Dataset is the parsed result of a CSV file.
type Dataset struct {
	Source  string
	Movies  []recommend.Movie
	Skipped int
}

// Load opens and parses the CSV file at path.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration or flags
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only

	ds, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	ds.Source = path
	return ds, nil
}

// Read parses CSV movie rows from r. An input with a header but no rows is
// not an error here; the builder rejects empty datasets.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Dataset{Movies: []recommend.Movie{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[key]; !dup {
			cols[key] = i
		}
	}
	if _, ok := cols["title"]; !ok {
		return nil, ErrNoTitleColumn
	}

	get := func(rec []string, col string) string {
		if i, ok := cols[col]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	ds := &Dataset{Movies: []recommend.Movie{}}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		m := recommend.Movie{
			Title:    get(rec, "title"),
			Tags:     get(rec, "tags"),
			Genre:    get(rec, "genre"),
			Actor:    get(rec, "actor"),
			Language: get(rec, "language"),
		}
		if m.Title == "" {
			ds.Skipped++
			continue
		}
		ds.Movies = append(ds.Movies, m)
	}

	if ds.Skipped > 0 {
		logging.Warn().Int("skipped", ds.Skipped).Msg("Skipped dataset rows without a title")
	}
	return ds, nil
}

// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/moviematch/internal/recommend"
)

func TestRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []recommend.Movie
		skipped int
		wantErr error
	}{
		{
			name:  "all columns any order",
			input: "language,Title,tags,genre,actor\nen,Heat,heist crime,Crime,De Niro\n",
			want:  []recommend.Movie{{Title: "Heat", Tags: "heist crime", Genre: "Crime", Actor: "De Niro", Language: "en"}},
		},
		{
			name:  "tags only",
			input: "title,tags\nAlien,space horror\n\"Up, Again\",\"balloon, house\"\n",
			want: []recommend.Movie{
				{Title: "Alien", Tags: "space horror"},
				{Title: "Up, Again", Tags: "balloon, house"},
			},
		},
		{
			name:    "blank titles skipped",
			input:   "title,tags\n  ,orphan\nRonin,heist\n",
			want:    []recommend.Movie{{Title: "Ronin", Tags: "heist"}},
			skipped: 1,
		},
		{
			name:  "short rows padded",
			input: "title,tags,genre\nSolo\n",
			want:  []recommend.Movie{{Title: "Solo"}},
		},
		{
			name:  "byte order mark",
			input: "\ufefftitle,tags\nX,y z\n",
			want:  []recommend.Movie{{Title: "X", Tags: "y z"}},
		},
		{
			name:  "header only",
			input: "title,tags\n",
			want:  []recommend.Movie{},
		},
		{
			name:  "empty input",
			input: "",
			want:  []recommend.Movie{},
		},
		{
			name:    "missing title column",
			input:   "name,tags\nHeat,crime\n",
			wantErr: ErrNoTitleColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ds, err := Read(strings.NewReader(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !reflect.DeepEqual(ds.Movies, tt.want) {
				t.Errorf("Movies = %+v, want %+v", ds.Movies, tt.want)
			}
			if ds.Skipped != tt.skipped {
				t.Errorf("Skipped = %d, want %d", ds.Skipped, tt.skipped)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "movies.csv")
	if err := os.WriteFile(path, []byte("title,tags\nHeat,crime\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Source != path || len(ds.Movies) != 1 {
		t.Errorf("Load = %+v", ds)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}

// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/tomtom215/moviematch/internal/recommend"
)

const artifactExt = ".gob.gz"

// ErrNoModel is returned by Load when no version of the name exists.
var ErrNoModel = errors.New("no stored model")

// Store manages versioned artifacts in one directory.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates dir if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create model directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir is the backing directory.
func (s *Store) Dir() string { return s.dir }

// Save writes model as the next version of name and returns its metadata.
//
//nolint:gocritic // meta is small and copied on purpose
func (s *Store) Save(ctx context.Context, name string, model *recommend.Model, meta Metadata) (Metadata, error) {
	if err := validName(name); err != nil {
		return meta, err
	}
	if err := ctx.Err(); err != nil {
		return meta, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.versions(name)
	if err != nil {
		return meta, err
	}
	next := 1
	if len(versions) > 0 {
		next = versions[len(versions)-1] + 1
	}

	meta.Name = name
	meta.Version = next
	return SaveFile(s.path(name, next), model, meta)
}

// Load reads a version of name; version 0 means the latest.
func (s *Store) Load(ctx context.Context, name string, version int) (*recommend.Model, *Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		versions, err := s.versions(name)
		if err != nil {
			return nil, nil, err
		}
		if len(versions) == 0 {
			return nil, nil, fmt.Errorf("%w named %q in %s", ErrNoModel, name, s.dir)
		}
		version = versions[len(versions)-1]
	}
	return LoadFile(s.path(name, version))
}

// LatestVersion returns the highest stored version of name.
func (s *Store) LatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions, err := s.versions(name)
	if err != nil || len(versions) == 0 {
		return 0, false
	}
	return versions[len(versions)-1], true
}

// ListVersions returns the stored versions of name in ascending order.
func (s *Store) ListVersions(name string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.versions(name)
}

// Prune deletes all but the newest keep versions of name.
func (s *Store) Prune(ctx context.Context, name string, keep int) (removed int, err error) {
	if keep < 1 {
		keep = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	versions, err := s.versions(name)
	if err != nil {
		return 0, err
	}
	for i := 0; i < len(versions)-keep; i++ {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := os.Remove(s.path(name, versions[i])); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("remove version %d: %w", versions[i], err)
		}
		removed++
	}
	return removed, nil
}

func (s *Store) path(name string, version int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_v%d%s", name, version, artifactExt))
}

// versions must be called with mu held.
func (s *Store) versions(name string) ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read model directory: %w", err)
	}

	var out []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, v, ok := parseFilename(e.Name())
		if ok && n == name {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out, nil
}

// parseFilename splits "similarity_v12.gob.gz" into ("similarity", 12).
func parseFilename(file string) (name string, version int, ok bool) {
	base, found := strings.CutSuffix(file, artifactExt)
	if !found {
		return "", 0, false
	}
	i := strings.LastIndex(base, "_v")
	if i <= 0 {
		return "", 0, false
	}
	v, err := strconv.Atoi(base[i+2:])
	if err != nil || v < 1 {
		return "", 0, false
	}
	return base[:i], v, true
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid model name %q", name)
	}
	return nil
}

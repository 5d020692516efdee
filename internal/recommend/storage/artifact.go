// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package storage persists recommend.Model values as single-file artifacts.
//
// # Format
//
// An artifact is one gob-encoded envelope:
//
//	envelope{Metadata, CompressedData}
//
// CompressedData is gzip(gob(modelState)) and Metadata.Checksum is the
// SHA-256 of the uncompressed gob bytes. modelState carries the ordered movie
// list together with the flattened N×N similarity matrix, so the two can
// never drift apart on disk. Any decode, checksum, format or shape failure
// is reported as *recommend.CorruptArtifactError.
//
// Store keeps a directory of versioned artifacts named {name}_v{N}.gob.gz.
package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/tomtom215/moviematch/internal/recommend"
)

// FormatVersion is bumped whenever modelState changes incompatibly.
const FormatVersion = 1

// Metadata describes a stored artifact.
type Metadata struct {
	Name            string    `json:"name"`
	Version         int       `json:"version"`
	FormatVersion   int       `json:"format_version"`
	MovieCount      int       `json:"movie_count"`
	VocabularySize  int       `json:"vocabulary_size"`
	StopWords       string    `json:"stop_words"`
	Checksum        string    `json:"checksum"`
	SizeBytes       int64     `json:"size_bytes"`
	BuiltAt         time.Time `json:"built_at"`
	SavedAt         time.Time `json:"saved_at"`
	BuildDurationMS int64     `json:"build_duration_ms"`
}

type envelope struct {
	Metadata       Metadata
	CompressedData []byte
}

type modelState struct {
	Movies []recommend.Movie
	N      int
	Matrix []float64
	Info   recommend.Info
}

// Encode writes model to w. Checksum, sizes and counts in meta are filled in
// and the completed metadata is returned.
//
//nolint:gocritic // meta is small and copied on purpose
func Encode(w io.Writer, model *recommend.Model, meta Metadata) (Metadata, error) {
	info := model.Info()
	state := modelState{
		Movies: model.Movies(),
		N:      model.Len(),
		Matrix: model.RowMajor(),
		Info:   info,
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(state); err != nil {
		return meta, fmt.Errorf("encode model: %w", err)
	}
	sum := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return meta, fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return meta, fmt.Errorf("finalize compression: %w", err)
	}

	meta.FormatVersion = FormatVersion
	meta.Checksum = hex.EncodeToString(sum[:])
	meta.SizeBytes = int64(compressed.Len())
	meta.MovieCount = info.MovieCount
	meta.VocabularySize = info.VocabularySize
	meta.StopWords = info.StopWords
	meta.BuiltAt = info.BuiltAt
	if meta.SavedAt.IsZero() {
		meta.SavedAt = time.Now().UTC()
	}

	if err := gob.NewEncoder(w).Encode(envelope{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		return meta, fmt.Errorf("write artifact: %w", err)
	}
	return meta, nil
}

// Decode reads and validates an artifact.
func Decode(r io.Reader) (*recommend.Model, *Metadata, error) {
	var env envelope
	if err := gob.NewDecoder(r).Decode(&env); err != nil {
		return nil, nil, &recommend.CorruptArtifactError{Reason: "read envelope", Err: err}
	}
	if env.Metadata.FormatVersion != FormatVersion {
		return nil, nil, &recommend.CorruptArtifactError{
			Reason: fmt.Sprintf("format version %d, want %d", env.Metadata.FormatVersion, FormatVersion),
		}
	}

	gzr, err := gzip.NewReader(bytes.NewReader(env.CompressedData))
	if err != nil {
		return nil, nil, &recommend.CorruptArtifactError{Reason: "decompress", Err: err}
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // read-only

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, &recommend.CorruptArtifactError{Reason: "decompress", Err: err}
	}

	sum := sha256.Sum256(raw)
	if got := hex.EncodeToString(sum[:]); got != env.Metadata.Checksum {
		return nil, nil, &recommend.CorruptArtifactError{
			Reason: fmt.Sprintf("checksum mismatch: expected %s, got %s", env.Metadata.Checksum, got),
		}
	}

	var state modelState
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&state); err != nil {
		return nil, nil, &recommend.CorruptArtifactError{Reason: "decode model", Err: err}
	}
	if state.N != len(state.Movies) {
		return nil, nil, &recommend.CorruptArtifactError{
			Reason: fmt.Sprintf("header says %d movies, found %d", state.N, len(state.Movies)),
		}
	}

	model, err := recommend.NewModelFromRowMajor(state.Movies, state.Matrix, state.Info)
	if err != nil {
		return nil, nil, err
	}
	return model, &env.Metadata, nil
}

// SaveFile writes an artifact to path through a temporary file and rename,
// so readers never observe a partial artifact.
//
//nolint:gocritic // see Encode
func SaveFile(path string, model *recommend.Model, meta Metadata) (Metadata, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return meta, fmt.Errorf("create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return meta, fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() //nolint:errcheck // no-op after rename

	meta, err = Encode(tmp, model, meta)
	if err != nil {
		_ = tmp.Close() //nolint:errcheck // already failing
		return meta, err
	}
	if err := tmp.Close(); err != nil {
		return meta, fmt.Errorf("close temp artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return meta, fmt.Errorf("install artifact: %w", err)
	}
	return meta, nil
}

// LoadFile reads the artifact at path. A missing file is returned as the
// underlying *fs.PathError; everything else that goes wrong is corruption.
func LoadFile(path string) (*recommend.Model, *Metadata, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only

	model, meta, err := Decode(f)
	if err != nil {
		if ce, ok := err.(*recommend.CorruptArtifactError); ok && ce.Path == "" {
			ce.Path = path
		}
		return nil, nil, err
	}
	return model, meta, nil
}

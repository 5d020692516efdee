// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package recommend

import "errors"

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrEmptyDataset    = errors.New("empty dataset")
	ErrCorruptArtifact = errors.New("corrupt model artifact")
)

// EmptyDatasetError is returned by Build when there are no movies.
// No artifact is produced in that case.
type EmptyDatasetError struct {
	Source string
}

func (e *EmptyDatasetError) Error() string {
	if e.Source == "" {
		return "empty dataset: no movies to build a model from"
	}
	return "empty dataset: no movies in " + e.Source
}

func (e *EmptyDatasetError) Is(target error) bool { return target == ErrEmptyDataset }

// CorruptArtifactError means a persisted model could not be decoded or
// failed validation (checksum, shape, or movie/matrix cardinality).
type CorruptArtifactError struct {
	Path   string
	Reason string
	Err    error
}

func (e *CorruptArtifactError) Error() string {
	msg := "corrupt model artifact"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CorruptArtifactError) Unwrap() error { return e.Err }

func (e *CorruptArtifactError) Is(target error) bool { return target == ErrCorruptArtifact }

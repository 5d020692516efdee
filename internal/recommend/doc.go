// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package recommend builds and serves a content-based movie similarity model.
//
// # Building
//
// Build concatenates the configured text fields of every movie into one
// document, counts words with a text.CountVectorizer and computes the
// all-pairs cosine similarity of the count vectors:
//
//	sim(i, j) = (x_i · x_j) / (‖x_i‖ ‖x_j‖)
//
// The result is a square, symmetric matrix aligned with the movie slice.
// A movie whose document has no vocabulary terms has similarity 0 to every
// movie, itself included. Every other diagonal entry is exactly 1.
//
// # Lookup
//
// A Model is immutable once constructed and safe for concurrent use:
//
//	model, err := recommend.Build(ctx, movies, recommend.DefaultBuildConfig())
//	titles := model.Recommend("The Dark Knight", 5)
//
// Recommend ranks all other movies by descending similarity, breaks ties
// by ascending dataset position and never returns the query itself. An
// unknown title yields an empty list.
//
// Models are persisted by the storage subpackage.
package recommend

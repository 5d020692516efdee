// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package auth

import "fmt"

// Session store backends.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

// NewSessionStore builds the backend named by kind. path is only used by
// the badger backend.
func NewSessionStore(kind, path string) (SessionStore, error) {
	switch kind {
	case "", StoreMemory:
		return NewMemorySessionStore(), nil
	case StoreBadger:
		s, err := OpenBadgerSessionStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown session store %q", kind)
	}
}

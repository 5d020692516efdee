// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

package storage

import (
	"bytes"
	"encoding/gob"
	"testing"
)

func decodeEnvelope(t *testing.T, data []byte, env *envelope) {
	t.Helper()
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
}

func encodeEnvelope(t *testing.T, env *envelope) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(env); err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
	return buf.Bytes()
}

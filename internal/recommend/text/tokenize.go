// MovieMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviematch

// Package text turns free-form movie descriptions into bag-of-words count
// vectors.
//
// Tokenization lowercases the input and keeps every maximal run of two or
// more word characters (Unicode letters, digits and underscore). Single
// characters and punctuation are discarded:
//
//	Tokenize("Sci-Fi, a space_opera!")  // ["sci", "fi", "space_opera"]
//
// A CountVectorizer learns a sorted vocabulary from a corpus and produces
// one sparse count row per document.
package text

import (
	"regexp"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases s and splits it into word tokens of length >= 2.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	return tokenPattern.FindAllString(strings.ToLower(s), -1)
}

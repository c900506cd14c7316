// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minTokenRunes is the shortest token kept by Tokenize.
const minTokenRunes = 2

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// Tokenize splits a soup into lowercase terms. A term is a run of letters,
// numbers (including numerals such as Ⅱ and ³) or underscores at least two runes long that is not a stop word.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minTokenRunes || IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "strings"

// Field is a text feature accepted by Normalize: either a Scalar or a Vector.
type Field interface {
	isField()
}

// Scalar is a single text value.
type Scalar string

// Vector is a list of text values normalized elementwise.
type Vector []string

func (Scalar) isField() {}
func (Vector) isField() {}

// Normalize lowercases a field and removes ASCII spaces from it.
// Any other field kind, including nil, normalizes to an empty Scalar.
func Normalize(f Field) Field {
	switch v := f.(type) {
	case Scalar:
		return Scalar(NormalizeText(string(v)))
	case Vector:
		out := make(Vector, len(v))
		for i, s := range v {
			out[i] = NormalizeText(s)
		}
		return out
	default:
		return Scalar("")
	}
}

// NormalizeText is Normalize for a plain string. Only U+0020 is removed;
// tabs and other whitespace are kept.
func NormalizeText(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, " ", ""))
}

// Compose joins a normalized title and genres into a soup.
func Compose(title, genres string) string {
	return title + genres
}

// NormalizeEntry derives the comparable features of a catalog entry.
func NormalizeEntry(e CatalogEntry) NormalizedEntry {
	title := NormalizeText(e.Title)
	genres := NormalizeText(e.Genres)
	return NormalizedEntry{
		ID:     e.ID,
		Title:  title,
		Genres: genres,
		Soup:   Compose(title, genres),
	}
}

// NormalizeCatalog applies NormalizeEntry to every entry, keeping order.
func NormalizeCatalog(entries []CatalogEntry) []NormalizedEntry {
	out := make([]NormalizedEntry, len(entries))
	for i, e := range entries {
		out[i] = NormalizeEntry(e)
	}
	return out
}

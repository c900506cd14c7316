// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// SimilarityIndex holds the pairwise cosine similarity of every catalog
// entry. Rows and columns are positions in the normalized catalog, not
// movie IDs.
type SimilarityIndex struct {
	// Matrix is symmetric with a diagonal of 1.
	Matrix [][]float64

	// TitleIndex maps a normalized title to its row. When titles collide
	// the last entry wins.
	TitleIndex map[string]int

	// IDs maps a row back to its movie ID.
	IDs []int64

	// Vocabulary is the number of distinct terms across all soups.
	Vocabulary int
}

// Len returns the number of indexed entries.
func (idx *SimilarityIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.IDs)
}

// termCount is one non-zero cell of a count vector.
type termCount struct {
	term  int
	count float64
}

// countVector is a sparse term-count vector sorted by term.
type countVector struct {
	cells []termCount
	norm  float64
}

// BuildIndex vectorizes the soups of entries and computes their pairwise
// cosine similarity. An empty input yields an empty index. The only error
// is ctx expiring while the matrix is filled.
func BuildIndex(ctx context.Context, entries []NormalizedEntry) (*SimilarityIndex, error) {
	n := len(entries)
	idx := &SimilarityIndex{
		Matrix:     make([][]float64, n),
		TitleIndex: make(map[string]int, n),
		IDs:        make([]int64, n),
	}
	if n == 0 {
		return idx, nil
	}

	vocab := make(map[string]int)
	vectors := make([]countVector, n)
	for i, e := range entries {
		idx.IDs[i] = e.ID
		idx.TitleIndex[e.Title] = i
		vectors[i] = vectorize(Tokenize(e.Soup), vocab)
	}
	idx.Vocabulary = len(vocab)

	for i := range idx.Matrix {
		idx.Matrix[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build similarity index: %w", err)
		}
		idx.Matrix[i][i] = 1
		for j := i + 1; j < n; j++ {
			s := cosine(vectors[i], vectors[j])
			idx.Matrix[i][j] = s
			idx.Matrix[j][i] = s
		}
	}

	return idx, nil
}

// vectorize counts tokens, assigning new vocabulary slots as terms appear.
func vectorize(tokens []string, vocab map[string]int) countVector {
	counts := make(map[int]float64, len(tokens))
	for _, tok := range tokens {
		id, ok := vocab[tok]
		if !ok {
			id = len(vocab)
			vocab[tok] = id
		}
		counts[id]++
	}

	v := countVector{cells: make([]termCount, 0, len(counts))}
	var sumSquares float64
	for term, c := range counts {
		v.cells = append(v.cells, termCount{term: term, count: c})
		sumSquares += c * c
	}
	sort.Slice(v.cells, func(a, b int) bool {
		return v.cells[a].term < v.cells[b].term
	})
	v.norm = math.Sqrt(sumSquares)
	return v
}

// cosine returns the cosine similarity of two count vectors, or 0 when
// either has no terms.
func cosine(a, b countVector) float64 {
	if a.norm == 0 || b.norm == 0 {
		return 0
	}

	var dot float64
	i, j := 0, 0
	for i < len(a.cells) && j < len(b.cells) {
		switch {
		case a.cells[i].term == b.cells[j].term:
			dot += a.cells[i].count * b.cells[j].count
			i++
			j++
		case a.cells[i].term < b.cells[j].term:
			i++
		default:
			j++
		}
	}

	s := dot / (a.norm * b.norm)
	// Rounding can push identical vectors just past 1.
	if s > 1 {
		s = 1
	}
	return s
}

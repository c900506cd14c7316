// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "sort"

// Neighbor is one column of a similarity row.
type Neighbor struct {
	Position int
	MovieID  int64
	Score    float64
}

// Neighbors returns up to k entries most similar to title, best first.
// The title must already be normalized. Ties keep catalog order and the
// title's own row is never included. An unknown title returns nil.
func (idx *SimilarityIndex) Neighbors(title string, k int) []Neighbor {
	if idx.Len() == 0 || k <= 0 {
		return nil
	}
	self, ok := idx.TitleIndex[title]
	if !ok {
		return nil
	}

	row := idx.Matrix[self]
	ranked := make([]Neighbor, 0, len(row)-1)
	for pos, score := range row {
		if pos == self {
			continue
		}
		ranked = append(ranked, Neighbor{Position: pos, MovieID: idx.IDs[pos], Score: score})
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Score > ranked[b].Score
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// Lookup is Neighbors reduced to movie IDs.
func (idx *SimilarityIndex) Lookup(title string, k int) []int64 {
	neighbors := idx.Neighbors(title, k)
	if len(neighbors) == 0 {
		return []int64{}
	}
	ids := make([]int64, len(neighbors))
	for i, n := range neighbors {
		ids[i] = n.MovieID
	}
	return ids
}

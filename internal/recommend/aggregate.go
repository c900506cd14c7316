// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"sort"
)

// Boost returns the score of a candidate suggested once more.
// For any positive score the result is strictly larger.
func Boost(score float64) float64 {
	return score * (1 + math.Log(score+1))
}

// Aggregator merges neighbor lists from several seeds. The zero value is
// ready to use; an Aggregator is not safe for concurrent use.
type Aggregator struct {
	byID  map[int64]*Candidate
	order []*Candidate
}

// Add records one seed's neighbors. New movies start at score 1 and movies
// already seen are boosted.
func (a *Aggregator) Add(movieIDs []int64) {
	if a.byID == nil {
		a.byID = make(map[int64]*Candidate)
	}
	for _, id := range movieIDs {
		if c, ok := a.byID[id]; ok {
			c.Score = Boost(c.Score)
			continue
		}
		c := &Candidate{MovieID: id, Score: 1, seq: len(a.order)}
		a.byID[id] = c
		a.order = append(a.order, c)
	}
}

// Len returns the number of distinct candidates.
func (a *Aggregator) Len() int {
	return len(a.order)
}

// Candidate returns the accumulated candidate for id.
func (a *Aggregator) Candidate(id int64) (Candidate, bool) {
	c, ok := a.byID[id]
	if !ok {
		return Candidate{}, false
	}
	return *c, true
}

// Ranked returns up to limit candidates by descending score. Equal scores
// keep the order in which the movies were first added.
func (a *Aggregator) Ranked(limit int) []Candidate {
	out := make([]Candidate, len(a.order))
	for i, c := range a.order {
		out[i] = *c
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].seq < out[j].seq
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Rank returns the IDs of Ranked(limit).
func (a *Aggregator) Rank(limit int) []int64 {
	ranked := a.Ranked(limit)
	ids := make([]int64, len(ranked))
	for i, c := range ranked {
		ids[i] = c.MovieID
	}
	return ids
}

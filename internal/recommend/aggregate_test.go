// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestBoost(t *testing.T) {
	want := 1 + math.Log(2)
	if got := Boost(1); got != want {
		t.Errorf("Boost(1) = %v, want %v", got, want)
	}

	for _, s := range []float64{0.001, 1, 1.5, 10, 1000} {
		if got := Boost(s); got <= s {
			t.Errorf("Boost(%v) = %v, want > %v", s, got, s)
		}
	}
}

func TestAggregator_AddAndBoost(t *testing.T) {
	var agg Aggregator
	agg.Add([]int64{7, 8})
	agg.Add([]int64{7})
	agg.Add([]int64{9, 7})

	c, ok := agg.Candidate(7)
	if !ok {
		t.Fatal("Candidate(7) not found")
	}
	if want := Boost(Boost(1)); c.Score != want {
		t.Errorf("Candidate(7).Score = %v, want %v", c.Score, want)
	}
	if c8, _ := agg.Candidate(8); c8.Score != 1 {
		t.Errorf("Candidate(8).Score = %v, want 1", c8.Score)
	}
	if agg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", agg.Len())
	}
}

func TestAggregator_Rank(t *testing.T) {
	tests := []struct {
		name  string
		adds  [][]int64
		limit int
		want  []int64
	}{
		{"empty", nil, 5, []int64{}},
		{"ties keep first encounter", [][]int64{{3, 1, 2}}, 5, []int64{3, 1, 2}},
		{"boosted first", [][]int64{{3, 1, 2}, {2}}, 5, []int64{2, 3, 1}},
		{"truncated", [][]int64{{1, 2, 3, 4}, {5, 6, 7, 8}}, 5, []int64{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var agg Aggregator
			for _, ids := range tt.adds {
				agg.Add(ids)
			}
			got := agg.Rank(tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rank(%d) = %v, want %v", tt.limit, got, tt.want)
			}
		})
	}
}

func TestAggregator_RankedNonIncreasing(t *testing.T) {
	var agg Aggregator
	agg.Add([]int64{1, 2, 3, 4})
	agg.Add([]int64{4, 5, 6, 7})
	agg.Add([]int64{4, 6, 8, 9})

	ranked := agg.Ranked(5)
	if len(ranked) > 5 {
		t.Fatalf("Ranked(5) returned %d candidates", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("Ranked() not sorted at %d: %v > %v", i, ranked[i].Score, ranked[i-1].Score)
		}
	}
	if ranked[0].MovieID != 4 || ranked[1].MovieID != 6 {
		t.Errorf("Ranked() head = %v, want movies 4 then 6", ranked[:2])
	}
}

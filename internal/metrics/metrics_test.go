// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

func histogramCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m dto.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/movies", "200"))
	RecordAPIRequest("GET", "/api/v1/movies", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/movies", "200"))

	if after-before != 1 {
		t.Errorf("APIRequestsTotal delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("APIActiveRequests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("APIActiveRequests = %v, want %v", got, before)
	}
}

func TestRecordLikeToggle(t *testing.T) {
	liked := testutil.ToFloat64(LikeTogglesTotal.WithLabelValues("liked"))
	unliked := testutil.ToFloat64(LikeTogglesTotal.WithLabelValues("unliked"))

	RecordLikeToggle(true)
	RecordLikeToggle(false)
	RecordLikeToggle(false)

	if d := testutil.ToFloat64(LikeTogglesTotal.WithLabelValues("liked")) - liked; d != 1 {
		t.Errorf("liked delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(LikeTogglesTotal.WithLabelValues("unliked")) - unliked; d != 2 {
		t.Errorf("unliked delta = %v, want 2", d)
	}
}

func TestRecommendObserver(t *testing.T) {
	var o RecommendObserver

	builds := histogramCount(t, IndexBuildDuration)
	o.ObserveIndexBuild(42, 3*time.Millisecond)
	if got := histogramCount(t, IndexBuildDuration); got != builds+1 {
		t.Errorf("IndexBuildDuration count = %d, want %d", got, builds+1)
	}
	if got := testutil.ToFloat64(CatalogSize); got != 42 {
		t.Errorf("CatalogSize = %v, want 42", got)
	}

	hits := testutil.ToFloat64(IndexCacheTotal.WithLabelValues("hit"))
	o.ObserveIndexCache(true)
	if d := testutil.ToFloat64(IndexCacheTotal.WithLabelValues("hit")) - hits; d != 1 {
		t.Errorf("cache hit delta = %v, want 1", d)
	}

	runs := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("default"))
	empty := testutil.ToFloat64(EmptyRecommendations)
	o.ObserveRecommendation(recommend.SeedSourceDefault, 0, time.Millisecond)
	if d := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("default")) - runs; d != 1 {
		t.Errorf("RecommendationsTotal delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(EmptyRecommendations) - empty; d != 1 {
		t.Errorf("EmptyRecommendations delta = %v, want 1", d)
	}
}

// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/database"
	"github.com/tomtom215/reelmatch/internal/models"
	"github.com/tomtom215/reelmatch/internal/profiles"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// memoryStore is an in-memory catalog that also feeds the engine.
type memoryStore struct {
	mu      sync.Mutex
	movies  []*models.Movie
	pingErr error
}

func newMemoryStore(titles ...[2]string) *memoryStore {
	s := &memoryStore{}
	for i, tg := range titles {
		s.movies = append(s.movies, &models.Movie{ID: int64(i + 1), Title: tg[0], Genres: tg[1], Year: 2000, DurationMinutes: 90})
	}
	return s
}

func (s *memoryStore) Ping(context.Context) error { return s.pingErr }

func (s *memoryStore) GetMovie(_ context.Context, id int64) (*models.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memoryStore) GetMoviesByIDs(ctx context.Context, ids []int64) ([]*models.Movie, error) {
	out := make([]*models.Movie, 0, len(ids))
	for _, id := range ids {
		if m, err := s.GetMovie(ctx, id); err == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memoryStore) ListMovies(_ context.Context, limit, offset int) ([]*models.Movie, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := int64(len(s.movies))
	if offset >= len(s.movies) {
		return []*models.Movie{}, total, nil
	}
	end := offset + limit
	if end > len(s.movies) {
		end = len(s.movies)
	}
	return s.movies[offset:end], total, nil
}

func (s *memoryStore) CreateMovie(_ context.Context, m *models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = int64(len(s.movies) + 1)
	s.movies = append(s.movies, m)
	return nil
}

func (s *memoryStore) FetchCatalog(context.Context) ([]recommend.CatalogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]recommend.CatalogEntry, len(s.movies))
	for i, m := range s.movies {
		entries[i] = recommend.CatalogEntry{ID: m.ID, Title: m.Title, Genres: m.Genres}
	}
	return entries, nil
}

type testServer struct {
	store  *memoryStore
	router http.Handler
}

func newTestServer(t *testing.T, sec *config.SecurityConfig) *testServer {
	t.Helper()

	store := newMemoryStore(
		[2]string{"Frozen", "Animation"},
		[2]string{"Frozen II", "Animation"},
		[2]string{"Die Hard", "Action"},
	)
	likeStore, err := profiles.OpenBadgerStore("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = likeStore.Close() })
	likes := profiles.NewService(likeStore, store, zerolog.Nop())

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	engine.SetCatalogProvider(store)
	engine.SetLikesProvider(likes)

	if sec == nil {
		sec = &config.SecurityConfig{RateLimitDisabled: true}
	}
	return &testServer{
		store:  store,
		router: NewRouter(NewHandler(store, engine, likes), sec),
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, models.APIResponse) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp models.APIResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return rec, resp
}

// decodeData re-decodes the envelope's data field into dst.
func decodeData(t *testing.T, resp models.APIResponse, dst interface{}) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatal(err)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec, resp := s.do(t, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK || resp.Status != "success" {
		t.Errorf("live = %d %q, want 200 success", rec.Code, resp.Status)
	}

	rec, _ = s.do(t, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Errorf("ready = %d, want 200", rec.Code)
	}

	s.store.pingErr = errors.New("db gone")
	rec, resp = s.do(t, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable || resp.Error == nil || resp.Error.Code != "SERVICE_UNAVAILABLE" {
		t.Errorf("ready with db down = %d %+v, want 503 SERVICE_UNAVAILABLE", rec.Code, resp.Error)
	}
}

func TestMovies(t *testing.T) {
	s := newTestServer(t, nil)

	t.Run("list", func(t *testing.T) {
		rec, resp := s.do(t, http.MethodGet, "/api/v1/movies?limit=2&offset=1", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		var list MovieList
		decodeData(t, resp, &list)
		if list.Pagination.Total != 3 || len(list.Movies) != 2 || list.Movies[0].Title != "Frozen II" {
			t.Errorf("list = %+v", list)
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		rec, _ := s.do(t, http.MethodGet, "/api/v1/movies?limit=1000", "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	tests := []struct {
		path     string
		wantCode int
	}{
		{"/api/v1/movies/3", http.StatusOK},
		{"/api/v1/movies/99", http.StatusNotFound},
		{"/api/v1/movies/abc", http.StatusBadRequest},
		{"/api/v1/movies/-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run("get "+tt.path, func(t *testing.T) {
			rec, _ := s.do(t, http.MethodGet, tt.path, "")
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestCreateMovie(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "valid",
			body:     `{"title":"Kung Fu Panda","genres":"Animation,Action","year":2008,"duration_minutes":92,"imdb_score":7.6,"directors":["Mark Osborne"]}`,
			wantCode: http.StatusCreated,
		},
		{name: "missing title", body: `{"year":2008,"duration_minutes":92}`, wantCode: http.StatusBadRequest, wantErr: "VALIDATION_ERROR"},
		{name: "future year", body: `{"title":"Later","year":9999,"duration_minutes":92}`, wantCode: http.StatusBadRequest, wantErr: "VALIDATION_ERROR"},
		{name: "unknown field", body: `{"title":"X","year":2000,"duration_minutes":1,"rating":"PG"}`, wantCode: http.StatusBadRequest, wantErr: "INVALID_REQUEST"},
		{name: "malformed", body: `{"title":`, wantCode: http.StatusBadRequest, wantErr: "INVALID_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := s.do(t, http.MethodPost, "/api/v1/movies", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantErr != "" && (resp.Error == nil || resp.Error.Code != tt.wantErr) {
				t.Errorf("error = %+v, want %s", resp.Error, tt.wantErr)
			}
		})
	}

	// The new movie is immediately part of the recommendation catalog.
	rec, resp := s.do(t, http.MethodPost, "/api/v1/recommendations", `{"titles":["Kung Fu Panda"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got models.Recommendation
	decodeData(t, resp, &got)
	if len(got.MovieIDs) == 0 {
		t.Error("expected recommendations for the newly created movie")
	}
}

func TestPostRecommendations(t *testing.T) {
	s := newTestServer(t, nil)

	rec, resp := s.do(t, http.MethodPost, "/api/v1/recommendations", `{"titles":["Frozen"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got models.Recommendation
	decodeData(t, resp, &got)

	if !reflect.DeepEqual(got.MovieIDs, []int64{2, 3}) {
		t.Errorf("MovieIDs = %v, want [2 3]", got.MovieIDs)
	}
	if len(got.Movies) != 2 || got.Movies[0].Title != "Frozen II" || got.Movies[1].Title != "Die Hard" {
		t.Errorf("Movies not in rank order: %+v", got.Movies)
	}
	if got.SeedSource != string(recommend.SeedSourceLikes) {
		t.Errorf("SeedSource = %q, want likes", got.SeedSource)
	}

	rec, _ = s.do(t, http.MethodPost, "/api/v1/recommendations", `{"titles":["`+strings.Repeat("x", 201)+`"]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized title status = %d, want 400", rec.Code)
	}
}

func TestLikesAndUserRecommendations(t *testing.T) {
	s := newTestServer(t, nil)

	// No likes: default seeds, which this catalog partly contains.
	rec, resp := s.do(t, http.MethodGet, "/api/v1/recommendations/user/7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var fallback models.Recommendation
	decodeData(t, resp, &fallback)
	if fallback.SeedSource != string(recommend.SeedSourceDefault) {
		t.Errorf("SeedSource = %q, want default", fallback.SeedSource)
	}

	rec, resp = s.do(t, http.MethodPost, "/api/v1/users/7/likes/3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle status = %d, want 200", rec.Code)
	}
	var toggle models.LikeToggle
	decodeData(t, resp, &toggle)
	if !toggle.Liked || toggle.MovieID != 3 {
		t.Errorf("toggle = %+v, want liked movie 3", toggle)
	}

	rec, resp = s.do(t, http.MethodGet, "/api/v1/users/7/likes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("likes status = %d, want 200", rec.Code)
	}
	var likes UserLikes
	decodeData(t, resp, &likes)
	if len(likes.Movies) != 1 || likes.Movies[0].Title != "Die Hard" {
		t.Errorf("likes = %+v, want [Die Hard]", likes.Movies)
	}

	_, resp = s.do(t, http.MethodGet, "/api/v1/recommendations/user/7", "")
	var personal models.Recommendation
	decodeData(t, resp, &personal)
	if personal.SeedSource != string(recommend.SeedSourceLikes) {
		t.Errorf("SeedSource = %q, want likes", personal.SeedSource)
	}
	if !reflect.DeepEqual(personal.MovieIDs, []int64{1, 2}) {
		t.Errorf("MovieIDs = %v, want [1 2]", personal.MovieIDs)
	}

	rec, _ = s.do(t, http.MethodPost, "/api/v1/users/7/likes/404", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("toggle unknown movie status = %d, want 404", rec.Code)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	s := newTestServer(t, nil)

	rec, resp := s.do(t, http.MethodGet, "/api/v1/nope", "")
	if rec.Code != http.StatusNotFound || resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Errorf("unknown route = %d %+v", rec.Code, resp.Error)
	}

	rec, _ = s.do(t, http.MethodDelete, "/api/v1/movies", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /movies = %d, want 405", rec.Code)
	}

	rec, _ = s.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/metrics = %d, want 200", rec.Code)
	}
}

func TestRouter_RateLimit(t *testing.T) {
	s := newTestServer(t, &config.SecurityConfig{RateLimitReqs: 2, RateLimitWindow: time.Minute})

	codes := make([]int, 3)
	for i := range codes {
		rec, _ := s.do(t, http.MethodGet, "/api/v1/movies", "")
		codes[i] = rec.Code
	}
	if !reflect.DeepEqual(codes, []int{200, 200, 429}) {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	// Health probes are not limited.
	rec, _ := s.do(t, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Errorf("health under limit = %d, want 200", rec.Code)
	}
}

type failingEngine struct{ err error }

func (f failingEngine) RecommendForUser(context.Context, int64) (*recommend.Result, error) {
	return nil, f.err
}
func (f failingEngine) Recommend(context.Context, []string) (*recommend.Result, error) {
	return nil, f.err
}
func (failingEngine) Stats() recommend.Stats { return recommend.Stats{} }

func TestRecommendErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(newMemoryStore(), failingEngine{err: tt.err}, nil)
			router := NewRouter(h, &config.SecurityConfig{RateLimitDisabled: true})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations/user/1", nil))
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}

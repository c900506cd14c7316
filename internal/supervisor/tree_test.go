// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// stubService counts starts and fails the first failures runs.
type stubService struct {
	name     string
	failures int32
	starts   atomic.Int32
}

func (s *stubService) Serve(ctx context.Context) error {
	if n := s.starts.Add(1); n <= s.failures {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubService) String() string { return s.name }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree := NewSupervisorTree(testLogger(), TreeConfig{})

	if tree.Root() == nil {
		t.Fatal("Root() = nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want %+v", tree.config, DefaultTreeConfig())
	}

	custom := NewSupervisorTree(testLogger(), TreeConfig{FailureBackoff: time.Second})
	if custom.config.FailureBackoff != time.Second || custom.config.FailureThreshold != 5 {
		t.Errorf("config = %+v, want backoff 1s with default threshold", custom.config)
	}
}

func TestSupervisorTree_Lifecycle(t *testing.T) {
	tree := NewSupervisorTree(testLogger(), TreeConfig{
		FailureBackoff:  50 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})

	maint := &stubService{name: "flaky-maintenance", failures: 2}
	api := &stubService{name: "api"}
	tree.AddMaintenanceService(maint)
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for maint.starts.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("ServeBackground() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("tree did not stop")
	}

	if got := maint.starts.Load(); got < 3 {
		t.Errorf("maintenance starts = %d, want restarts after failures", got)
	}
	if got := api.starts.Load(); got != 1 {
		t.Errorf("api starts = %d, want 1 (isolated from maintenance failures)", got)
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatal(err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services = %v, want none", report)
	}
}

func TestSupervisorTree_RunReturnsAfterCancel(t *testing.T) {
	tree := NewSupervisorTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})
	api := &stubService{name: "api"}
	tree.AddAPIService(api)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- tree.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for api.starts.Load() < 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v, want nil after cancel", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatal(err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services = %v, want none", report)
	}
}

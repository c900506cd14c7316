// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type mockServer struct {
	listenErr   error
	shutdownErr error
	stop        chan struct{}
	shutdowns   atomic.Int32
}

func newMockServer() *mockServer {
	return &mockServer{stop: make(chan struct{})}
}

func (m *mockServer) ListenAndServe() error {
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stop
	return http.ErrServerClosed
}

func (m *mockServer) Shutdown(context.Context) error {
	if m.shutdowns.Add(1) == 1 {
		close(m.stop)
	}
	return m.shutdownErr
}

func TestHTTPServerService(t *testing.T) {
	t.Run("graceful shutdown on cancel", func(t *testing.T) {
		server := newMockServer()
		svc := NewHTTPServerService(server, time.Second, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve() did not return")
		}
		if server.shutdowns.Load() != 1 {
			t.Errorf("Shutdown calls = %d, want 1", server.shutdowns.Load())
		}
	})

	t.Run("listen failure is returned", func(t *testing.T) {
		server := newMockServer()
		server.listenErr = errors.New("address in use")
		svc := NewHTTPServerService(server, 0, zerolog.Nop())

		err := svc.Serve(context.Background())
		if err == nil || !errors.Is(err, server.listenErr) {
			t.Errorf("Serve() = %v, want wrapped listen error", err)
		}
	})

	t.Run("shutdown failure is returned", func(t *testing.T) {
		server := newMockServer()
		server.shutdownErr = errors.New("drain timeout")
		svc := NewHTTPServerService(server, time.Second, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := svc.Serve(ctx); !errors.Is(err, server.shutdownErr) {
			t.Errorf("Serve() = %v, want shutdown error", err)
		}
	})

	if got := NewHTTPServerService(newMockServer(), 0, zerolog.Nop()).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

type countingWarmer struct {
	calls atomic.Int32
	err   error
}

func (w *countingWarmer) WarmIndex(context.Context) (bool, error) {
	n := w.calls.Add(1)
	return n > 1, w.err
}

func TestIndexWarmerService(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "healthy"},
		{name: "failing warms keep running", err: errors.New("catalog offline")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warmer := &countingWarmer{err: tt.err}
			svc := NewIndexWarmerService(warmer, 10*time.Millisecond, time.Second, zerolog.Nop())

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
			}
			if got := warmer.calls.Load(); got < 2 {
				t.Errorf("WarmIndex calls = %d, want startup warm plus ticks", got)
			}
		})
	}
}

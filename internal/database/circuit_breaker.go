// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package database

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// CatalogSource is a catalog provider that also reports its version.
type CatalogSource interface {
	recommend.CatalogProvider
	recommend.CatalogVersioner
}

// BreakerSettings configures a BreakerCatalog.
type BreakerSettings struct {
	// MaxFailures consecutive failures open the circuit.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before probing again.
	Timeout time.Duration
}

// BreakerCatalog guards catalog reads with a circuit breaker so a failing
// store is not hammered by every recommendation request.
//
// The breaker opens after MaxFailures consecutive failures, or once at
// least 10 requests in a minute fail at a rate of 60% or more. While open,
// reads fail fast with gobreaker.ErrOpenState.
type BreakerCatalog struct {
	source CatalogSource
	cb     *gobreaker.CircuitBreaker[[]recommend.CatalogEntry]
	name   string
}

// NewBreakerCatalog wraps source.
func NewBreakerCatalog(source CatalogSource, s BreakerSettings) *BreakerCatalog {
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}

	name := "catalog"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]recommend.CatalogEntry](gobreaker.Settings{
		Name:         name,
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      s.Timeout,
		IsSuccessful: isBreakerSuccess,
		ReadyToTrip:  func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= s.MaxFailures {
				return true
			}
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerCatalog{source: source, cb: cb, name: name}
}

// FetchCatalog reads the catalog through the breaker.
func (b *BreakerCatalog) FetchCatalog(ctx context.Context) ([]recommend.CatalogEntry, error) {
	entries, err := b.cb.Execute(func() ([]recommend.CatalogEntry, error) {
		return b.source.FetchCatalog(ctx)
	})

	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
	}
	return entries, err
}

// CatalogVersion passes through to the source. Version reads are cheap and
// a failure only disables index caching for that call.
func (b *BreakerCatalog) CatalogVersion(ctx context.Context) (int64, error) {
	return b.source.CatalogVersion(ctx)
}

// State returns the current breaker state.
func (b *BreakerCatalog) State() gobreaker.State {
	return b.cb.State()
}

// isBreakerSuccess treats caller cancellation and deadlines as success:
// they say nothing about the health of the store.
func isBreakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

var _ CatalogSource = (*BreakerCatalog)(nil)

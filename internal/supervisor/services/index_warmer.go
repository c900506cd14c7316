// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// IndexWarmer is implemented by *recommend.Engine.
type IndexWarmer interface {
	WarmIndex(ctx context.Context) (bool, error)
}

// IndexWarmerService keeps the cached similarity index current so requests
// after a catalog change do not pay for the rebuild.
type IndexWarmerService struct {
	warmer   IndexWarmer
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewIndexWarmerService warms on start and then every interval. Each run is
// bounded by timeout.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewIndexWarmerService(warmer IndexWarmer, interval, timeout time.Duration, logger zerolog.Logger) *IndexWarmerService {
	if interval <= 0 {
		interval = time.Minute
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &IndexWarmerService{
		warmer:   warmer,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With().Str("service", "index-warmer").Logger(),
	}
}

// Serve implements suture.Service. Warm failures are logged and retried on
// the next tick rather than restarting the service.
func (s *IndexWarmerService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("index warmer starting")
	s.warm(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.warm(ctx)
		}
	}
}

func (s *IndexWarmerService) warm(ctx context.Context) {
	warmCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	cached, err := s.warmer.WarmIndex(warmCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("index warm failed")
		}
		return
	}
	if !cached {
		s.logger.Debug().Dur("duration", time.Since(start)).Msg("similarity index rebuilt")
	}
}

func (s *IndexWarmerService) String() string {
	return "index-warmer"
}

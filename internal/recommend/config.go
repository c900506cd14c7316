// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"
	"time"
)

// Config contains the tuning knobs of the engine.
type Config struct {
	// MaxResults bounds the number of recommended movies.
	MaxResults int `json:"max_results"`

	// NeighborsPerSeed is how many similar movies each seed contributes.
	NeighborsPerSeed int `json:"neighbors_per_seed"`

	// Timeout bounds a single recommendation call. Zero disables it.
	Timeout time.Duration `json:"timeout"`
}

// DefaultConfig returns the standard configuration: five results built from
// four neighbors per seed.
func DefaultConfig() *Config {
	return &Config{
		MaxResults:       5,
		NeighborsPerSeed: 4,
		Timeout:          10 * time.Second,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.NeighborsPerSeed < 1 {
		return fmt.Errorf("neighbors_per_seed must be positive, got %d", c.NeighborsPerSeed)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %v", c.Timeout)
	}
	return nil
}

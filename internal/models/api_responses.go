// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package models

import (
	"time"
)

// APIResponse is the envelope returned by every JSON endpoint.
//
// Status is "success" with Data populated, or "error" with Error populated:
//
//	{
//	  "status": "success",
//	  "data": {"movie_ids": [2, 4, 5]},
//	  "metadata": {"timestamp": "2026-01-12T09:30:00Z", "query_time_ms": 12}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and cache information for a response.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError describes a failed request.
//
// Codes in use: VALIDATION_ERROR, NOT_FOUND, DATABASE_ERROR,
// SERVICE_UNAVAILABLE, RATE_LIMIT_EXCEEDED, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Pagination describes an offset-paginated list.
type Pagination struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

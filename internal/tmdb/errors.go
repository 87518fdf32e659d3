package tmdb

import (
	"errors"
	"fmt"
)

var ErrRateLimited = errors.New("tmdb: rate limit exceeded")

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e == nil {
		return "tmdb: status error"
	}
	if e.Message == "" {
		return fmt.Sprintf("tmdb: %s: HTTP %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("tmdb: %s: HTTP %d: %s", e.Path, e.StatusCode, e.Message)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

// apiError is the error body the API sends alongside 4xx responses and, for
// some lookups, inside a 200 response.
type apiError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

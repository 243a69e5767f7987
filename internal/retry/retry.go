// internal/retry/retry.go
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

// Config defines retry behavior with exponential backoff
type Config struct {
	MaxAttempts          int           // Maximum number of attempts, including the first
	InitialBackoff       time.Duration // Wait before the second attempt
	MaxBackoff           time.Duration // Upper bound for any single wait
	Multiplier           float64       // Growth factor between waits
	RetryableStatusCodes []int         // Response statuses worth another attempt
}

// DefaultConfig returns the retry policy used for page fetches
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
		RetryableStatusCodes: []int{
			http.StatusTooManyRequests,     // 429
			http.StatusInternalServerError, // 500
			http.StatusBadGateway,          // 502
			http.StatusServiceUnavailable,  // 503
			http.StatusGatewayTimeout,      // 504
		},
	}
}

// Retryable reports whether a response with statusCode deserves another attempt
func (cfg Config) Retryable(statusCode int) bool {
	return slices.Contains(cfg.RetryableStatusCodes, statusCode)
}

// Backoff returns the wait after the given zero-based attempt
func (cfg Config) Backoff(attempt int) time.Duration {
	mult := cfg.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(cfg.InitialBackoff) * math.Pow(mult, float64(attempt))
	if cfg.MaxBackoff > 0 && d > float64(cfg.MaxBackoff) {
		d = float64(cfg.MaxBackoff)
	}
	return time.Duration(d)
}

// ShouldRetry reports whether err is worth another attempt. Cancellation
// never is; a StatusError is when its status is listed; anything else
// (connection resets, timeouts, DNS failures) is.
func (cfg Config) ShouldRetry(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		return cfg.Retryable(sc.GetStatusCode())
	}
	return true
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out. The value from the last call is always returned, so a
// caller can still inspect a response that kept failing.
func Do[T any](ctx context.Context, cfg Config, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := max(cfg.MaxAttempts, 1)

	var (
		last T
		err  error
	)
	for attempt := 0; attempt < attempts; attempt++ {
		last, err = fn(ctx)
		if err == nil {
			if attempt > 0 {
				log.Debug().Int("attempts", attempt+1).Msg("Retry succeeded")
			}
			return last, nil
		}

		if !cfg.ShouldRetry(err) {
			return last, err
		}
		if attempt == attempts-1 {
			break
		}

		wait := cfg.Backoff(attempt)
		log.Debug().
			Int("attempt", attempt+1).
			Int("max_attempts", attempts).
			Dur("backoff", wait).
			Err(err).
			Msg("Retrying after backoff")

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return last, ctx.Err()
		}
	}

	log.Warn().Int("attempts", attempts).Err(err).Msg("Max retry attempts exceeded")
	return last, &ExhaustedError{Attempts: attempts, Err: err}
}

// ExhaustedError is returned when every attempt failed with a retryable error
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("operation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// StatusCoder is implemented by errors that carry an HTTP status code
type StatusCoder interface {
	GetStatusCode() int
}

// StatusError reports a response whose status asked for a retry
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

func (e *StatusError) GetStatusCode() int {
	return e.StatusCode
}

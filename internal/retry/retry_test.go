package retry

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = attempts
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 5 * time.Millisecond
	return cfg
}

func TestDo_SucceedsAfterRetryableStatus(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(3), func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return http.StatusServiceUnavailable, &StatusError{StatusCode: http.StatusServiceUnavailable}
		}
		return http.StatusOK, nil
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, got)
	assert.Equal(t, 3, calls)
}

func TestDo_ReturnsLastValueWhenExhausted(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), fastConfig(2), func(context.Context) (int, error) {
		calls++
		return calls, &StatusError{StatusCode: http.StatusBadGateway}
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Attempts)
	assert.Equal(t, 2, got)

	var sc StatusCoder
	require.ErrorAs(t, err, &sc)
	assert.Equal(t, http.StatusBadGateway, sc.GetStatusCode())
}

func TestDo_StopsOnNonRetryableStatus(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(5), func(context.Context) (int, error) {
		calls++
		return 0, &StatusError{StatusCode: http.StatusNotFound}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var exhausted *ExhaustedError
	assert.False(t, errors.As(err, &exhausted))
}

func TestDo_ExhaustedWrapsLastError(t *testing.T) {
	cause := errors.New("connection refused")
	calls := 0
	_, err := Do(context.Background(), fastConfig(2), func(context.Context) (int, error) {
		calls++
		return 0, cause
	})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 2, calls)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_, _ = Do(context.Background(), Config{}, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("boom")
	})
	assert.Equal(t, 1, calls)
}

func TestDo_DoesNotRetryCancellation(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), fastConfig(3), func(context.Context) (int, error) {
		calls++
		return 0, context.Canceled
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_HonorsContextDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(3)
	cfg.InitialBackoff = time.Hour
	cfg.MaxBackoff = time.Hour

	_, err := Do(ctx, cfg, func(context.Context) (int, error) {
		cancel()
		return 0, errors.New("boom")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoff_CapsAtMax(t *testing.T) {
	cfg := Config{InitialBackoff: time.Second, MaxBackoff: 3 * time.Second, Multiplier: 2}

	assert.Equal(t, time.Second, cfg.Backoff(0))
	assert.Equal(t, 2*time.Second, cfg.Backoff(1))
	assert.Equal(t, 3*time.Second, cfg.Backoff(2))
}

func TestShouldRetry(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.ShouldRetry(nil))
	assert.False(t, cfg.ShouldRetry(context.Canceled))
	assert.True(t, cfg.ShouldRetry(context.DeadlineExceeded))
	assert.True(t, cfg.ShouldRetry(&StatusError{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, cfg.ShouldRetry(&StatusError{StatusCode: http.StatusForbidden}))
}

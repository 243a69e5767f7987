package reqctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type key int

const jobKey key = 0

// JobContext identifies one brand crawl within a run
type JobContext struct {
	RunID     string
	Brand     string
	StartTime time.Time
}

// WithJob attaches a job context for brand to ctx
func WithJob(ctx context.Context, runID, brand string) context.Context {
	return context.WithValue(ctx, jobKey, &JobContext{
		RunID:     runID,
		Brand:     brand,
		StartTime: time.Now(),
	})
}

// GetJob returns the job context stored in ctx, or a placeholder
func GetJob(ctx context.Context) *JobContext {
	if jc, ok := ctx.Value(jobKey).(*JobContext); ok {
		return jc
	}
	return &JobContext{
		RunID:     "unknown",
		StartTime: time.Now(),
	}
}

// Logger returns the global logger tagged with the job's run id and brand
func Logger(ctx context.Context) zerolog.Logger {
	jc := GetJob(ctx)
	lc := log.With().Str("run_id", jc.RunID)
	if jc.Brand != "" {
		lc = lc.Str("brand", jc.Brand)
	}
	return lc.Logger()
}

// NewRunID returns a random identifier for one invocation
func NewRunID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// JobError wraps an error with the job that produced it
type JobError struct {
	RunID string
	Brand string
	Err   error
}

// Error implements the error interface
func (e *JobError) Error() string {
	return fmt.Sprintf("[%s %s] %v", e.RunID, e.Brand, e.Err)
}

// Unwrap returns the underlying error
func (e *JobError) Unwrap() error {
	return e.Err
}

// NewJobError creates a JobError from the job context in ctx
func NewJobError(ctx context.Context, err error) error {
	jc := GetJob(ctx)
	return &JobError{
		RunID: jc.RunID,
		Brand: jc.Brand,
		Err:   err,
	}
}

package reqctx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithJob_RoundTrip(t *testing.T) {
	ctx := WithJob(context.Background(), "abc123", "audi")

	jc := GetJob(ctx)
	assert.Equal(t, "abc123", jc.RunID)
	assert.Equal(t, "audi", jc.Brand)
	assert.False(t, jc.StartTime.IsZero())
}

func TestGetJob_Placeholder(t *testing.T) {
	jc := GetJob(context.Background())
	assert.Equal(t, "unknown", jc.RunID)
	assert.Empty(t, jc.Brand)
}

func TestNewJobError(t *testing.T) {
	cause := errors.New("missing element")
	ctx := WithJob(context.Background(), "run1", "bmw")

	err := NewJobError(ctx, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[run1 bmw] missing element", err.Error())
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
}

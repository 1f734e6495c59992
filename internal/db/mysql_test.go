package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	errTransient := errors.New("connection refused")

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 3, time.Millisecond, func() error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when attempts are exhausted", func(t *testing.T) {
		calls := 0
		err := Retry(context.Background(), 2, time.Millisecond, func() error {
			calls++
			return errTransient
		})
		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops waiting when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Retry(ctx, 5, time.Hour, func() error { return errTransient })
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("zero attempts still runs once", func(t *testing.T) {
		calls := 0
		_ = Retry(context.Background(), 0, time.Millisecond, func() error {
			calls++
			return nil
		})
		assert.Equal(t, 1, calls)
	})
}

package utils_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veloraeats/dispatch-service/pkg/utils"
)

func TestRetry(t *testing.T) {
	cfg := utils.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		Multiplier:   2,
	}

	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		err := utils.Retry(cfg, func() error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		attempts := 0
		err := utils.Retry(cfg, func() error {
			attempts++
			return errors.New("still broken")
		})

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("permanent errors short-circuit", func(t *testing.T) {
		sentinel := errors.New("not found")

		attempts := 0
		err := utils.Retry(cfg, func() error {
			attempts++
			return sentinel
		}, sentinel)

		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, attempts)
	})

	t.Run("wrapped permanent errors are recognized", func(t *testing.T) {
		sentinel := errors.New("not found")

		attempts := 0
		err := utils.Retry(cfg, func() error {
			attempts++
			return errors.Join(errors.New("outer"), sentinel)
		}, sentinel)

		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 1, attempts)
	})
}

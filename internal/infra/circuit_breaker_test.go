package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker(t *testing.T) {
	boom := errors.New("boom")

	t.Run("opens after consecutive failures", func(t *testing.T) {
		cb := NewCircuitBreaker(3, time.Minute)
		fail := func() error { return boom }

		for i := 0; i < 3; i++ {
			require.ErrorIs(t, cb.Do(fail), boom)
		}
		// the breaker is now open: calls are refused without running fn
		called := false
		err := cb.Do(func() error { called = true; return nil })
		require.ErrorIs(t, err, ErrCircuitOpen)
		assert.False(t, called)
	})

	t.Run("success resets the failure count", func(t *testing.T) {
		cb := NewCircuitBreaker(3, time.Minute)
		require.ErrorIs(t, cb.Do(func() error { return boom }), boom)
		require.ErrorIs(t, cb.Do(func() error { return boom }), boom)
		require.NoError(t, cb.Do(func() error { return nil }))

		// two more failures do not trip a fresh window of three
		require.ErrorIs(t, cb.Do(func() error { return boom }), boom)
		require.ErrorIs(t, cb.Do(func() error { return boom }), boom)
		require.NoError(t, cb.Do(func() error { return nil }))
	})

	t.Run("probes again after the cooldown", func(t *testing.T) {
		cb := NewCircuitBreaker(1, 10*time.Millisecond)
		require.ErrorIs(t, cb.Do(func() error { return boom }), boom)
		require.ErrorIs(t, cb.Do(func() error { return nil }), ErrCircuitOpen)

		time.Sleep(20 * time.Millisecond)
		require.NoError(t, cb.Do(func() error { return nil }))
	})
}

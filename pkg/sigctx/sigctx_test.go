package sigctx

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyContext(t *testing.T) {
	t.Run("CancelledBySignal", func(t *testing.T) {
		exited := make(chan struct{})
		ctx, cancel := notifyContext(t.Context(), func() { close(exited) })
		defer cancel()

		require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context is not cancelled")
		}

		require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGTERM))
		select {
		case <-exited:
		case <-time.After(time.Second):
			t.Fatal("second signal is ignored")
		}
	})

	t.Run("CancelledByCaller", func(t *testing.T) {
		ctx, cancel := notifyContext(t.Context(), func() {})
		cancel()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})
}

package background

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistrar_FiresHandler(t *testing.T) {
	r := New(50*time.Millisecond, discardLogger())
	defer r.Stop()

	var fired atomic.Int32
	err := r.Register(func(ctx context.Context) {
		fired.Add(1)
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return fired.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond, "handler should fire repeatedly")
}

func TestRegistrar_RegisterTwiceIsNoOp(t *testing.T) {
	r := New(50*time.Millisecond, discardLogger())
	defer r.Stop()

	var first, second atomic.Int32
	require.NoError(t, r.Register(func(ctx context.Context) { first.Add(1) }))
	require.NoError(t, r.Register(func(ctx context.Context) { second.Add(1) }))

	assert.Eventually(t, func() bool {
		return first.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	assert.Zero(t, second.Load(), "second registration must not replace the first")
}

func TestRegistrar_Unregister(t *testing.T) {
	r := New(50*time.Millisecond, discardLogger())
	defer r.Stop()

	var fired atomic.Int32
	require.NoError(t, r.Register(func(ctx context.Context) { fired.Add(1) }))
	require.NoError(t, r.Unregister())

	count := fired.Load()
	time.Sleep(200 * time.Millisecond)
	assert.LessOrEqual(t, fired.Load(), count+1, "handler should stop firing after unregister")

	// Unregistering again is harmless.
	assert.NoError(t, r.Unregister())
}

func TestRegistrar_RegisterAfterUnregister(t *testing.T) {
	r := New(50*time.Millisecond, discardLogger())
	defer r.Stop()

	require.NoError(t, r.Register(func(ctx context.Context) {}))
	require.NoError(t, r.Unregister())

	var fired atomic.Int32
	require.NoError(t, r.Register(func(ctx context.Context) { fired.Add(1) }))

	assert.Eventually(t, func() bool {
		return fired.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond, "re-registration should schedule a fresh handler")
}

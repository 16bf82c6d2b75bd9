package sessions_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/worker/sessions"
)

type fakeEvictor struct {
	calls   atomic.Int32
	lastTTL atomic.Int64
}

func (f *fakeEvictor) EvictIdle(ttl time.Duration) int {
	f.calls.Add(1)
	f.lastTTL.Store(int64(ttl))
	return 1
}

func (f *fakeEvictor) SessionCount() int { return 0 }

func TestJanitor_EvictsOnTickAndStops(t *testing.T) {
	evictor := &fakeEvictor{}
	j := sessions.NewJanitor(evictor, 30*time.Minute, 10*time.Millisecond, zap.NewNop())
	assert.Equal(t, "session-janitor", j.Name())

	done := make(chan error, 1)
	go func() { done <- j.Start(context.Background()) }()

	assert.Eventually(t, func() bool { return evictor.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(30*time.Minute), evictor.lastTTL.Load())

	require.NoError(t, j.Stop())
	require.NoError(t, j.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestJanitor_StopsOnContextCancel(t *testing.T) {
	j := sessions.NewJanitor(&fakeEvictor{}, time.Minute, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

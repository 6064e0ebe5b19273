package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScheduler(cfg Config) (*Scheduler, *atomic.Int32) {
	var count atomic.Int32
	sched := NewScheduler(cfg, func(context.Context) {
		count.Add(1)
	}, zap.NewNop())
	return sched, &count
}

func TestSchedulerRefreshNow(t *testing.T) {
	sched, count := newTestScheduler(Config{PollInterval: time.Hour, SignalDebounce: time.Millisecond})
	sched.Start(context.Background())
	defer sched.Close()

	sched.RefreshNow()

	require.Eventually(t, func() bool {
		return count.Load() == 1
	}, time.Second, time.Millisecond)
}

func TestSchedulerSignalDebounceCoalesces(t *testing.T) {
	sched, count := newTestScheduler(Config{PollInterval: time.Hour, SignalDebounce: 30 * time.Millisecond})
	sched.Start(context.Background())
	defer sched.Close()

	sched.OnSignal()
	sched.OnSignal()
	sched.OnSignal()

	require.Eventually(t, func() bool {
		return count.Load() >= 1
	}, time.Second, time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load(), "signals inside the debounce window collapse into one refresh")
}

func TestSchedulerPollsWhileVisible(t *testing.T) {
	sched, count := newTestScheduler(Config{PollInterval: 20 * time.Millisecond, SignalDebounce: time.Millisecond})
	sched.Start(context.Background())
	defer sched.Close()

	require.Eventually(t, func() bool {
		return count.Load() >= 2
	}, time.Second, time.Millisecond)
}

func TestSchedulerPollSuppressedWhileHidden(t *testing.T) {
	sched, count := newTestScheduler(Config{PollInterval: 15 * time.Millisecond, SignalDebounce: time.Millisecond})
	sched.SetVisible(false)
	sched.Start(context.Background())
	defer sched.Close()

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load(), "hidden session must not poll")
}

func TestSchedulerVisibilityRegainTriggersRefresh(t *testing.T) {
	sched, count := newTestScheduler(Config{PollInterval: time.Hour, SignalDebounce: time.Millisecond})
	sched.SetVisible(false)
	sched.Start(context.Background())
	defer sched.Close()

	sched.SetVisible(true)

	require.Eventually(t, func() bool {
		return count.Load() == 1
	}, time.Second, time.Millisecond)

	// Setting visible again without a hide in between does not refresh.
	sched.SetVisible(true)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), count.Load())
}

func TestSchedulerCloseCancelsPendingDebounce(t *testing.T) {
	sched, count := newTestScheduler(Config{PollInterval: time.Hour, SignalDebounce: 50 * time.Millisecond})
	sched.Start(context.Background())

	sched.OnSignal()
	sched.Close()

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(0), count.Load(), "no refresh may fire after Close")
}

func TestSchedulerCloseWithoutStart(t *testing.T) {
	sched, _ := newTestScheduler(Config{PollInterval: time.Hour, SignalDebounce: time.Millisecond})
	sched.Close()
	sched.Close() // idempotent
}

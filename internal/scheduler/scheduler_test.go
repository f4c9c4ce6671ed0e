package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"bullion/internal/scheduler"
)

func Test_Scheduler(t *testing.T) {
	t.Run("should run immediately and then on every interval", func(t *testing.T) {
		calls := atomic.NewInt64(0)

		sched := scheduler.New(context.Background(), time.UTC)
		sched.Every(50*time.Millisecond, func(context.Context) { calls.Inc() })
		require.NoError(t, sched.Start())

		require.Eventually(t, func() bool { return calls.Load() >= 1 }, 100*time.Millisecond, time.Millisecond)
		require.Eventually(t, func() bool { return calls.Load() >= 3 }, 300*time.Millisecond, 5*time.Millisecond)

		sched.Stop()
		sched.Stop()

		stoppedAt := calls.Load()
		time.Sleep(150 * time.Millisecond)
		require.Equal(t, stoppedAt, calls.Load())
	})

	t.Run("should stop when the context is done", func(t *testing.T) {
		calls := atomic.NewInt64(0)
		ctx, cancel := context.WithCancel(context.Background())

		sched := scheduler.New(ctx, time.UTC)
		sched.Every(20*time.Millisecond, func(context.Context) { calls.Inc() })
		require.NoError(t, sched.Start())

		require.Eventually(t, func() bool { return calls.Load() >= 1 }, 100*time.Millisecond, time.Millisecond)
		cancel()
		time.Sleep(30 * time.Millisecond)

		stoppedAt := calls.Load()
		time.Sleep(100 * time.Millisecond)
		require.Equal(t, stoppedAt, calls.Load())
	})

	t.Run("should close Done on Stop without a cancelled context", func(t *testing.T) {
		sched := scheduler.New(context.Background(), time.UTC)
		sched.Every(time.Hour, func(context.Context) {})
		require.NoError(t, sched.Start())

		select {
		case <-sched.Done():
			t.Fatal("done before Stop")
		default:
		}

		sched.Stop()

		select {
		case <-sched.Done():
		case <-time.After(time.Second):
			t.Fatal("done is not closed after Stop")
		}
	})

	t.Run("should close Done when the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())

		sched := scheduler.New(ctx, time.UTC)
		sched.Every(time.Hour, func(context.Context) {})
		require.NoError(t, sched.Start())

		cancel()

		select {
		case <-sched.Done():
		case <-time.After(time.Second):
			t.Fatal("done is not closed after the context ended")
		}
	})
}

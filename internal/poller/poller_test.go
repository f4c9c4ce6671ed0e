package poller_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"bullion/internal/model"
	"bullion/internal/poller"
	"bullion/internal/repository/prices"
	"bullion/internal/usecases"
	"bullion/testing/suite"
)

func Test_Poller_Schedule(t *testing.T) {
	t.Run("should fetch immediately and then on every interval until stopped", func(t *testing.T) {
		var calls []time.Time
		callCount := atomic.NewInt64(0)
		record := make(chan time.Time, 100)

		p := poller.New(nil, poller.UpdaterFunc(func(context.Context) {
			callCount.Inc()
			record <- time.Now()
		}), 60*time.Millisecond)

		start := time.Now()
		require.NoError(t, p.Start(context.Background()))
		require.True(t, p.Running())

		require.Eventually(t, func() bool { return callCount.Load() >= 4 }, time.Second, 5*time.Millisecond)
		p.Stop()
		require.False(t, p.Running())

		stoppedAt := callCount.Load()
		time.Sleep(200 * time.Millisecond)
		require.Equal(t, stoppedAt, callCount.Load())

		close(record)
		for at := range record {
			calls = append(calls, at)
		}

		// First fetch does not wait for the interval.
		require.Less(t, calls[0].Sub(start), 50*time.Millisecond)

		// Next fetches follow the interval.
		for i := 1; i < 4; i++ {
			gap := calls[i].Sub(calls[i-1])
			require.InDelta(t, float64(60*time.Millisecond), float64(gap), float64(30*time.Millisecond), "gap %d", i)
		}
	})

	t.Run("should keep a single timer when started twice", func(t *testing.T) {
		callCount := atomic.NewInt64(0)

		p := poller.New(nil, poller.UpdaterFunc(func(context.Context) { callCount.Inc() }), 100*time.Millisecond)
		ctx := context.Background()

		require.NoError(t, p.Start(ctx))
		require.NoError(t, p.Start(ctx))
		t.Cleanup(p.Stop)

		time.Sleep(250 * time.Millisecond)

		// One timer gives 3 fetches at 0, 100 and 200ms.
		require.LessOrEqual(t, callCount.Load(), int64(4))
		require.GreaterOrEqual(t, callCount.Load(), int64(2))
	})

	t.Run("should stop ticking when the context is done", func(t *testing.T) {
		callCount := atomic.NewInt64(0)
		ctx, cancel := context.WithCancel(context.Background())

		p := poller.New(nil, poller.UpdaterFunc(func(context.Context) { callCount.Inc() }), 30*time.Millisecond)
		require.NoError(t, p.Start(ctx))
		t.Cleanup(p.Stop)

		require.Eventually(t, func() bool { return callCount.Load() >= 1 }, time.Second, time.Millisecond)
		cancel()
		time.Sleep(50 * time.Millisecond)

		stoppedAt := callCount.Load()
		time.Sleep(120 * time.Millisecond)
		require.Equal(t, stoppedAt, callCount.Load())
	})

	t.Run("should start again after the context is done", func(t *testing.T) {
		callCount := atomic.NewInt64(0)
		ctx, cancel := context.WithCancel(context.Background())

		p := poller.New(nil, poller.UpdaterFunc(func(context.Context) { callCount.Inc() }), 30*time.Millisecond)
		require.NoError(t, p.Start(ctx))
		t.Cleanup(p.Stop)

		require.Eventually(t, func() bool { return callCount.Load() >= 1 }, time.Second, time.Millisecond)
		cancel()

		require.Eventually(t, func() bool { return !p.Running() }, time.Second, 5*time.Millisecond)

		stoppedAt := callCount.Load()
		require.NoError(t, p.Start(context.Background()))
		require.True(t, p.Running())

		require.Eventually(t, func() bool { return callCount.Load() >= stoppedAt+2 }, time.Second, 5*time.Millisecond)
	})

	t.Run("should allow stop without start", func(t *testing.T) {
		p := poller.New(nil, poller.UpdaterFunc(func(context.Context) {}), time.Second)
		require.NotPanics(t, p.Stop)
	})
}

func Test_Poller_RefreshNow(t *testing.T) {
	t.Run("should run a cycle without touching the schedule", func(t *testing.T) {
		callCount := atomic.NewInt64(0)

		p := poller.New(nil, poller.UpdaterFunc(func(context.Context) { callCount.Inc() }), time.Hour)

		p.RefreshNow(context.Background())
		p.RefreshNow(context.Background())

		require.EqualValues(t, 2, callCount.Load())
		require.False(t, p.Running())
	})
}

func Test_Poller_StaleWhileRevalidate(t *testing.T) {
	fail := atomic.NewBool(false)

	ctx, st := suite.New(t, suite.WithGemini(func(w http.ResponseWriter, _ *http.Request) {
		if fail.Load() {
			suite.WriteGeminiError(t, w, http.StatusTooManyRequests, "RESOURCE_EXHAUSTED", "quota")
			return
		}
		suite.WriteGeminiRecords(t, w, suite.Records("USD"))
	}))

	repository := prices.NewRepository()
	uc := usecases.NewUpdatePricesUsecase(st.Logger, repository, st.GeminiInteraction(nil), func() string { return "en-US" })
	p := poller.New(st.Logger, uc, time.Hour)

	// When: the first tick succeeds
	require.NoError(t, p.Start(ctx))
	t.Cleanup(p.Stop)
	require.Eventually(t, func() bool {
		state := repository.GetState()
		return state.HasRecords() && !state.IsLoading
	}, 2*time.Second, 5*time.Millisecond)

	// And: a manual refresh hits the quota
	fail.Store(true)
	p.RefreshNow(ctx)

	// Then: stale prices stay with the quota message
	state := repository.GetState()
	require.Equal(t, suite.Records("USD"), state.Records)
	require.Equal(t, model.QuotaExceededMessage, state.Error)
	require.False(t, state.IsLoading)
	require.False(t, state.ShowError())

	// And: the next success clears the error
	fail.Store(false)
	p.RefreshNow(ctx)
	require.Empty(t, repository.GetState().Error)
	require.True(t, repository.GetState().IsLive())
}

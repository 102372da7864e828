package lifecycle

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_WakeOnFirstOfMonthResets(t *testing.T) {
	var calls atomic.Int32
	clock := newClock(time.Date(2025, time.April, 1, 0, 0, 1, 0, time.UTC))
	s := NewMonthlyResetScheduler(func(context.Context) error {
		calls.Add(1)
		return nil
	}, logging.NewNopLogger(), clock.Now, time.UTC)

	s.wake(context.Background())
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, Idle, s.State())

	clock.Set(time.Date(2025, time.April, 2, 0, 0, 1, 0, time.UTC))
	s.wake(context.Background())
	assert.EqualValues(t, 1, calls.Load())
}

func TestScheduler_FailedResetReturnsToIdle(t *testing.T) {
	var calls atomic.Int32
	clock := newClock(time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))
	s := NewMonthlyResetScheduler(func(context.Context) error {
		calls.Add(1)
		return errStore
	}, logging.NewNopLogger(), clock.Now, time.UTC)

	s.wake(context.Background())
	s.wake(context.Background())

	assert.EqualValues(t, 2, calls.Load())
	assert.Equal(t, Idle, s.State())
}

func TestScheduler_StateIsResettingDuringRun(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	clock := newClock(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	s := NewMonthlyResetScheduler(func(context.Context) error {
		close(entered)
		<-release
		return nil
	}, logging.NewNopLogger(), clock.Now, time.UTC)

	done := make(chan struct{})
	go func() {
		s.wake(context.Background())
		close(done)
	}()

	<-entered
	assert.Equal(t, Resetting, s.State())
	assert.Equal(t, "resetting", s.State().String())
	close(release)
	<-done
	assert.Equal(t, Idle, s.State())
}

func TestScheduler_ArmsForNextLocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	s := NewMonthlyResetScheduler(func(context.Context) error { return nil }, logging.NewNopLogger(), time.Now, loc)

	assert.True(t, s.NextWake().IsZero())
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	next := s.NextWake().In(loc)
	require.False(t, next.IsZero())
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Sub(time.Now()) <= 24*time.Hour)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := NewMonthlyResetScheduler(func(context.Context) error { return nil }, logging.NewNopLogger(), time.Now, time.UTC)
	s.Stop()
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
	s.Stop()
}

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrRefreshHonorsTTL(t *testing.T) {
	s := NewStore[int]("ttl-test", 50*time.Millisecond)
	var calls int32
	refresh := func(context.Context) (int, error) {
		return int(atomic.AddInt32(&calls, 1)), nil
	}

	v, err := s.GetOrRefresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	// Second call inside the TTL window must not re-invoke refresh.
	v, err = s.GetOrRefresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	time.Sleep(60 * time.Millisecond)

	v, err = s.GetOrRefresh(context.Background(), refresh)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGetOrRefreshServesStaleOnFailure(t *testing.T) {
	s := NewStore[string]("stale-test", 10*time.Millisecond)
	s.Set("snapshot")
	time.Sleep(20 * time.Millisecond) // entry is now stale

	failing := func(context.Context) (string, error) {
		return "", errors.New("upstream down")
	}

	v, err := s.GetOrRefresh(context.Background(), failing)
	require.NoError(t, err, "stale-but-present data is preferred to an error")
	assert.Equal(t, "snapshot", v)
}

func TestGetOrRefreshErrorsOnlyWhenEmpty(t *testing.T) {
	s := NewStore[string]("empty-test", time.Minute)
	failing := func(context.Context) (string, error) {
		return "", errors.New("upstream down")
	}

	_, err := s.GetOrRefresh(context.Background(), failing)
	assert.Error(t, err)
}

func TestGetOrRefreshCollapsesConcurrentMisses(t *testing.T) {
	s := NewStore[int]("flight-test", time.Minute)
	var calls int32
	slow := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(30 * time.Millisecond)
		return 42, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := s.GetOrRefresh(context.Background(), slow)
			assert.NoError(t, err)
			assert.Equal(t, 42, v)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "one upstream fetch shared across all misses")
}

func TestForceRefreshIgnoresTTL(t *testing.T) {
	s := NewStore[int]("force-test", time.Hour)
	s.Set(1)

	v, err := s.ForceRefresh(context.Background(), func(context.Context) (int, error) {
		return 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	got, fresh, exists := s.Get()
	assert.Equal(t, 2, got)
	assert.True(t, fresh)
	assert.True(t, exists)
}

func TestSchedulerSurvivesFailures(t *testing.T) {
	var calls int32
	job := func(context.Context) error {
		n := atomic.AddInt32(&calls, 1)
		if n <= 2 {
			return errors.New("scrape failed")
		}
		return nil
	}

	sched := NewScheduler("test", 20*time.Millisecond, job)
	sched.Start()
	defer sched.Stop()

	// Immediate warm run plus at least two ticks: two failures then success.
	deadline := time.Now().Add(2 * time.Second)
	for atomic.LoadInt32(&calls) < 3 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3),
		"the loop must keep invoking the job after consecutive failures")
}

func TestSchedulerStopJoins(t *testing.T) {
	sched := NewScheduler("stop-test", time.Hour, func(context.Context) error { return nil })
	sched.Start()

	done := make(chan struct{})
	go func() {
		sched.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not join the scheduler goroutine")
	}
}

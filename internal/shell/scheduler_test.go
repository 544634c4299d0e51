package shell

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsCallback(t *testing.T) {
	s := NewScheduler(context.Background())
	defer s.Close()

	done := make(chan struct{})
	require.True(t, s.Schedule(time.Millisecond, func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("callback did not run")
	}
	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, time.Millisecond)
}

func TestSchedulerSequenceOrder(t *testing.T) {
	s := NewScheduler(context.Background())
	defer s.Close()

	var mu sync.Mutex
	var got []int
	step := func(n int) func() {
		return func() {
			mu.Lock()
			got = append(got, n)
			mu.Unlock()
		}
	}

	require.True(t, s.Sequence(time.Millisecond, step(1), step(2), step(3), step(4)))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 4
	}, time.Second, time.Millisecond)
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestSchedulerClose(t *testing.T) {
	s := NewScheduler(context.Background())

	ran := make(chan struct{}, 1)
	s.Schedule(20*time.Millisecond, func() { ran <- struct{}{} })
	assert.Equal(t, 1, s.Pending())

	s.Close()
	assert.Equal(t, 0, s.Pending())
	assert.False(t, s.Schedule(time.Millisecond, func() {}))

	select {
	case <-ran:
		t.Fatal("callback ran after Close")
	case <-time.After(60 * time.Millisecond):
	}

	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed")
	}
}

func TestSchedulerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(ctx)
	defer s.Close()

	cancel()
	assert.False(t, s.Schedule(time.Millisecond, func() {}))
}

func TestSchedulerPendingCoversSequence(t *testing.T) {
	s := NewScheduler(context.Background())
	defer s.Close()

	var mu sync.Mutex
	var seen []int
	step := func() {
		mu.Lock()
		seen = append(seen, s.Pending())
		mu.Unlock()
	}

	require.True(t, s.Sequence(time.Millisecond, step, step, step))
	assert.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 3)
	for _, n := range seen {
		assert.GreaterOrEqual(t, n, 1)
	}
}

package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTriggerNowRunsTask(t *testing.T) {
	ran := 0
	r := NewRunner("test", time.Hour, func(ctx context.Context) { ran++ }, testLogger)

	assert.True(t, r.TriggerNow())
	assert.True(t, r.TriggerNow())
	assert.Equal(t, 2, ran)
}

func TestTriggerNowDropsOverlappingPass(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var startOnce sync.Once
	r := NewRunner("test", time.Hour, func(ctx context.Context) {
		startOnce.Do(func() {
			close(started)
			<-release
		})
	}, testLogger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.True(t, r.TriggerNow())
	}()

	<-started
	assert.True(t, r.IsRunning())
	// A tick firing mid-pass is dropped, never queued.
	assert.False(t, r.TriggerNow())

	close(release)
	wg.Wait()
	assert.False(t, r.IsRunning())

	// With the pass finished the guard is free again.
	assert.True(t, r.TriggerNow())
}

func TestRunnerStopEndsStart(t *testing.T) {
	r := NewRunner("test", time.Millisecond, func(ctx context.Context) {}, testLogger)

	done := make(chan struct{})
	go func() {
		r.Start()
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	r.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestRunnerAccessors(t *testing.T) {
	r := NewRunner("intake", 5*time.Minute, func(ctx context.Context) {}, testLogger)
	assert.Equal(t, "intake", r.Name())
	assert.Equal(t, 5*time.Minute, r.Interval())
	assert.False(t, r.IsRunning())
}

func TestRateLimiterReadyBeforeFirstDispatch(t *testing.T) {
	l := NewRateLimiter(10 * time.Minute)
	assert.True(t, l.Ready(time.Now()))
}

func TestRateLimiterBlocksInsideInterval(t *testing.T) {
	l := NewRateLimiter(10 * time.Minute)
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	l.RecordDispatch(now)

	assert.False(t, l.Ready(now))
	assert.False(t, l.Ready(now.Add(9*time.Minute)))
	assert.True(t, l.Ready(now.Add(10*time.Minute)))
}

func TestRateLimiterReadyIsNotConsuming(t *testing.T) {
	l := NewRateLimiter(10 * time.Minute)
	now := time.Now()

	// Polling readiness any number of times never moves the window.
	for i := 0; i < 5; i++ {
		assert.True(t, l.Ready(now))
	}

	l.RecordDispatch(now)
	assert.False(t, l.Ready(now.Add(time.Minute)))
}

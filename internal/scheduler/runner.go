package scheduler

import (
	"context"
	"sync"
	"time"

	"meetingbot/internal/logger"
)

// Runner invokes a task on a fixed interval. Each tick holds a single-slot
// guard: a tick that fires while the previous pass is still running is a
// silent no-op, never queued. TriggerNow runs a pass immediately under the
// same guard, for operators and tests.
type Runner struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context)
	logger   *logger.Logger

	mu      sync.Mutex
	running bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewRunner(name string, interval time.Duration, task func(ctx context.Context), logger *logger.Logger) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start blocks, ticking until Stop is called. Run it in its own goroutine.
func (r *Runner) Start() {
	r.logger.Info("Starting", r.name, "runner with interval:", r.interval.String())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			go r.TriggerNow()
		case <-r.ctx.Done():
			r.logger.Info(r.name, "runner stopped")
			return
		}
	}
}

func (r *Runner) Stop() {
	r.cancel()
}

// TriggerNow runs a pass if one is not already in flight. It returns false
// when the pass was dropped because the previous one is still running.
func (r *Runner) TriggerNow() bool {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		r.logger.Debug(r.name, "pass still in flight, dropping tick")
		return false
	}
	r.running = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.running = false
		r.mu.Unlock()
	}()

	r.task(r.ctx)
	return true
}

// IsRunning reports whether a pass is currently in flight.
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Runner) Name() string {
	return r.name
}

func (r *Runner) Interval() time.Duration {
	return r.interval
}

package pipeline

import (
	"sync"
	"time"
)

// Clock drives pipeline ticks. The pipeline owns exactly one clock per
// attachment; stopping it is the first step of teardown so no tick can
// observe a half-torn-down pipeline.
type Clock interface {
	// Start begins invoking tick. Calling Start on a running clock is a
	// no-op.
	Start(tick func())
	// Stop halts tick delivery. Idempotent.
	Stop()
}

// ManualClock delivers ticks only when Step is called. The windowed front
// end steps it once per game update, which ties the analysis cadence to
// the display cadence.
type ManualClock struct {
	mu   sync.Mutex
	tick func()
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Start(tick func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tick == nil {
		c.tick = tick
	}
}

func (c *ManualClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick = nil
}

// Step fires one tick if the clock is running.
func (c *ManualClock) Step() {
	c.mu.Lock()
	tick := c.tick
	c.mu.Unlock()
	if tick != nil {
		tick()
	}
}

// Running reports whether the clock has been started and not stopped.
func (c *ManualClock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick != nil
}

// IntervalClock ticks on a fixed wall-clock interval from its own
// goroutine. Used in headless mode, where no display loop exists to step
// a manual clock.
type IntervalClock struct {
	interval time.Duration

	mu     sync.Mutex
	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewIntervalClock creates a stopped clock. A non-positive interval
// defaults to ~60Hz.
func NewIntervalClock(interval time.Duration) *IntervalClock {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &IntervalClock{interval: interval}
}

func (c *IntervalClock) Start(tick func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker != nil {
		return
	}
	c.ticker = time.NewTicker(c.interval)
	c.done = make(chan struct{})

	ticker, done := c.ticker, c.done
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-ticker.C:
				tick()
			case <-done:
				return
			}
		}
	}()
}

func (c *IntervalClock) Stop() {
	c.mu.Lock()
	if c.ticker == nil {
		c.mu.Unlock()
		return
	}
	c.ticker.Stop()
	close(c.done)
	c.ticker = nil
	c.mu.Unlock()

	c.wg.Wait()
}

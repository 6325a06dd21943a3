// Package timectl tracks the "real time vs user-scrubbed time" model
// feeding the solar calculator and any time-dependent shading.
package timectl

import (
	"sync"
	"time"

	"github.com/go-co-op/gocron"
)

// State is a read-only view of the clock.
type State struct {
	ControlDate time.Time `json:"controlDate"`
	IsRealTime  bool      `json:"isRealTime"`
	Show24h     bool      `json:"show24h"`
}

// Clock owns the control date. While real time is enabled a periodic
// refresh keeps ControlDate equal to "now"; a manual scrub always ends real
// time mode and stops the refresh immediately. At most one refresh job is
// active at any moment.
type Clock struct {
	mu          sync.Mutex
	controlDate time.Time
	realTime    bool
	show24h     bool

	interval time.Duration
	now      func() time.Time
	sched    *gocron.Scheduler

	// onModeChange is invoked (outside the lock) with the new state after
	// every mutation; the session uses it to flip the solar driver between
	// animated and static mode.
	onModeChange func(State)
}

// Option configures a Clock.
type Option func(*Clock)

// WithInterval overrides the 1-second refresh cadence (tests).
func WithInterval(d time.Duration) Option {
	return func(c *Clock) { c.interval = d }
}

// WithNow overrides the time source (tests).
func WithNow(now func() time.Time) Option {
	return func(c *Clock) { c.now = now }
}

// WithModeChange registers the state-change callback.
func WithModeChange(fn func(State)) Option {
	return func(c *Clock) { c.onModeChange = fn }
}

// New creates a clock in real-time mode with the refresh running.
func New(opts ...Option) *Clock {
	c := &Clock{
		interval: time.Second,
		now:      time.Now,
		realTime: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.controlDate = c.now()

	c.mu.Lock()
	c.startRefreshLocked()
	c.mu.Unlock()
	return c
}

// State returns the current clock state.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// SetControlDate scrubs to an explicit time. Manual edits always end
// real-time mode, so the refresh is stopped before the new date is applied.
func (c *Clock) SetControlDate(t time.Time) {
	c.mu.Lock()
	c.stopRefreshLocked()
	c.realTime = false
	c.controlDate = t
	st := c.stateLocked()
	c.mu.Unlock()
	c.notify(st)
}

// SetRealTime enables or disables real-time mode. Resuming resets the
// control date to "now" at the moment of resumption and restarts the
// refresh; disabling stops the refresh immediately.
func (c *Clock) SetRealTime(on bool) {
	c.mu.Lock()
	c.stopRefreshLocked()
	c.realTime = on
	if on {
		c.controlDate = c.now()
		c.startRefreshLocked()
	}
	st := c.stateLocked()
	c.mu.Unlock()
	c.notify(st)
}

// SetShow24h toggles the 24-hour display flag. Display-only: it does not
// affect real-time mode.
func (c *Clock) SetShow24h(on bool) {
	c.mu.Lock()
	c.show24h = on
	st := c.stateLocked()
	c.mu.Unlock()
	c.notify(st)
}

// Close stops the refresh. The clock keeps its last state but no timer
// survives it.
func (c *Clock) Close() {
	c.mu.Lock()
	c.stopRefreshLocked()
	c.mu.Unlock()
}

func (c *Clock) stateLocked() State {
	return State{ControlDate: c.controlDate, IsRealTime: c.realTime, Show24h: c.show24h}
}

func (c *Clock) notify(st State) {
	if c.onModeChange != nil {
		c.onModeChange(st)
	}
}

func (c *Clock) startRefreshLocked() {
	c.stopRefreshLocked()

	s := gocron.NewScheduler(time.UTC)
	_, err := s.Every(c.interval).Do(func() {
		c.mu.Lock()
		if c.realTime {
			c.controlDate = c.now()
		}
		c.mu.Unlock()
	})
	if err != nil {
		return
	}
	s.StartAsync()
	c.sched = s
}

func (c *Clock) stopRefreshLocked() {
	if c.sched != nil {
		c.sched.Stop()
		c.sched = nil
	}
}

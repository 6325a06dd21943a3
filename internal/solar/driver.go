package solar

import (
	"sync"
	"time"
)

// LightSink receives computed sun positions. The map light layer implements
// this; tests use a recording sink.
type LightSink interface {
	ApplyLight(p Position)
}

// Driver animates the sun light. It has two modes: animating, where the
// position is recomputed from the current time on every tick, and static,
// where the position for an override time is applied once. Switching modes
// always cancels the previous tick source before starting the next one, so
// there is at most one active update source at any moment.
type Driver struct {
	sink     LightSink
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	stopTick chan struct{}
	done     sync.WaitGroup
	closed   bool
}

// NewDriver creates a stopped driver ticking at the given interval when
// animating. Call Start (or ClearOverride) to begin animating.
func NewDriver(sink LightSink, interval time.Duration) *Driver {
	return &Driver{
		sink:     sink,
		interval: interval,
		now:      time.Now,
	}
}

// Start begins the animation loop. Starting an already animating driver
// restarts its tick source.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.startAnimationLocked()
}

// SetOverride switches to static mode: the tick source is cancelled and the
// light for the override time is applied exactly once.
func (d *Driver) SetOverride(t time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.cancelTickLocked()
	d.sink.ApplyLight(At(t))
}

// ClearOverride returns to animating from the current time.
func (d *Driver) ClearOverride() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.startAnimationLocked()
}

// Close stops any active tick source and makes the driver permanently inert.
func (d *Driver) Close() {
	d.mu.Lock()
	d.cancelTickLocked()
	d.closed = true
	d.mu.Unlock()
	d.done.Wait()
}

func (d *Driver) startAnimationLocked() {
	d.cancelTickLocked()

	stop := make(chan struct{})
	d.stopTick = stop

	// Apply immediately so the light is never stale for a full interval.
	d.sink.ApplyLight(At(d.now()))

	d.done.Add(1)
	go func() {
		defer d.done.Done()
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// Apply under the lock so a tick already in flight when
				// the mode switches can never land after the switch.
				d.mu.Lock()
				if d.stopTick != stop {
					d.mu.Unlock()
					return
				}
				d.sink.ApplyLight(At(d.now()))
				d.mu.Unlock()
			}
		}
	}()
}

func (d *Driver) cancelTickLocked() {
	if d.stopTick != nil {
		close(d.stopTick)
		d.stopTick = nil
	}
}

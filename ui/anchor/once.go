package anchor

import "time"

// Once holds at most one pending callback. Scheduling again cancels the
// previous callback first.
//
// Each schedule gets a new generation. A callback that was already on its
// way to the UI loop when it was cancelled sees a stale generation and does
// nothing.
type Once struct {
	sched Scheduler
	timer Timer
	gen   uint64
}

// NewOnce creates a Once backed by s.
func NewOnce(s Scheduler) *Once {
	return &Once{sched: s}
}

// After schedules fn to run after d, replacing any pending callback.
func (o *Once) After(d time.Duration, fn func()) {
	o.Cancel()
	o.timer = o.sched.AfterFunc(d, o.wrap(fn))
}

// Frame schedules fn for the next frame, replacing any pending callback.
func (o *Once) Frame(fn func()) {
	o.Cancel()
	o.timer = o.sched.RequestFrame(o.wrap(fn))
}

func (o *Once) wrap(fn func()) func() {
	gen := o.gen
	return func() {
		if gen != o.gen {
			return
		}
		o.timer = nil
		o.gen++
		fn()
	}
}

// Cancel drops the pending callback, if any.
func (o *Once) Cancel() {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.gen++
}

// Pending returns true while a callback is scheduled and has not run.
func (o *Once) Pending() bool {
	return o.timer != nil
}

// Throttle limits fn to one leading call per window, plus one trailing call
// if more triggers arrived during the window.
type Throttle struct {
	once     *Once
	window   time.Duration
	fn       func()
	trailing bool
}

// NewThrottle creates a throttle around fn.
func NewThrottle(s Scheduler, window time.Duration, fn func()) *Throttle {
	return &Throttle{once: NewOnce(s), window: window, fn: fn}
}

// Trigger calls fn now, or marks a trailing call if a window is open.
func (t *Throttle) Trigger() {
	if t.once.Pending() {
		t.trailing = true
		return
	}
	t.fn()
	t.open()
}

func (t *Throttle) open() {
	t.once.After(t.window, func() {
		if !t.trailing {
			return
		}
		t.trailing = false
		t.fn()
		t.open()
	})
}

// Cancel closes the window and drops any trailing call.
func (t *Throttle) Cancel() {
	t.once.Cancel()
	t.trailing = false
}

// Debounce calls fn once triggers have been quiet for the whole period.
type Debounce struct {
	once  *Once
	quiet time.Duration
	fn    func()
}

// NewDebounce creates a debounce around fn.
func NewDebounce(s Scheduler, quiet time.Duration, fn func()) *Debounce {
	return &Debounce{once: NewOnce(s), quiet: quiet, fn: fn}
}

// Trigger restarts the quiet period.
func (d *Debounce) Trigger() {
	d.once.After(d.quiet, d.fn)
}

// Cancel drops the pending call.
func (d *Debounce) Cancel() {
	d.once.Cancel()
}

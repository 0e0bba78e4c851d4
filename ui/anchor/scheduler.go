// Package anchor keeps a selector panel positioned next to its trigger while
// it is open. It decides when to recompute (open, settle, scroll, resize,
// content change) and owns every timer and listener involved.
//
// All Controller methods and all scheduled callbacks must run on the same
// goroutine, normally the UI event loop. Schedulers that use real timers
// hand their callbacks back to that loop through a dispatch function.
package anchor

import "time"

// DefaultFrameInterval is one frame at 60fps.
const DefaultFrameInterval = 16 * time.Millisecond

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler defers callbacks.
type Scheduler interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Timer

	// RequestFrame runs fn once after the next render.
	RequestFrame(fn func()) Timer
}

// LoopScheduler runs timers on their own goroutines and dispatches the
// callbacks onto the UI loop.
type LoopScheduler struct {
	dispatch func(func())
	frame    time.Duration
}

// NewLoopScheduler creates a scheduler. dispatch must queue fn to run on the
// UI goroutine; frame is the delay used for RequestFrame.
func NewLoopScheduler(dispatch func(func()), frame time.Duration) *LoopScheduler {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &LoopScheduler{dispatch: dispatch, frame: frame}
}

// AfterFunc implements Scheduler.
func (s *LoopScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() {
		s.dispatch(fn)
	})
}

// RequestFrame implements Scheduler.
func (s *LoopScheduler) RequestFrame(fn func()) Timer {
	return s.AfterFunc(s.frame, fn)
}

// Package clock provides a scheduler whose time only moves when a test says so.
package clock

import (
	"sort"
	"time"

	"selectorkit/ui/anchor"
)

// Manual is an anchor.Scheduler driven by Advance. Callbacks run on the
// goroutine that calls Advance, in due-time order.
type Manual struct {
	now    time.Duration
	frame  time.Duration
	seq    int
	timers []*timer
}

type timer struct {
	at      time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// NewManual creates a manual scheduler at time zero. frame is the delay used
// for RequestFrame; zero means anchor.DefaultFrameInterval.
func NewManual(frame time.Duration) *Manual {
	if frame <= 0 {
		frame = anchor.DefaultFrameInterval
	}
	return &Manual{frame: frame}
}

// AfterFunc implements anchor.Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) anchor.Timer {
	t := &timer{at: m.now + d, seq: m.seq, fn: fn}
	m.seq++
	m.timers = append(m.timers, t)
	return t
}

// RequestFrame implements anchor.Scheduler.
func (m *Manual) RequestFrame(fn func()) anchor.Timer {
	return m.AfterFunc(m.frame, fn)
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Advance moves time forward by d, running every callback that falls due,
// including ones scheduled by callbacks along the way.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		next.fired = true
		next.fn()
	}
	m.now = target
	m.compact()
}

// Pending returns the number of callbacks that have not run or been stopped.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(target time.Duration) *timer {
	var due []*timer
	for _, t := range m.timers {
		if !t.stopped && !t.fired && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (m *Manual) compact() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.timers = live
}

package selector

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"selectorkit/ui/anchor"
)

// CallbackMsg carries a timer callback onto the bubbletea loop. The host's
// Update must call Run and re-arm the queue with Wait.
type CallbackMsg struct {
	fn func()
}

// Run executes the callback.
func (m CallbackMsg) Run() {
	if m.fn != nil {
		m.fn()
	}
}

// Queue hands callbacks from timer goroutines to the UI loop.
type Queue struct {
	ch chan func()
}

// NewQueue creates a queue with room for size pending callbacks.
func NewQueue(size int) *Queue {
	return &Queue{ch: make(chan func(), max(size, 1))}
}

// Dispatch enqueues fn. It blocks when the queue is full.
func (q *Queue) Dispatch(fn func()) {
	q.ch <- fn
}

// Wait returns a command that delivers the next callback as a CallbackMsg.
func (q *Queue) Wait() tea.Cmd {
	return func() tea.Msg {
		return CallbackMsg{fn: <-q.ch}
	}
}

// Scheduler returns a scheduler whose callbacks run through this queue.
func (q *Queue) Scheduler(frame time.Duration) *anchor.LoopScheduler {
	return anchor.NewLoopScheduler(q.Dispatch, frame)
}

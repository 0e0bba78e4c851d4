package anchor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"selectorkit/testing/clock"
	"selectorkit/ui/anchor"
	"selectorkit/ui/position"
)

// leaky simulates timers whose callbacks were already queued on the UI loop
// when Stop was called: Stop reports failure and the callback still runs.
type leaky struct {
	*clock.Manual
}

type unstoppable struct{}

func (unstoppable) Stop() bool { return false }

func (l leaky) AfterFunc(d time.Duration, fn func()) anchor.Timer {
	l.Manual.AfterFunc(d, fn)
	return unstoppable{}
}

func (l leaky) RequestFrame(fn func()) anchor.Timer {
	l.Manual.RequestFrame(fn)
	return unstoppable{}
}

func TestOnceSupersedesPrevious(t *testing.T) {
	c := clock.NewManual(0)
	o := anchor.NewOnce(c)

	var ran []string
	o.After(10*time.Millisecond, func() { ran = append(ran, "first") })
	o.After(10*time.Millisecond, func() { ran = append(ran, "second") })
	assert.True(t, o.Pending())
	assert.Equal(t, 1, c.Pending(), "only one timer outstanding")

	c.Advance(time.Second)
	assert.Equal(t, []string{"second"}, ran)
	assert.False(t, o.Pending())
}

func TestOnceFrame(t *testing.T) {
	c := clock.NewManual(16 * time.Millisecond)
	o := anchor.NewOnce(c)

	ran := 0
	o.Frame(func() { ran++ })
	c.Advance(15 * time.Millisecond)
	assert.Equal(t, 0, ran)
	c.Advance(time.Millisecond)
	assert.Equal(t, 1, ran)
}

func TestOnceDropsStaleCallbacks(t *testing.T) {
	c := clock.NewManual(0)
	o := anchor.NewOnce(leaky{c})

	ran := 0
	o.After(10*time.Millisecond, func() { ran++ })
	o.Cancel()
	c.Advance(time.Second)
	assert.Equal(t, 0, ran, "cancelled callback that still fires is ignored")

	var order []string
	o.After(10*time.Millisecond, func() { order = append(order, "a") })
	o.After(10*time.Millisecond, func() { order = append(order, "b") })
	c.Advance(time.Second)
	assert.Equal(t, []string{"b"}, order)
}

func TestControllerIgnoresLeakedTimersAfterClose(t *testing.T) {
	c := clock.NewManual(16 * time.Millisecond)
	ctrl := anchor.New(leaky{c}, anchor.NewListeners(), anchor.DefaultOptions())
	defer ctrl.Dispose()

	writes := 0
	ctrl.OnChange(func(_ position.Position, ok bool) {
		if ok {
			writes++
		}
	})
	ctrl.SetTrigger(anchor.ElementFunc(func() (position.Geometry, bool) {
		return position.NewGeometry(20, 20, 10, 1), true
	}))
	ctrl.SetPanel(anchor.ElementFunc(func() (position.Geometry, bool) {
		return position.Size(10, 5), true
	}))
	ctrl.SetViewport(position.Viewport{Width: 200, Height: 60})

	ctrl.SetOpen(true)
	ctrl.SetOpen(false)
	c.Advance(time.Second)

	assert.Equal(t, 0, writes)
}

func TestThrottleLeadingAndTrailing(t *testing.T) {
	c := clock.NewManual(0)
	calls := 0
	th := anchor.NewThrottle(c, 16*time.Millisecond, func() { calls++ })

	th.Trigger()
	assert.Equal(t, 1, calls, "leading call is immediate")

	th.Trigger()
	th.Trigger()
	assert.Equal(t, 1, calls)

	c.Advance(16 * time.Millisecond)
	assert.Equal(t, 2, calls, "one trailing call for the window")

	c.Advance(time.Second)
	assert.Equal(t, 2, calls)

	th.Trigger()
	assert.Equal(t, 3, calls, "a new window opens after quiet")
}

func TestThrottleCancelDropsTrailing(t *testing.T) {
	c := clock.NewManual(0)
	calls := 0
	th := anchor.NewThrottle(c, 16*time.Millisecond, func() { calls++ })

	th.Trigger()
	th.Trigger()
	th.Cancel()
	c.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestDebounce(t *testing.T) {
	c := clock.NewManual(0)
	calls := 0
	d := anchor.NewDebounce(c, 150*time.Millisecond, func() { calls++ })

	for i := 0; i < 5; i++ {
		d.Trigger()
		c.Advance(100 * time.Millisecond)
	}
	assert.Equal(t, 0, calls)

	c.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, calls)

	d.Trigger()
	d.Cancel()
	c.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestListeners(t *testing.T) {
	l := anchor.NewListeners()
	scrolls := 0
	remove := l.OnScroll(func() { scrolls++ })
	l.OnResize(func() {})

	s, r := l.Len()
	assert.Equal(t, 1, s)
	assert.Equal(t, 1, r)

	l.Scroll()
	remove()
	remove()
	l.Scroll()
	assert.Equal(t, 1, scrolls)

	s, _ = l.Len()
	assert.Zero(t, s)
}

package anchor

import (
	"github.com/google/uuid"

	"selectorkit/log"
	"selectorkit/ui/layout"
	"selectorkit/ui/position"
)

// Element is anything that can report its box on demand. ok is false while
// the element is not mounted.
type Element interface {
	Bounds() (g position.Geometry, ok bool)
}

// ElementFunc adapts a function to Element.
type ElementFunc func() (position.Geometry, bool)

// Bounds implements Element.
func (f ElementFunc) Bounds() (position.Geometry, bool) {
	return f()
}

// Style is what the host applies to the panel element.
type Style struct {
	Position string
	Top      int
	Left     int
}

// Recompute causes, used for tracing and profiling.
const (
	causeFrame  = "frame"
	causeSettle = "settle"
	causeScroll = "scroll"
	causeResize = "resize"
	causeNotify = "notify"
)

// Controller decides when a panel's position is computed and keeps the
// result while the panel is open in dropdown mode.
//
// Lifecycle: closed -> opening (frame + settle recompute scheduled) -> open
// (scroll throttled, resize debounced) -> closing (everything cancelled,
// listeners removed, position discarded). Dialog mode never anchors.
type Controller struct {
	id    string
	opts  Options
	sched Scheduler
	env   Environment

	trigger Element
	panel   Element

	open     bool
	viewport position.Viewport
	mode     layout.Mode

	active   bool
	disposed bool
	pos      *position.Position

	frame  *Once
	settle *Once
	scroll *Throttle
	resize *Debounce

	removeScroll func()
	removeResize func()

	onChange []func(position.Position, bool)
	trace    *log.ComponentTrace
}

// New creates a closed controller. env may be nil, in which case the panel is
// positioned on open but never follows scroll or resize.
func New(sched Scheduler, env Environment, opts Options) *Controller {
	c := &Controller{
		id:    uuid.NewString()[:8],
		sched: sched,
		env:   env,
	}
	c.trace = log.TraceComponent("anchor:" + c.id)
	c.applyOptions(opts)
	return c
}

func (c *Controller) applyOptions(opts Options) {
	c.opts = opts.withDefaults()
	c.frame = NewOnce(c.sched)
	c.settle = NewOnce(c.sched)
	c.scroll = NewThrottle(c.sched, c.opts.ScrollThrottle, func() { c.recompute(causeScroll) })
	c.resize = NewDebounce(c.sched, c.opts.ResizeDebounce, func() { c.recompute(causeResize) })
	c.mode = layout.ResolveMode(c.opts.Mode, c.viewport.Width, c.opts.Breakpoint)
}

// ID returns a short identifier used in logs.
func (c *Controller) ID() string {
	return c.id
}

// SetTrigger sets the element the panel anchors to.
func (c *Controller) SetTrigger(el Element) {
	c.trigger = el
}

// SetPanel sets the floating panel element.
func (c *Controller) SetPanel(el Element) {
	c.panel = el
}

// SetOptions replaces the configuration. An open panel is re-anchored from
// scratch.
func (c *Controller) SetOptions(opts Options) {
	if c.disposed {
		return
	}
	c.deactivate()
	c.applyOptions(opts)
	c.sync()
}

// Options returns the current configuration.
func (c *Controller) Options() Options {
	return c.opts
}

// SetOpen opens or closes the panel.
func (c *Controller) SetOpen(open bool) {
	if c.open == open {
		return
	}
	c.open = open
	c.trace.Event("open", open)
	c.sync()
}

// IsOpen reports the open flag as last set by the host.
func (c *Controller) IsOpen() bool {
	return c.open
}

// SetViewport records the viewport size and re-resolves the mode, open or not.
// Recomputing the position on resize is left to the resize listener.
func (c *Controller) SetViewport(v position.Viewport) {
	c.viewport = v
	c.sync()
}

// Notify tells the controller that something it depends on changed, such as
// the trigger moving or the panel content changing size. While anchored, a
// recompute is requested for the next frame.
func (c *Controller) Notify() {
	wasActive := c.active
	c.sync()
	if wasActive && c.active {
		c.frame.Frame(func() { c.recompute(causeNotify) })
	}
}

// Mode returns the resolved presentation mode.
func (c *Controller) Mode() layout.Mode {
	return c.mode
}

// Position returns the current position. ok is false while closed, in dialog
// mode, or before the first successful computation.
func (c *Controller) Position() (position.Position, bool) {
	if c.pos == nil {
		return position.Position{}, false
	}
	return *c.pos, true
}

// Style returns the absolute style for the panel, present only while anchored.
func (c *Controller) Style() (Style, bool) {
	p, ok := c.Position()
	if !ok {
		return Style{}, false
	}
	return Style{Position: "absolute", Top: p.Top, Left: p.Left}, true
}

// OnChange registers fn to run after every position write (ok=true) and
// discard (ok=false).
func (c *Controller) OnChange(fn func(p position.Position, ok bool)) {
	c.onChange = append(c.onChange, fn)
}

// Dispose releases every timer and listener. It is safe to call more than once.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.deactivate()
	c.disposed = true
	c.onChange = nil
	c.trace.Event("disposed")
}

// sync moves the state machine to match the open flag and resolved mode.
func (c *Controller) sync() {
	c.mode = layout.ResolveMode(c.opts.Mode, c.viewport.Width, c.opts.Breakpoint)
	want := c.open && c.mode == layout.Dropdown && !c.disposed

	switch {
	case want && !c.active:
		c.activate()
	case !want && c.active:
		c.deactivate()
	}
}

func (c *Controller) activate() {
	c.active = true
	c.trace.Event("anchoring", c.opts.Placement)

	if c.env != nil {
		c.removeScroll = c.env.OnScroll(func() { c.scroll.Trigger() })
		c.removeResize = c.env.OnResize(func() { c.resize.Trigger() })
	}

	c.frame.Frame(func() { c.recompute(causeFrame) })
	c.settle.After(c.opts.SettleDelay, func() { c.recompute(causeSettle) })
}

func (c *Controller) deactivate() {
	if !c.active {
		return
	}
	c.active = false

	c.frame.Cancel()
	c.settle.Cancel()
	c.scroll.Cancel()
	c.resize.Cancel()

	if c.removeScroll != nil {
		c.removeScroll()
		c.removeScroll = nil
	}
	if c.removeResize != nil {
		c.removeResize()
		c.removeResize = nil
	}

	if c.pos != nil {
		c.pos = nil
		c.emit(position.Position{}, false)
	}
	c.trace.Event("released")
}

func (c *Controller) recompute(cause string) {
	if !c.active || c.trigger == nil || c.panel == nil {
		return
	}

	done := log.GetProfiler().StartCompute(cause)
	defer done()

	trigger, ok := c.trigger.Bounds()
	if !ok || trigger.IsEmpty() {
		log.GetProfiler().RecordSkip()
		return
	}
	panel, ok := c.panel.Bounds()
	if !ok || panel.IsEmpty() {
		log.GetProfiler().RecordSkip()
		return
	}

	p := position.Compute(trigger, panel, c.opts.Placement, c.viewport, c.opts.Offset, c.opts.Margin)
	c.pos = &p
	log.LayoutTrace("%s %s: trigger=%v panel=%v viewport=%dx%d -> %v",
		c.id, cause, trigger, panel, c.viewport.Width, c.viewport.Height, p)
	c.emit(p, true)
}

func (c *Controller) emit(p position.Position, ok bool) {
	for _, fn := range c.onChange {
		fn(p, ok)
	}
}

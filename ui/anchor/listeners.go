package anchor

// Environment delivers scroll and resize notifications. Each registration
// returns a function that removes it.
type Environment interface {
	OnScroll(fn func()) (remove func())
	OnResize(fn func()) (remove func())
}

// Listeners is an Environment the host fires by hand, for UI loops that
// receive scroll and resize as messages rather than callbacks.
type Listeners struct {
	scroll map[int]func()
	resize map[int]func()
	nextID int
}

// NewListeners creates an empty listener registry.
func NewListeners() *Listeners {
	return &Listeners{
		scroll: make(map[int]func()),
		resize: make(map[int]func()),
	}
}

// OnScroll implements Environment.
func (l *Listeners) OnScroll(fn func()) func() {
	return l.add(l.scroll, fn)
}

// OnResize implements Environment.
func (l *Listeners) OnResize(fn func()) func() {
	return l.add(l.resize, fn)
}

func (l *Listeners) add(set map[int]func(), fn func()) func() {
	id := l.nextID
	l.nextID++
	set[id] = fn
	return func() {
		delete(set, id)
	}
}

// Scroll calls every scroll listener.
func (l *Listeners) Scroll() {
	for _, fn := range snapshot(l.scroll) {
		fn()
	}
}

// Resize calls every resize listener.
func (l *Listeners) Resize() {
	for _, fn := range snapshot(l.resize) {
		fn()
	}
}

// Len returns the number of registered scroll and resize listeners.
func (l *Listeners) Len() (scroll, resize int) {
	return len(l.scroll), len(l.resize)
}

// snapshot copies the callbacks so listeners may unregister while firing.
func snapshot(set map[int]func()) []func() {
	fns := make([]func(), 0, len(set))
	for _, fn := range set {
		fns = append(fns, fn)
	}
	return fns
}

package event

import (
	"github.com/enetx/g"
	"github.com/google/uuid"
)

// Handle identifies a registered listener. It is returned by every Add call
// and is the only way to remove that listener again, since Go functions are
// not comparable.
type Handle uuid.UUID

func newHandle() Handle { return Handle(uuid.New()) }

// IsZero reports whether the handle was never issued by a list.
func (h Handle) IsZero() bool { return h == Handle(uuid.Nil) }

func (h Handle) String() string { return uuid.UUID(h).String() }

type entry[T any] struct {
	handle Handle
	fn     func(T)
}

// List is an ordered multicast list of listeners receiving a T.
// Listeners run in registration order. The zero value is ready to use.
type List[T any] struct {
	entries g.Slice[entry[T]]
}

// Add appends fn to the list and returns the handle that removes it.
func (l *List[T]) Add(fn func(T)) Handle {
	h := newHandle()
	l.entries.Push(entry[T]{handle: h, fn: fn})

	return h
}

// Remove unregisters the listener added under h and reports whether it was present.
// Removing from inside a running Invoke does not affect that invocation.
func (l *List[T]) Remove(h Handle) bool {
	before := len(l.entries)
	l.entries = l.entries.Iter().Exclude(func(e entry[T]) bool { return e.handle == h }).Collect()

	return len(l.entries) != before
}

// Invoke calls every listener with v.
func (l *List[T]) Invoke(v T) {
	for e := range l.entries.Iter() {
		e.fn(v)
	}
}

// Len returns the number of registered listeners.
func (l *List[T]) Len() int { return len(l.entries) }

func (l *List[T]) snapshot() g.Slice[entry[T]] { return l.entries.Clone() }

// Signal is a List for listeners that take no payload.
type Signal struct {
	list List[struct{}]
}

// Add appends fn to the signal and returns the handle that removes it.
func (s *Signal) Add(fn func()) Handle { return s.list.Add(func(struct{}) { fn() }) }

// Remove unregisters the listener added under h and reports whether it was present.
func (s *Signal) Remove(h Handle) bool { return s.list.Remove(h) }

// Invoke calls every listener in registration order.
func (s *Signal) Invoke() { s.list.Invoke(struct{}{}) }

// Len returns the number of registered listeners.
func (s *Signal) Len() int { return s.list.Len() }

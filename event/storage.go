// Package event implements a multicast listener registry indexed by an event
// id and a payload type.
//
// The same id may carry several independent channels at once: one for
// listeners without a payload and one per payload type. Triggering only
// reaches the channel whose payload type matches the call exactly; a trigger
// with no matching channel is a no-op.
package event

import (
	"reflect"

	"github.com/enetx/g"
)

// noPayload keys the channel of listeners registered without a payload.
type noPayload struct{}

var noPayloadType = reflect.TypeFor[noPayload]()

// Storage is the listener registry. The zero value is ready to use.
// Storage is not safe for concurrent use; see Bus.
type Storage[K comparable] struct {
	byID g.Map[K, g.Map[reflect.Type, any]]
}

// NewStorage returns an empty Storage.
func NewStorage[K comparable]() *Storage[K] {
	return &Storage[K]{byID: g.NewMap[K, g.Map[reflect.Type, any]]()}
}

// lookup returns the channel for (id, typ) or nil when none was created.
func lookup[T any, K comparable](s *Storage[K], id K, typ reflect.Type) *List[T] {
	if s == nil || s.byID == nil {
		return nil
	}

	channels := s.byID.Get(id)
	if channels.IsNone() {
		return nil
	}

	ch := channels.Some().Get(typ)
	if ch.IsNone() {
		return nil
	}

	list, ok := ch.Some().(*List[T])
	if !ok {
		return nil
	}

	return list
}

// ensure returns the channel for (id, typ), creating it on first use.
func ensure[T any, K comparable](s *Storage[K], id K, typ reflect.Type) *List[T] {
	if list := lookup[T](s, id, typ); list != nil {
		return list
	}

	if s.byID == nil {
		s.byID = g.NewMap[K, g.Map[reflect.Type, any]]()
	}

	channels, ok := s.byID[id]
	if !ok {
		channels = g.NewMap[reflect.Type, any]()
		s.byID[id] = channels
	}

	list := new(List[T])
	channels[typ] = list

	return list
}

// AddListener registers fn on the no-payload channel of id.
func (s *Storage[K]) AddListener(id K, fn func()) Handle {
	return ensure[noPayload](s, id, noPayloadType).Add(func(noPayload) { fn() })
}

// RemoveListener removes a no-payload listener. Unknown ids and handles are ignored.
func (s *Storage[K]) RemoveListener(id K, h Handle) {
	if list := lookup[noPayload](s, id, noPayloadType); list != nil {
		list.Remove(h)
	}
}

// Trigger invokes the no-payload listeners of id in registration order.
// Listeners registered with a payload type under the same id are not called.
func (s *Storage[K]) Trigger(id K) {
	if list := lookup[noPayload](s, id, noPayloadType); list != nil {
		list.Invoke(noPayload{})
	}
}

// Clear drops every channel registered under id.
func (s *Storage[K]) Clear(id K) {
	if s.byID != nil {
		delete(s.byID, id)
	}
}

// Has reports whether any channel exists for id.
func (s *Storage[K]) Has(id K) bool {
	return s.byID != nil && s.byID.Contains(id)
}

// AddListener registers fn on the channel of id whose payload type is T.
func AddListener[T any, K comparable](s *Storage[K], id K, fn func(T)) Handle {
	return ensure[T](s, id, reflect.TypeFor[T]()).Add(fn)
}

// RemoveListener removes a listener previously added with AddListener[T].
// Unknown ids, payload types and handles are ignored.
func RemoveListener[T any, K comparable](s *Storage[K], id K, h Handle) {
	if list := lookup[T](s, id, reflect.TypeFor[T]()); list != nil {
		list.Remove(h)
	}
}

// Trigger invokes the listeners of id registered for payload type T.
// The payload type is the static type of the call: Trigger[any] and
// Trigger[int] reach different channels.
func Trigger[T any, K comparable](s *Storage[K], id K, payload T) {
	if list := lookup[T](s, id, reflect.TypeFor[T]()); list != nil {
		list.Invoke(payload)
	}
}

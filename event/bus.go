package event

import (
	"reflect"
	"sync"

	"github.com/enetx/g"
)

// Bus is a Storage guarded by a sync.RWMutex, meant to be shared between
// unrelated subsystems. Construct one explicitly and hand it to whoever needs
// it; there is no process-wide instance.
//
// Listeners run outside the lock on a snapshot taken when publishing, so they
// may subscribe or unsubscribe without deadlocking.
type Bus[K comparable] struct {
	storage *Storage[K]
	mu      sync.RWMutex
}

// NewBus returns an empty Bus.
func NewBus[K comparable]() *Bus[K] {
	return &Bus[K]{storage: NewStorage[K]()}
}

// Subscribe is the thread-safe version of Storage.AddListener.
func (b *Bus[K]) Subscribe(id K, fn func()) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.storage.AddListener(id, fn)
}

// Unsubscribe is the thread-safe version of Storage.RemoveListener.
func (b *Bus[K]) Unsubscribe(id K, h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.storage.RemoveListener(id, h)
}

// Publish is the thread-safe version of Storage.Trigger.
func (b *Bus[K]) Publish(id K) {
	for e := range snapshot[noPayload](b, id, noPayloadType).Iter() {
		e.fn(noPayload{})
	}
}

// Subscribe is the thread-safe version of AddListener.
func Subscribe[T any, K comparable](b *Bus[K], id K, fn func(T)) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	return AddListener(b.storage, id, fn)
}

// Unsubscribe is the thread-safe version of RemoveListener.
func Unsubscribe[T any, K comparable](b *Bus[K], id K, h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	RemoveListener[T](b.storage, id, h)
}

// Publish is the thread-safe version of Trigger.
func Publish[T any, K comparable](b *Bus[K], id K, payload T) {
	for e := range snapshot[T](b, id, reflect.TypeFor[T]()).Iter() {
		e.fn(payload)
	}
}

func snapshot[T any, K comparable](b *Bus[K], id K, typ reflect.Type) g.Slice[entry[T]] {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if list := lookup[T](b.storage, id, typ); list != nil {
		return list.snapshot()
	}

	return nil
}

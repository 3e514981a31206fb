// Package observable provides host-owned values and lists that notify subscribers on change.
// It stands in for a widget property framework: the owner mutates, subscribers react.
// Nothing here is safe for concurrent use; callers serialize access on one goroutine.
package observable

import (
	"maps"
	"slices"
)

// Value holds a single comparable value and notifies subscribers when it changes.
type Value[T comparable] struct {
	value     T
	listeners map[int]func(old, new T)
	nextID    int
}

// NewValue creates a Value holding the given initial value.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	return v.value
}

// Set stores a new value. Subscribers are notified only if the value changed.
func (v *Value[T]) Set(value T) {
	if value == v.value {
		return
	}
	old := v.value
	v.value = value
	for _, id := range sortedKeys(v.listeners) {
		if fn, ok := v.listeners[id]; ok {
			fn(old, value)
		}
	}
}

// Subscribe registers fn to be called after every change.
// It returns a function that removes the subscription.
func (v *Value[T]) Subscribe(fn func(old, new T)) (unsubscribe func()) {
	if v.listeners == nil {
		v.listeners = make(map[int]func(old, new T))
	}
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	return func() { delete(v.listeners, id) }
}

// Observe subscribes fn and immediately invokes it with the current value.
func (v *Value[T]) Observe(fn func(T)) (unsubscribe func()) {
	unsubscribe = v.Subscribe(func(_, value T) { fn(value) })
	fn(v.value)
	return unsubscribe
}

// List holds an ordered sequence and notifies subscribers after any mutation.
type List[T any] struct {
	items     []T
	listeners map[int]func()
	nextID    int
}

// NewList creates a List with the given initial items.
func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: append([]T(nil), items...)}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// At returns the item at index i. It panics if i is out of range, like a slice.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Items returns a copy of the items.
func (l *List[T]) Items() []T {
	return append([]T(nil), l.items...)
}

// Set replaces all items.
func (l *List[T]) Set(items ...T) {
	l.items = append([]T(nil), items...)
	l.notify()
}

// Append adds items to the end of the list.
func (l *List[T]) Append(items ...T) {
	l.items = append(l.items, items...)
	l.notify()
}

// RemoveAt removes the item at index i. Out-of-range indexes are ignored.
func (l *List[T]) RemoveAt(i int) {
	if i < 0 || i >= len(l.items) {
		return
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.notify()
}

// Clear removes all items.
func (l *List[T]) Clear() {
	l.items = nil
	l.notify()
}

// Subscribe registers fn to be called after every mutation.
func (l *List[T]) Subscribe(fn func()) (unsubscribe func()) {
	if l.listeners == nil {
		l.listeners = make(map[int]func())
	}
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	return func() { delete(l.listeners, id) }
}

// Observe subscribes fn and immediately invokes it once.
func (l *List[T]) Observe(fn func()) (unsubscribe func()) {
	unsubscribe = l.Subscribe(fn)
	fn()
	return unsubscribe
}

func (l *List[T]) notify() {
	for _, id := range sortedKeys(l.listeners) {
		if fn, ok := l.listeners[id]; ok {
			fn()
		}
	}
}

// sortedKeys returns subscription ids in registration order.
func sortedKeys[F any](m map[int]F) []int {
	return slices.Sorted(maps.Keys(m))
}

// Package state provides observable references over arbitrary storage.
//
// A Reference pairs a read function with a write function. Writes go through
// the bound write, the value is read back, and the read value is published to
// subscribers. Derived references (Project, Map, OnSet, OnChange) are separate
// write entry points layered over their parent: writing through a derived
// reference reaches the parent, writing through the parent does not notify
// the derived reference's subscribers.
//
// Nothing in this package locks. References are meant to be used from one
// goroutine, typically the UI loop.
package state

import "github.com/odvcencio/furry-ref/keypath"

// Reference is an observable read/write handle over a value.
type Reference[T any] struct {
	read    func() T
	write   func(T)
	subject *Subject[T]
}

// NewReference creates a reference from a read/write pair.
// A nil write makes the reference effectively read-only.
func NewReference[T any](read func() T, write func(T)) *Reference[T] {
	if read == nil {
		read = zeroRead[T]
	}
	if write == nil {
		write = func(T) {}
	}
	return &Reference[T]{
		read:    read,
		write:   write,
		subject: NewSubject(read),
	}
}

// Variable creates a reference backed by its own Box.
func Variable[T any](initial T) *Reference[T] {
	box := NewBox(initial)
	return NewReference(box.Get, box.Set)
}

// Constant creates a reference that always reads value and ignores writes.
func Constant[T any](value T) *Reference[T] {
	return ReadonlyFunc(func() T { return value })
}

// ReadonlyFunc creates a reference over read whose writes are no-ops.
// Writes still publish the re-read value.
func ReadonlyFunc[T any](read func() T) *Reference[T] {
	return NewReference(read, nil)
}

// FromPointer creates a reference that reads and writes through p.
// Changes made directly through p are not published.
func FromPointer[T any](p *T) *Reference[T] {
	if p == nil {
		return NewReference[T](nil, nil)
	}
	return NewReference(
		func() T { return *p },
		func(value T) { *p = value },
	)
}

// Read returns the current value.
func (r *Reference[T]) Read() T {
	if r == nil {
		var zero T
		return zero
	}
	return r.read()
}

// Write commits value, then publishes the value read back from storage.
func (r *Reference[T]) Write(value T) {
	if r == nil {
		return
	}
	r.write(value)
	r.subject.Send(r.read())
}

// Update writes fn applied to the current value.
func (r *Reference[T]) Update(fn func(T) T) {
	if r == nil || fn == nil {
		return
	}
	r.Write(fn(r.Read()))
}

// Subscribe registers fn. It receives the current value immediately and the
// published value after every Write through this reference.
func (r *Reference[T]) Subscribe(fn func(T)) func() {
	if r == nil {
		return func() {}
	}
	return r.subject.Subscribe(fn)
}

// SubscribeWithScheduler registers fn using a scheduler.
// If scheduler is nil, callbacks run synchronously.
func (r *Reference[T]) SubscribeWithScheduler(scheduler Scheduler, fn func(T)) func() {
	if r == nil {
		return func() {}
	}
	return r.subject.SubscribeWithScheduler(scheduler, fn)
}

// Watch registers a listener called after every Write, without replay.
func (r *Reference[T]) Watch(fn func()) func() {
	if r == nil {
		return func() {}
	}
	return r.subject.Watch(fn)
}

// WatchWithScheduler registers a value-less listener using a scheduler.
func (r *Reference[T]) WatchWithScheduler(scheduler Scheduler, fn func()) func() {
	if r == nil {
		return func() {}
	}
	return r.subject.WatchWithScheduler(scheduler, fn)
}

// Subscribers returns the number of registered listeners.
func (r *Reference[T]) Subscribers() int {
	if r == nil {
		return 0
	}
	return r.subject.Len()
}

// Readonly returns a read-only view sharing this reference's read function.
func (r *Reference[T]) Readonly() *ReadonlyReference[T] {
	if r == nil {
		return NewReadonly[T](nil)
	}
	return NewReadonly(r.read)
}

// Derive returns a new reference writing through r.
// The result has its own subscribers.
func (r *Reference[T]) Derive() *Reference[T] {
	return NewReference(r.Read, r.Write)
}

// OnSet returns a reference that calls action with every written value.
func (r *Reference[T]) OnSet(action func(T)) *Reference[T] {
	return NewReference(r.Read, func(value T) {
		r.Write(value)
		if action != nil {
			action(value)
		}
	})
}

// OnChangeFunc returns a reference that calls action with the new value when
// a write changes it according to equal. A nil equal treats every write as a
// change.
func (r *Reference[T]) OnChangeFunc(equal EqualFunc[T], action func(T)) *Reference[T] {
	return NewReference(r.Read, func(value T) {
		old := r.Read()
		r.Write(value)
		current := r.Read()
		if equal != nil && equal(old, current) {
			return
		}
		if action != nil {
			action(current)
		}
	})
}

// OnChange returns a reference that calls action when a write changes the value.
func OnChange[T comparable](r *Reference[T], action func(T)) *Reference[T] {
	return r.OnChangeFunc(EqualComparable[T], action)
}

// Project returns a reference to the value at p inside r.
// Writing through it reads the parent's whole value, embeds the new value and
// writes the whole value back through the parent.
func Project[T, V any](r *Reference[T], p keypath.KeyPath[T, V]) *Reference[V] {
	return NewReference(
		func() V { return p.Extract(r.Read()) },
		func(value V) { r.Write(p.Embed(value, r.Read())) },
	)
}

// ProjectReadonly returns a read-only view of the value at p inside r.
func ProjectReadonly[T, V any](r Readable[T], p keypath.KeyPath[T, V]) *ReadonlyReference[V] {
	return NewReadonly(func() V { return p.Extract(r.Read()) })
}

// Map returns a reference converting values in both directions.
func Map[T, U any](r *Reference[T], read func(T) U, write func(U) T) *Reference[U] {
	return NewReference(
		func() U { return read(r.Read()) },
		func(value U) { r.Write(write(value)) },
	)
}

func zeroRead[T any]() T {
	var zero T
	return zero
}

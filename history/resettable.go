// Package history records mutations of an owned value as an undo/redo list.
//
// Every mutation applied through a Resettable becomes a node in a doubly
// linked list. Undo and Redo move along the list, Reset and Restore move to
// its ends. Applying a mutation after undoing discards the nodes ahead of the
// current position.
//
// Mutations are scoped with keypath paths, so a change to one nested field
// only snapshots that field. Resettable is not safe for concurrent use.
package history

import (
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/odvcencio/furry-ref/keypath"
	"github.com/odvcencio/furry-ref/state"
)

// Resettable owns a value and its mutation history.
type Resettable[T any] struct {
	object  T
	head    *node[T]
	pointer *node[T]
	subject *state.Subject[T]
	opts    options
}

// New creates a Resettable seeded with object.
func New[T any](object T, opts ...Option) *Resettable[T] {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	r := &Resettable[T]{
		object: object,
		opts:   o,
	}
	r.head = r.newNode(nil, nil, nil)
	r.pointer = r.head
	r.subject = state.NewSubject(r.Value)
	return r
}

// Value returns the current object.
func (r *Resettable[T]) Value() T {
	return r.object
}

// Read returns the current object, so a Resettable can be used as a
// state.Observable.
func (r *Resettable[T]) Read() T {
	return r.object
}

// Undo reverts the mutation that led to the current state.
// At the start of the history it does nothing.
func (r *Resettable[T]) Undo() *Resettable[T] {
	current := r.pointer
	if current.prev == nil {
		return r
	}
	if current.undo != nil {
		current.undo(&r.object)
	}
	r.pointer = current.prev
	r.publish()
	return r
}

// Redo re-applies the next recorded mutation.
// At the end of the history it does nothing.
func (r *Resettable[T]) Redo() *Resettable[T] {
	next := r.pointer.next
	if next == nil {
		return r
	}
	if next.redo != nil {
		next.redo(&r.object)
	}
	r.pointer = next
	r.publish()
	return r
}

// Reset undoes until the start of the history.
func (r *Resettable[T]) Reset() *Resettable[T] {
	for {
		before := r.pointer
		if r.Undo().pointer == before {
			return r
		}
	}
}

// Restore redoes until the end of the history.
func (r *Resettable[T]) Restore() *Resettable[T] {
	for {
		before := r.pointer
		if r.Redo().pointer == before {
			return r
		}
	}
}

// CanUndo reports whether Undo would change the state.
func (r *Resettable[T]) CanUndo() bool {
	return r.pointer.prev != nil
}

// CanRedo reports whether Redo would change the state.
func (r *Resettable[T]) CanRedo() bool {
	return r.pointer.next != nil
}

// Len returns the number of recorded mutations, including undone ones that
// can still be redone.
func (r *Resettable[T]) Len() int {
	return r.head.chainLength() - 1
}

// Position returns how many mutations separate the current state from the seed.
func (r *Resettable[T]) Position() int {
	pos := 0
	for cur := r.pointer; cur.prev != nil; cur = cur.prev {
		pos++
	}
	return pos
}

// Annotate labels the node for the current state.
func (r *Resettable[T]) Annotate(label string) *Resettable[T] {
	r.pointer.label = label
	return r
}

// Current describes the node for the current state.
func (r *Resettable[T]) Current() Entry {
	return r.pointer.entry(r.Position(), true)
}

// Entries lists the history from the seed to the last redoable node.
func (r *Resettable[T]) Entries() []Entry {
	entries := make([]Entry, 0, r.head.chainLength())
	index := 0
	for cur := r.head; cur != nil; cur = cur.next {
		entries = append(entries, cur.entry(index, cur == r.pointer))
		index++
	}
	return entries
}

// ModifyRoot applies action to the whole object, recording undo as its inverse.
func (r *Resettable[T]) ModifyRoot(action, undo func(*T)) *Resettable[T] {
	return r.apply(action, undo)
}

// SetRoot replaces the whole object. Undo restores a snapshot of the
// previous object.
func (r *Resettable[T]) SetRoot(value T) *Resettable[T] {
	return Set(r, keypath.Identity[T](), value)
}

// Subscribe registers fn. It receives the current object immediately and the
// object after every applied mutation, undo and redo.
func (r *Resettable[T]) Subscribe(fn func(T)) func() {
	return r.subject.Subscribe(fn)
}

// SubscribeWithScheduler registers fn using a scheduler.
func (r *Resettable[T]) SubscribeWithScheduler(scheduler state.Scheduler, fn func(T)) func() {
	return r.subject.SubscribeWithScheduler(scheduler, fn)
}

// Watch registers a value-less listener for state changes.
func (r *Resettable[T]) Watch(fn func()) func() {
	return r.subject.Watch(fn)
}

// Reference returns a reference over the whole object.
// Writes through it are recorded with SetRoot.
func (r *Resettable[T]) Reference() *state.Reference[T] {
	return state.NewReference(r.Value, func(value T) { r.SetRoot(value) })
}

// apply runs mutation and makes the result the unique successor of the
// current node.
func (r *Resettable[T]) apply(mutation, undo func(*T)) *Resettable[T] {
	if discarded := r.pointer.chainLength() - 1; discarded > 0 {
		r.opts.logger.Debug("discarding redo history",
			zap.Int("discarded", discarded),
			zap.Int("position", r.Position()))
	}
	n := r.newNode(r.pointer, undo, mutation)
	if mutation != nil {
		mutation(&r.object)
	}
	r.pointer.next = n
	r.pointer = n
	r.publish()
	return r
}

func (r *Resettable[T]) newNode(prev *node[T], undo, redo func(*T)) *node[T] {
	now := r.opts.clock()
	return &node[T]{
		prev: prev,
		undo: undo,
		redo: redo,
		id:   r.newID(now),
		time: now,
	}
}

// newID never fails. Clocks outside the ULID range are clamped and a
// failing entropy source is replaced by the package default.
func (r *Resettable[T]) newID(now time.Time) ulid.ULID {
	id, err := ulid.New(ulid.Timestamp(now), r.opts.entropy)
	if err == nil {
		return id
	}
	r.opts.logger.Warn("history entry id unavailable, using fallback",
		zap.Time("time", now), zap.Error(err))

	var ms uint64
	if now.UnixMilli() > 0 {
		ms = min(ulid.Timestamp(now), ulid.MaxTime())
	}
	id, err = ulid.New(ms, ulid.DefaultEntropy())
	if err != nil {
		return ulid.ULID{}
	}
	return id
}

func (r *Resettable[T]) publish() {
	r.subject.Send(r.object)
}

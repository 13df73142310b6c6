package state

import (
	"maps"
	"slices"
	"sync"
)

type subscriber[T any] struct {
	fn        func(T)
	scheduler Scheduler
}

// Subject fans published values out to subscribers.
// New subscribers receive the current value, as produced by the read function,
// before any later publish. Subject is not safe for concurrent use.
type Subject[T any] struct {
	read func() T
	subs map[int]subscriber[T]
	next int
}

// NewSubject creates a subject that replays read() to new subscribers.
// A nil read disables replay.
func NewSubject[T any](read func() T) *Subject[T] {
	return &Subject[T]{read: read}
}

// Subscribe registers fn and immediately delivers the current value.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers fn using a scheduler.
// The replayed value goes through the scheduler too.
// If scheduler is nil, callbacks run synchronously.
func (s *Subject[T]) SubscribeWithScheduler(scheduler Scheduler, fn func(T)) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	sub := subscriber[T]{fn: fn, scheduler: scheduler}
	unsub := s.add(sub)
	if s.read != nil {
		dispatch(sub, s.read())
	}
	return unsub
}

// Watch registers a value-less listener. It is not called on registration.
func (s *Subject[T]) Watch(fn func()) func() {
	return s.WatchWithScheduler(nil, fn)
}

// WatchWithScheduler registers a value-less listener using a scheduler.
func (s *Subject[T]) WatchWithScheduler(scheduler Scheduler, fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	return s.add(subscriber[T]{
		fn:        func(T) { fn() },
		scheduler: scheduler,
	})
}

// Send publishes value to every subscriber in registration order.
// Subscribers removed by an earlier callback are skipped. Subscribers added
// during Send first see the next value.
func (s *Subject[T]) Send(value T) {
	if s == nil || len(s.subs) == 0 {
		return
	}
	for _, id := range slices.Sorted(maps.Keys(s.subs)) {
		sub, ok := s.subs[id]
		if !ok {
			continue
		}
		dispatch(sub, value)
	}
}

// Len returns the number of registered subscribers.
func (s *Subject[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.subs)
}

func (s *Subject[T]) add(sub subscriber[T]) func() {
	if s.subs == nil {
		s.subs = make(map[int]subscriber[T])
	}
	id := s.next
	s.next++
	s.subs[id] = sub

	var once sync.Once
	return func() {
		once.Do(func() {
			delete(s.subs, id)
		})
	}
}

func dispatch[T any](sub subscriber[T], value T) {
	if sub.fn == nil {
		return
	}
	if sub.scheduler == nil {
		sub.fn(value)
		return
	}
	fn := sub.fn
	sub.scheduler.Schedule(func() { fn(value) })
}

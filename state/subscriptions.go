package state

// Subscriptions tracks and clears multiple unsubscribe callbacks.
type Subscriptions struct {
	unsubs []func()
	sched  Scheduler
}

// NewSubscriptions creates a Subscriptions with a default scheduler.
func NewSubscriptions(scheduler Scheduler) *Subscriptions {
	return &Subscriptions{sched: scheduler}
}

// SetScheduler updates the default scheduler.
func (s *Subscriptions) SetScheduler(scheduler Scheduler) {
	if s == nil {
		return
	}
	s.sched = scheduler
}

// Scheduler returns the default scheduler.
func (s *Subscriptions) Scheduler() Scheduler {
	if s == nil {
		return nil
	}
	return s.sched
}

// Add registers an unsubscribe callback.
func (s *Subscriptions) Add(unsub func()) {
	if s == nil || unsub == nil {
		return
	}
	s.unsubs = append(s.unsubs, unsub)
}

// Len returns the number of tracked callbacks.
func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	return len(s.unsubs)
}

// Watch registers a value-less listener using the default scheduler.
func (s *Subscriptions) Watch(sub Subscribable, fn func()) {
	if s == nil || sub == nil || fn == nil {
		return
	}
	scheduler := s.Scheduler()
	if scheduler != nil {
		if sched, ok := sub.(interface {
			WatchWithScheduler(Scheduler, func()) func()
		}); ok {
			s.Add(sched.WatchWithScheduler(scheduler, fn))
			return
		}
	}
	s.Add(sub.Watch(fn))
}

// Observe subscribes fn to src using the default scheduler of s and tracks
// the unsubscribe.
func Observe[T any](s *Subscriptions, src Observable[T], fn func(T)) {
	if s == nil || src == nil || fn == nil {
		return
	}
	scheduler := s.Scheduler()
	if scheduler != nil {
		if sched, ok := src.(interface {
			SubscribeWithScheduler(Scheduler, func(T)) func()
		}); ok {
			s.Add(sched.SubscribeWithScheduler(scheduler, fn))
			return
		}
	}
	s.Add(src.Subscribe(fn))
}

// Clear unsubscribes all tracked callbacks.
func (s *Subscriptions) Clear() {
	if s == nil {
		return
	}
	unsubs := s.unsubs
	s.unsubs = nil
	for _, unsub := range unsubs {
		if unsub != nil {
			unsub()
		}
	}
}

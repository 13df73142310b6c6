package state

// Computed derives its value from other references.
// It recomputes whenever a dependency publishes and exposes the result as an
// observable value.
type Computed[T any] struct {
	ref       *Reference[T]
	compute   func() T
	equal     EqualFunc[T]
	unsubs    []func()
	scheduler Scheduler
}

// NewComputed creates a derived value from dependencies.
func NewComputed[T any](compute func() T, deps ...Subscribable) *Computed[T] {
	return NewComputedWithScheduler(nil, compute, deps...)
}

// NewComputedWithScheduler creates a derived value and schedules recomputes.
func NewComputedWithScheduler[T any](scheduler Scheduler, compute func() T, deps ...Subscribable) *Computed[T] {
	if compute == nil {
		compute = zeroRead[T]
	}
	c := &Computed[T]{
		ref:       Variable(compute()),
		compute:   compute,
		scheduler: scheduler,
	}
	for _, dep := range deps {
		if dep == nil {
			continue
		}
		unsub := dep.Watch(c.enqueueRecompute)
		if unsub != nil {
			c.unsubs = append(c.unsubs, unsub)
		}
	}
	return c
}

// SetEqualFunc configures the equality check used to suppress redundant updates.
func (c *Computed[T]) SetEqualFunc(fn EqualFunc[T]) {
	if c == nil {
		return
	}
	c.equal = fn
}

// Read returns the current computed value.
func (c *Computed[T]) Read() T {
	if c == nil {
		var zero T
		return zero
	}
	return c.ref.Read()
}

// Subscribe registers a listener that receives the current and recomputed values.
func (c *Computed[T]) Subscribe(fn func(T)) func() {
	if c == nil {
		return func() {}
	}
	return c.ref.Subscribe(fn)
}

// SubscribeWithScheduler registers a listener using a scheduler.
// If scheduler is nil, callbacks run synchronously.
func (c *Computed[T]) SubscribeWithScheduler(scheduler Scheduler, fn func(T)) func() {
	if c == nil {
		return func() {}
	}
	return c.ref.SubscribeWithScheduler(scheduler, fn)
}

// Watch registers a value-less listener for recomputes.
func (c *Computed[T]) Watch(fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.ref.Watch(fn)
}

// Readonly returns a read-only view of the computed value.
func (c *Computed[T]) Readonly() *ReadonlyReference[T] {
	if c == nil {
		return NewReadonly[T](nil)
	}
	return c.ref.Readonly()
}

// Stop unsubscribes from dependency updates.
func (c *Computed[T]) Stop() {
	if c == nil {
		return
	}
	unsubs := c.unsubs
	c.unsubs = nil
	for _, unsub := range unsubs {
		if unsub != nil {
			unsub()
		}
	}
}

func (c *Computed[T]) recompute() {
	if c == nil {
		return
	}
	next := c.compute()
	if c.equal != nil && c.equal(c.ref.Read(), next) {
		return
	}
	c.ref.Write(next)
}

func (c *Computed[T]) enqueueRecompute() {
	if c == nil {
		return
	}
	if c.scheduler == nil {
		c.recompute()
		return
	}
	c.scheduler.Schedule(c.recompute)
}

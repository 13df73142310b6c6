package state

import "sync"

// Scheduler decides when subscriber callbacks run.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc lets a plain function act as a Scheduler.
type SchedulerFunc func(func())

// Schedule hands fn to f. Nil functions are ignored.
func (f SchedulerFunc) Schedule(fn func()) {
	if f != nil && fn != nil {
		f(fn)
	}
}

// DirectScheduler delivers synchronously. It behaves like having no scheduler.
var DirectScheduler Scheduler = SchedulerFunc(func(fn func()) { fn() })

// Queue defers deliveries until the owner flushes it, typically once per
// frame on the UI goroutine. Schedule is safe to call from other goroutines.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule appends fn to the pending deliveries.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, fn)
}

// Len reports how many deliveries are pending.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush runs the deliveries pending at the time of the call, in the order they
// were scheduled, and returns how many ran. Deliveries scheduled while
// flushing wait for the next Flush.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Drain flushes until the queue is empty or maxRounds flushes have run, so a
// Computed recomputed in one round can notify its own subscribers in the
// next. A maxRounds below 1 means a single round.
func (q *Queue) Drain(maxRounds int) int {
	total := 0
	for round := 0; round < max(1, maxRounds); round++ {
		n := q.Flush()
		total += n
		if n == 0 {
			break
		}
	}
	return total
}

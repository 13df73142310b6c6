package state

import (
	"slices"
	"testing"
)

func TestSubject_ReplayAndOrder(t *testing.T) {
	current := 1
	subject := NewSubject(func() int { return current })

	var order []string
	subject.Subscribe(func(v int) { order = append(order, "a") })
	subject.Subscribe(func(v int) { order = append(order, "b") })
	order = order[:0]

	subject.Send(2)
	if !slices.Equal(order, []string{"a", "b"}) {
		t.Fatalf("expected registration order, got %v", order)
	}
}

func TestSubject_UnsubscribeDuringSend(t *testing.T) {
	current := 0
	subject := NewSubject(func() int { return current })

	var unsubB func()
	var seenB []int
	subject.Subscribe(func(v int) {
		if v == 1 && unsubB != nil {
			unsubB()
		}
	})
	unsubB = subject.Subscribe(func(v int) { seenB = append(seenB, v) })

	current = 1
	subject.Send(1)
	if !slices.Equal(seenB, []int{0}) {
		t.Fatalf("expected only the replayed value, got %v", seenB)
	}
	if subject.Len() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", subject.Len())
	}
}

func TestSubject_NoReplayWithoutRead(t *testing.T) {
	subject := NewSubject[int](nil)
	calls := 0
	subject.Subscribe(func(int) { calls++ })
	if calls != 0 {
		t.Fatalf("expected no replay without read, got %d", calls)
	}
	subject.Send(1)
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestSubject_Scheduler(t *testing.T) {
	subject := NewSubject(func() int { return 0 })
	queue := NewQueue()

	var seen []int
	subject.SubscribeWithScheduler(queue, func(v int) { seen = append(seen, v) })
	subject.Send(1)

	if len(seen) != 0 {
		t.Fatalf("expected callbacks to be queued, got %v", seen)
	}
	queue.Flush()
	if !slices.Equal(seen, []int{0, 1}) {
		t.Fatalf("expected [0 1], got %v", seen)
	}
}

func TestBox(t *testing.T) {
	box := NewBox(1)
	box.Set(2)
	box.Update(func(v *int) { *v *= 10 })
	if box.Get() != 20 {
		t.Fatalf("expected 20, got %d", box.Get())
	}

	var nilBox *Box[int]
	nilBox.Set(1)
	nilBox.Update(func(*int) {})
	if nilBox.Get() != 0 {
		t.Fatalf("expected zero from nil box")
	}
}

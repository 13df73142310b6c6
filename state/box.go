package state

// Box is an owned mutable cell.
// It backs references created from a plain value. Box does no locking.
type Box[T any] struct {
	value T
}

// NewBox creates a box holding initial.
func NewBox[T any](initial T) *Box[T] {
	return &Box[T]{value: initial}
}

// Get returns the stored value.
func (b *Box[T]) Get() T {
	if b == nil {
		var zero T
		return zero
	}
	return b.value
}

// Set replaces the stored value.
func (b *Box[T]) Set(value T) {
	if b == nil {
		return
	}
	b.value = value
}

// Update mutates the stored value in place.
func (b *Box[T]) Update(fn func(*T)) {
	if b == nil || fn == nil {
		return
	}
	fn(&b.value)
}

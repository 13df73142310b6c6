package state

// ReadonlyReference exposes only a read function.
type ReadonlyReference[T any] struct {
	read func() T
}

// NewReadonly creates a read-only reference.
func NewReadonly[T any](read func() T) *ReadonlyReference[T] {
	if read == nil {
		read = zeroRead[T]
	}
	return &ReadonlyReference[T]{read: read}
}

// ConstantReadonly creates a read-only reference that always reads value.
func ConstantReadonly[T any](value T) *ReadonlyReference[T] {
	return NewReadonly(func() T { return value })
}

// Read returns the current value.
func (r *ReadonlyReference[T]) Read() T {
	if r == nil {
		var zero T
		return zero
	}
	return r.read()
}

// Writable upgrades the reference using write.
func (r *ReadonlyReference[T]) Writable(write func(T)) *Reference[T] {
	return NewReference(r.Read, write)
}

// AsWritable upgrades the reference with a no-op write.
func (r *ReadonlyReference[T]) AsWritable() *Reference[T] {
	return NewReference(r.Read, nil)
}

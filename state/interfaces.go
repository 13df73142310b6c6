package state

// Readable exposes a current value.
type Readable[T any] interface {
	Read() T
}

// Observable exposes a value and pushes it to subscribers.
// Subscribe delivers the current value immediately, then every published value.
type Observable[T any] interface {
	Readable[T]
	Subscribe(fn func(T)) func()
}

// Writable exposes read/write reactive state.
type Writable[T any] interface {
	Observable[T]
	Write(value T)
}

// Subscribable emits value-less change notifications.
// Unlike Subscribe, Watch does not replay the current value.
type Subscribable interface {
	Watch(fn func()) func()
}

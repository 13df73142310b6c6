// Package keypath provides composable structural accessors.
//
// A KeyPath pairs an extract function with an embed function. Embed never
// mutates the root it receives; it returns a new root with the value in place.
// Paths compose with Append, so references and history fields can be projected
// onto arbitrarily nested values without reflection.
package keypath

// KeyPath identifies a Value inside a Root.
type KeyPath[Root, Value any] struct {
	extract func(Root) Value
	embed   func(Value, Root) Root
}

// New creates a path from an extract/embed pair.
func New[Root, Value any](extract func(Root) Value, embed func(Value, Root) Root) KeyPath[Root, Value] {
	return KeyPath[Root, Value]{extract: extract, embed: embed}
}

// GetOnly creates a path whose embed returns the root unchanged.
func GetOnly[Root, Value any](extract func(Root) Value) KeyPath[Root, Value] {
	return KeyPath[Root, Value]{
		extract: extract,
		embed:   func(_ Value, root Root) Root { return root },
	}
}

// Identity returns the path from a value to itself.
func Identity[T any]() KeyPath[T, T] {
	return KeyPath[T, T]{
		extract: func(root T) T { return root },
		embed:   func(value T, _ T) T { return value },
	}
}

// Field creates a path from a field selector.
// The selector receives a pointer to a copy of the root, so embed leaves the
// caller's root untouched:
//
//	count := keypath.Field(func(c *Counter) *int { return &c.Count })
func Field[Root, Value any](field func(*Root) *Value) KeyPath[Root, Value] {
	return KeyPath[Root, Value]{
		extract: func(root Root) Value {
			return *field(&root)
		},
		embed: func(value Value, root Root) Root {
			*field(&root) = value
			return root
		},
	}
}

// Extract returns the value at the path.
func (p KeyPath[Root, Value]) Extract(root Root) Value {
	return p.extract(root)
}

// Embed returns a copy of root with value stored at the path.
func (p KeyPath[Root, Value]) Embed(value Value, root Root) Root {
	return p.embed(value, root)
}

// Modify extracts the value, applies fn to it and embeds the result.
func (p KeyPath[Root, Value]) Modify(root Root, fn func(*Value)) Root {
	value := p.extract(root)
	if fn != nil {
		fn(&value)
	}
	return p.embed(value, root)
}

// Valid reports whether the path has both accessors.
func (p KeyPath[Root, Value]) Valid() bool {
	return p.extract != nil && p.embed != nil
}

// Append chains two paths into one covering the deeper value.
func Append[A, B, C any](outer KeyPath[A, B], inner KeyPath[B, C]) KeyPath[A, C] {
	return KeyPath[A, C]{
		extract: func(root A) C {
			return inner.extract(outer.extract(root))
		},
		embed: func(value C, root A) A {
			return outer.embed(inner.embed(value, outer.extract(root)), root)
		},
	}
}

// Optional lifts a path through pointers.
// Extracting from a nil root yields nil. Embedding into a nil root, or
// embedding a nil value, returns the root unchanged. A non-nil embed allocates
// a new root instead of writing through the old pointer.
func Optional[Wrapped, Value any](p KeyPath[Wrapped, Value]) KeyPath[*Wrapped, *Value] {
	return KeyPath[*Wrapped, *Value]{
		extract: func(root *Wrapped) *Value {
			if root == nil {
				return nil
			}
			value := p.extract(*root)
			return &value
		},
		embed: func(value *Value, root *Wrapped) *Wrapped {
			if root == nil || value == nil {
				return root
			}
			next := p.embed(*value, *root)
			return &next
		},
	}
}

// AppendOptional chains a path ending in an optional with a path into the
// wrapped value. It is Append(outer, Optional(inner)).
func AppendOptional[A, W, V any](outer KeyPath[A, *W], inner KeyPath[W, V]) KeyPath[A, *V] {
	return Append(outer, Optional(inner))
}

// Deref returns the path from an optional to its wrapped value.
// Extracting from nil yields the zero value; embedding into nil allocates.
func Deref[T any]() KeyPath[*T, T] {
	return KeyPath[*T, T]{
		extract: func(root *T) T {
			if root == nil {
				var zero T
				return zero
			}
			return *root
		},
		embed: func(value T, _ *T) *T {
			return &value
		},
	}
}

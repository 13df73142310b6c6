package history

import (
	"github.com/odvcencio/furry-ref/keypath"
	"github.com/odvcencio/furry-ref/state"
)

// Field scopes history mutations to the value at a path.
type Field[T, V any] struct {
	r    *Resettable[T]
	path keypath.KeyPath[T, V]
}

// At returns the field at p.
func At[T, V any](r *Resettable[T], p keypath.KeyPath[T, V]) Field[T, V] {
	return Field[T, V]{r: r, path: p}
}

// Root returns the field covering the whole object.
func Root[T any](r *Resettable[T]) Field[T, T] {
	return At(r, keypath.Identity[T]())
}

// Then returns the field at p inside f.
func Then[T, V, W any](f Field[T, V], p keypath.KeyPath[V, W]) Field[T, W] {
	return At(f.r, keypath.Append(f.path, p))
}

// ThenOptional returns the field at p inside the optional value of f.
// Mutations while the optional is nil leave the object unchanged.
func ThenOptional[T, W, V any](f Field[T, *W], p keypath.KeyPath[W, V]) Field[T, *V] {
	return At(f.r, keypath.AppendOptional(f.path, p))
}

// Path returns the path from the object to the field.
func (f Field[T, V]) Path() keypath.KeyPath[T, V] {
	return f.path
}

// Read returns the current value of the field.
func (f Field[T, V]) Read() V {
	return f.path.Extract(f.r.object)
}

// Set stores value in the field.
func (f Field[T, V]) Set(value V) *Resettable[T] {
	return Set(f.r, f.path, value)
}

// Modify applies action to the field with snapshot undo.
func (f Field[T, V]) Modify(action func(*V)) *Resettable[T] {
	return Modify(f.r, f.path, action)
}

// ModifyWithUndo applies action to the field with an explicit inverse.
func (f Field[T, V]) ModifyWithUndo(action, undo func(*V)) *Resettable[T] {
	return ModifyWithUndo(f.r, f.path, action, undo)
}

// Reference returns a reference to the field. Writes are recorded with Set.
func (f Field[T, V]) Reference() *state.Reference[V] {
	return state.NewReference(f.Read, func(value V) { f.Set(value) })
}

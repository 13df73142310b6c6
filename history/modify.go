package history

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-ref/keypath"
)

// Modify applies action to the value at p and records one history node.
// Undo restores a snapshot of the value taken before the mutation.
func Modify[T, V any](r *Resettable[T], p keypath.KeyPath[T, V], action func(*V)) *Resettable[T] {
	snapshot := cloneValue(r, p.Extract(r.object))
	return ModifyWithUndo(r, p, action, func(value *V) {
		*value = cloneValue(r, snapshot)
	})
}

// ModifyWithUndo applies action to the value at p and records undo as its
// inverse, applied to the value at p.
func ModifyWithUndo[T, V any](r *Resettable[T], p keypath.KeyPath[T, V], action, undo func(*V)) *Resettable[T] {
	return r.apply(
		func(object *T) { *object = p.Modify(*object, action) },
		func(object *T) { *object = p.Modify(*object, undo) },
	)
}

// Set stores value at p and records one history node.
func Set[T, V any](r *Resettable[T], p keypath.KeyPath[T, V], value V) *Resettable[T] {
	return Modify(r, p, func(current *V) {
		*current = cloneValue(r, value)
	})
}

func cloneValue[T, V any](r *Resettable[T], value V) V {
	if r.opts.cloner == nil || !needsClone(reflect.TypeFor[V](), nil) {
		return value
	}
	var out V
	if err := r.opts.cloner(&out, &value); err != nil {
		r.opts.logger.Warn("snapshot clone failed, sharing value",
			zap.String("type", reflect.TypeFor[V]().String()),
			zap.Error(err))
		return value
	}
	return out
}

// needsClone reports whether values of t can share memory when copied by
// assignment.
func needsClone(t reflect.Type, seen map[reflect.Type]bool) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	case reflect.Array:
		return needsClone(t.Elem(), seen)
	case reflect.Struct:
		if seen[t] {
			return false
		}
		if seen == nil {
			seen = make(map[reflect.Type]bool)
		}
		seen[t] = true
		for i := range t.NumField() {
			if needsClone(t.Field(i).Type, seen) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

package history

import (
	"slices"

	"github.com/odvcencio/furry-ref/keypath"
)

// Elem returns the field for element i of a slice field.
// Mutating an out-of-range element panics.
func Elem[T, E any](f Field[T, []E], i int) Field[T, E] {
	return Then(f, keypath.Index[E](i))
}

// SafeElem returns the bounds-checked field for element i of a slice field.
// Mutations of an out-of-range element leave the object unchanged but are
// still recorded.
func SafeElem[T, E any](f Field[T, []E], i int) Field[T, *E] {
	return Then(f, keypath.SafeIndex[E](i))
}

// Swap exchanges elements i and j. Undo swaps them back.
// Out-of-range indices record a no-op.
func Swap[T, E any](f Field[T, []E], i, j int) *Resettable[T] {
	swap := func(items *[]E) {
		if !inRange(*items, i) || !inRange(*items, j) {
			return
		}
		next := slices.Clone(*items)
		next[i], next[j] = next[j], next[i]
		*items = next
	}
	return f.ModifyWithUndo(swap, swap)
}

// Append adds values to the end of a slice field. Undo truncates them.
func Append[T, E any](f Field[T, []E], values ...E) *Resettable[T] {
	n := len(values)
	added := slices.Clone(values)
	return f.ModifyWithUndo(
		func(items *[]E) {
			next := make([]E, 0, len(*items)+n)
			next = append(next, *items...)
			*items = append(next, added...)
		},
		func(items *[]E) {
			if len(*items) < n {
				return
			}
			*items = slices.Clone((*items)[:len(*items)-n])
		},
	)
}

// Insert places values at index i of a slice field.
// An out-of-range index records a no-op.
func Insert[T, E any](f Field[T, []E], i int, values ...E) *Resettable[T] {
	added := slices.Clone(values)
	return f.Modify(func(items *[]E) {
		if i < 0 || i > len(*items) {
			return
		}
		*items = slices.Insert(slices.Clone(*items), i, added...)
	})
}

// RemoveAt deletes element i of a slice field.
// An out-of-range index records a no-op.
func RemoveAt[T, E any](f Field[T, []E], i int) *Resettable[T] {
	return f.Modify(func(items *[]E) {
		if !inRange(*items, i) {
			return
		}
		*items = slices.Delete(slices.Clone(*items), i, i+1)
	})
}

func inRange[E any](items []E, i int) bool {
	return i >= 0 && i < len(items)
}

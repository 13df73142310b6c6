package keypath

import (
	"maps"
	"slices"
)

// Index returns the path to element i of a slice.
// Out-of-range access panics like a plain index expression.
func Index[E any](i int) KeyPath[[]E, E] {
	return KeyPath[[]E, E]{
		extract: func(root []E) E {
			return root[i]
		},
		embed: func(value E, root []E) []E {
			next := slices.Clone(root)
			next[i] = value
			return next
		},
	}
}

// GetOnlyIndex returns a read-only path to element i of a slice.
func GetOnlyIndex[E any](i int) KeyPath[[]E, E] {
	return GetOnly(func(root []E) E {
		return root[i]
	})
}

// SafeIndex returns a bounds-checked path to element i of a slice.
// Out-of-range extracts yield nil; out-of-range or nil embeds are no-ops.
func SafeIndex[E any](i int) KeyPath[[]E, *E] {
	return KeyPath[[]E, *E]{
		extract: func(root []E) *E {
			if i < 0 || i >= len(root) {
				return nil
			}
			value := root[i]
			return &value
		},
		embed: func(value *E, root []E) []E {
			if value == nil || i < 0 || i >= len(root) {
				return root
			}
			next := slices.Clone(root)
			next[i] = *value
			return next
		},
	}
}

// Key returns the path to entry k of a map.
// Absent keys extract as nil. Embedding nil removes the key.
func Key[K comparable, V any](k K) KeyPath[map[K]V, *V] {
	return KeyPath[map[K]V, *V]{
		extract: func(root map[K]V) *V {
			value, ok := root[k]
			if !ok {
				return nil
			}
			return &value
		},
		embed: func(value *V, root map[K]V) map[K]V {
			if value == nil {
				if _, ok := root[k]; !ok {
					return root
				}
				next := maps.Clone(root)
				delete(next, k)
				return next
			}
			next := maps.Clone(root)
			if next == nil {
				next = make(map[K]V, 1)
			}
			next[k] = *value
			return next
		},
	}
}

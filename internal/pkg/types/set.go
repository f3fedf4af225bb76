package types

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Set is a generic hash set for comparable types, backed by map[T]struct{}.
//
// It is mutable: Add modifies the set in place.
type Set[T comparable] map[T]struct{}

// NewSet creates a new Set and inserts the provided elements.
func NewSet[T comparable](data ...T) Set[T] {
	set := make(Set[T], len(data))
	for _, d := range data {
		set[d] = struct{}{}
	}
	return set
}

// SetOf builds a Set from the keys of m.
func SetOf[K comparable, V any](m map[K]V) Set[K] {
	set := NewSet[K]()
	for k := range m {
		set.Add(k)
	}
	return set
}

// Add inserts one or more elements into the set.
func (s Set[T]) Add(values ...T) {
	for _, val := range values {
		s[val] = struct{}{}
	}
}

// Has reports whether val is a member of the set.
func (s Set[T]) Has(val T) bool {
	_, ok := s[val]
	return ok
}

// Difference returns a new Set holding the elements of s that are not in other.
//
// Neither s nor other is modified.
func (s Set[T]) Difference(other Set[T]) Set[T] {
	diff := NewSet[T]()
	for val := range s {
		if !other.Has(val) {
			diff.Add(val)
		}
	}
	return diff
}

// ToIter returns an iterator over all elements in the set, in no particular order.
func (s Set[T]) ToIter() iter.Seq[T] {
	return maps.Keys(s)
}

// Sorted returns the elements of s in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	return slices.Sorted(s.ToIter())
}

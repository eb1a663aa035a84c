// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package orderedset

import "slices"

// Set is a duplicate free list that keeps insertion order.
// It encodes as a plain list.
type Set[T comparable] []T

// Contains reports whether v is in the set.
func (s Set[T]) Contains(v T) bool {
	return slices.Contains(s, v)
}

// Index returns the position of v or -1.
func (s Set[T]) Index(v T) int {
	return slices.Index(s, v)
}

// Len returns the number of members.
func (s Set[T]) Len() int {
	return len(s)
}

// Items returns a copy of the members in insertion order.
func (s Set[T]) Items() []T {
	return slices.Clone(s)
}

// Insert appends v if absent. It returns false if v was already present.
func (s *Set[T]) Insert(v T) bool {
	if s.Contains(v) {
		return false
	}
	*s = append(*s, v)
	return true
}

// Remove deletes v keeping the order of the others. It returns false if v
// was absent.
func (s *Set[T]) Remove(v T) bool {
	i := s.Index(v)
	if i < 0 {
		return false
	}
	*s = slices.Delete(*s, i, i+1)
	return true
}

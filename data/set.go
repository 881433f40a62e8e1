package data

import (
	"golang.org/x/exp/slices"
)

// Set is a deduplicated collection of values kept in ascending total order.
// The zero Set is empty and ready to use.
type Set struct {
	members []Value
}

// NewSet builds a set from members, dropping duplicates.
func NewSet(members ...Value) Set {
	if len(members) == 0 {
		return Set{}
	}
	sorted := make([]Value, 0, len(members))
	for _, m := range members {
		if m == nil {
			m = Nothing{}
		}
		sorted = append(sorted, m)
	}
	slices.SortStableFunc(sorted, Less)

	out := sorted[:1]
	for _, m := range sorted[1:] {
		if !Equal(out[len(out)-1], m) {
			out = append(out, m)
		}
	}
	return Set{members: out}
}

// SetFromSorted wraps members that are already strictly ascending. It is
// used by the store, which keeps members ordered, to avoid a re-sort.
func SetFromSorted(members []Value) Set {
	if len(members) == 0 {
		return Set{}
	}
	return Set{members: members}
}

// Len returns the cardinality of the set.
func (s Set) Len() int {
	return len(s.members)
}

// Members returns the members in ascending order.
func (s Set) Members() []Value {
	return slices.Clone(s.members)
}

// Contains reports whether v is a member.
func (s Set) Contains(v Value) bool {
	_, found := slices.BinarySearchFunc(s.members, v, Compare)
	return found
}

// Difference returns the members of s that are not members of other.
func (s Set) Difference(other Set) Set {
	out := make([]Value, 0, len(s.members))
	for _, m := range s.members {
		if !other.Contains(m) {
			out = append(out, m)
		}
	}
	return SetFromSorted(out)
}

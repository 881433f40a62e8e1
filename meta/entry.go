package meta

import (
	"github.com/Kirov7/kraglin/data"
	"github.com/google/btree"
	art "github.com/plar/go-adaptive-radix-tree"
)

type EntryType = int8

const (
	ScalarEntry EntryType = iota
	ListEntry
	HashEntry
	SetEntry
)

// Entry is a stored value. Unlike data.Value it can never be Nothing.
type Entry interface {
	Type() EntryType
	// Value converts the entry back into a caller-facing value. The result
	// shares no memory with the entry.
	Value() data.Value
}

// NewEntry converts v into its stored form. Arrays become lists, maps become
// hashes and sets become sets; everything else is kept as a scalar. It
// returns false when v is or contains Nothing.
func NewEntry(v data.Value) (Entry, bool) {
	if data.ContainsNothing(v) {
		return nil, false
	}
	switch x := v.(type) {
	case data.Array:
		l := NewList()
		for _, e := range x {
			l.PushBack(e)
		}
		return l, true
	case data.Map:
		h := NewHash()
		for k, e := range x {
			h.Put(k, e)
		}
		return h, true
	case data.Set:
		s := NewSet()
		for _, e := range x.Members() {
			s.Add(e)
		}
		return s, true
	default:
		return NewScalar(v), true
	}
}

// Scalar holds any non-collection value.
type Scalar struct {
	val data.Value
}

func NewScalar(v data.Value) *Scalar {
	return &Scalar{val: data.Clone(v)}
}

func (s *Scalar) Type() EntryType { return ScalarEntry }

func (s *Scalar) Value() data.Value { return data.Clone(s.val) }

// Raw returns the held value without copying it.
func (s *Scalar) Raw() data.Value { return s.val }

// List is an ordered sequence.
type List struct {
	items []data.Value
}

func NewList() *List {
	return &List{}
}

func (l *List) Type() EntryType { return ListEntry }

func (l *List) Value() data.Value {
	return cloneAll(l.items)
}

func (l *List) Len() int { return len(l.items) }

func (l *List) PushFront(v data.Value) int {
	l.items = append(l.items, nil)
	copy(l.items[1:], l.items)
	l.items[0] = data.Clone(v)
	return len(l.items)
}

func (l *List) PushBack(v data.Value) int {
	l.items = append(l.items, data.Clone(v))
	return len(l.items)
}

// PopFront removes the head. ok is false when the list is empty.
func (l *List) PopFront() (v data.Value, ok bool) {
	if len(l.items) == 0 {
		return nil, false
	}
	v = l.items[0]
	l.items[0] = nil
	l.items = l.items[1:]
	return v, true
}

// PopBack removes the tail. ok is false when the list is empty.
func (l *List) PopBack() (v data.Value, ok bool) {
	n := len(l.items)
	if n == 0 {
		return nil, false
	}
	v = l.items[n-1]
	l.items[n-1] = nil
	l.items = l.items[:n-1]
	return v, true
}

// Range returns a copy of the elements between start and end inclusive.
// Negative indices count from the tail; out-of-range bounds are clamped.
func (l *List) Range(start, end int64) data.Array {
	n := int64(len(l.items))
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	if start > end || start >= n {
		return data.Array{}
	}
	return cloneAll(l.items[start : end+1])
}

// Hash maps fields to values. Fields are kept in an adaptive radix tree so
// they come back in order.
type Hash struct {
	fields art.Tree
}

func NewHash() *Hash {
	return &Hash{fields: art.New()}
}

func (h *Hash) Type() EntryType { return HashEntry }

// Put sets field and reports whether it was newly created.
func (h *Hash) Put(field string, v data.Value) bool {
	_, updated := h.fields.Insert(artKey(field), data.Clone(v))
	return !updated
}

func (h *Hash) Get(field string) (data.Value, bool) {
	v, ok := h.fields.Search(artKey(field))
	if !ok {
		return data.Nothing{}, false
	}
	return data.Clone(v.(data.Value)), true
}

func (h *Hash) Len() int { return h.fields.Size() }

func (h *Hash) Value() data.Value {
	m := make(data.Map, h.fields.Size())
	h.fields.ForEach(func(node art.Node) bool {
		m[string(node.Key()[1:])] = data.Clone(node.Value().(data.Value))
		return true
	})
	return m
}

// Set is a deduplicated collection ordered by data.Compare.
type Set struct {
	members *btree.BTreeG[data.Value]
}

func NewSet() *Set {
	return &Set{members: btree.NewG(8, data.Less)}
}

func (s *Set) Type() EntryType { return SetEntry }

// Add inserts v and reports whether it was not already a member.
func (s *Set) Add(v data.Value) bool {
	if s.members.Has(v) {
		return false
	}
	s.members.ReplaceOrInsert(data.Clone(v))
	return true
}

// Remove deletes v and reports whether it was a member.
func (s *Set) Remove(v data.Value) bool {
	_, ok := s.members.Delete(v)
	return ok
}

func (s *Set) Contains(v data.Value) bool {
	return s.members.Has(v)
}

func (s *Set) Len() int { return s.members.Len() }

func (s *Set) Value() data.Value {
	return s.Snapshot()
}

// Snapshot copies the members into a data.Set.
func (s *Set) Snapshot() data.Set {
	out := make([]data.Value, 0, s.members.Len())
	s.members.Ascend(func(v data.Value) bool {
		out = append(out, data.Clone(v))
		return true
	})
	return data.SetFromSorted(out)
}

func cloneAll(items []data.Value) data.Array {
	out := make(data.Array, len(items))
	for i, e := range items {
		out[i] = data.Clone(e)
	}
	return out
}

package meta

import (
	"testing"

	"github.com/Kirov7/kraglin/data"
	"github.com/stretchr/testify/assert"
)

func TestNewEntry(t *testing.T) {
	tests := []struct {
		Name  string
		Value data.Value
		Type  EntryType
	}{
		{Name: "scalar", Value: data.SimpleString("a"), Type: ScalarEntry},
		{Name: "big number", Value: data.NewBigNumber(3), Type: ScalarEntry},
		{Name: "list", Value: data.Array{data.Integer(1), data.Integer(2)}, Type: ListEntry},
		{Name: "hash", Value: data.Map{"a": data.Integer(1), "": data.Boolean(true)}, Type: HashEntry},
		{Name: "set", Value: data.NewSet(data.Integer(2), data.Integer(1)), Type: SetEntry},
		{Name: "empty set", Value: data.Set{}, Type: SetEntry},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			entry, ok := NewEntry(tt.Value)
			assert.True(t, ok)
			assert.Equal(t, tt.Type, entry.Type())
			assert.True(t, data.Equal(tt.Value, entry.Value()), data.Format(entry.Value()))
		})
	}

	_, ok := NewEntry(data.Nothing{})
	assert.False(t, ok)
	_, ok = NewEntry(data.Map{"a": data.Array{data.Nothing{}}})
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	l := NewList()
	_, ok := l.PopFront()
	assert.False(t, ok)
	_, ok = l.PopBack()
	assert.False(t, ok)

	assert.Equal(t, 1, l.PushBack(data.Integer(2)))
	assert.Equal(t, 2, l.PushFront(data.Integer(1)))
	assert.Equal(t, 3, l.PushBack(data.Integer(3)))
	assert.Equal(t, data.Array{data.Integer(1), data.Integer(2), data.Integer(3)}, l.Value())
	assert.Equal(t, data.Array{data.Integer(2), data.Integer(3)}, l.Range(-2, 10))
	assert.Equal(t, data.Array{}, l.Range(2, 1))

	v, ok := l.PopFront()
	assert.True(t, ok)
	assert.Equal(t, data.Integer(1), v)
	v, ok = l.PopBack()
	assert.True(t, ok)
	assert.Equal(t, data.Integer(3), v)
	assert.Equal(t, 1, l.Len())
}

func TestHash(t *testing.T) {
	h := NewHash()
	assert.True(t, h.Put("b", data.Integer(1)))
	assert.False(t, h.Put("b", data.Integer(2)))
	assert.True(t, h.Put("", data.Integer(0)))
	assert.True(t, h.Put("a", data.Integer(3)))

	v, ok := h.Get("b")
	assert.True(t, ok)
	assert.Equal(t, data.Integer(2), v)
	v, ok = h.Get("zz")
	assert.False(t, ok)
	assert.Equal(t, data.Nothing{}, v)

	assert.Equal(t, 3, h.Len())
	assert.True(t, data.Equal(data.Map{"": data.Integer(0), "a": data.Integer(3), "b": data.Integer(2)}, h.Value()))
}

func TestSet(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Add(data.Integer(2)))
	assert.False(t, s.Add(data.Integer(2)))
	assert.True(t, s.Add(data.BulkString("x")))
	assert.True(t, s.Contains(data.BulkString("x")))
	assert.Equal(t, 2, s.Len())

	assert.True(t, data.Equal(data.NewSet(data.Integer(2), data.BulkString("x")), s.Snapshot()))

	assert.True(t, s.Remove(data.Integer(2)))
	assert.False(t, s.Remove(data.Integer(2)))
	assert.Equal(t, 1, s.Len())
}

func TestScalar_IsCopied(t *testing.T) {
	b := data.BulkString("abc")
	s := NewScalar(b)
	b[0] = 'z'
	assert.Equal(t, data.BulkString("abc"), s.Value())

	out := s.Value().(data.BulkString)
	out[1] = 'z'
	assert.Equal(t, data.BulkString("abc"), s.Raw())
}

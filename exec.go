package kraglin

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/meta"
	"github.com/Kirov7/kraglin/public"
	"golang.org/x/exp/slices"
)

// keyspace resolves keys to the MemTable holding them. Callers must hold the
// locks covering every key they pass.
type keyspace interface {
	table(key string) meta.MemTable
	tables() []meta.MemTable
}

// apply runs cmd against ks. Every fallible step happens before the first
// write, so a failed command leaves the store untouched. wrote reports
// whether the store changed.
func apply(ks keyspace, cmd command.Command) (res data.Value, wrote bool, err error) {
	switch c := cmd.(type) {
	case command.Set:
		return set(ks.table(c.Key), c.Key, c.Value)
	case command.Get:
		return get(ks.table(c.Key), c.Key), false, nil
	case command.MultipleGet:
		out := make(data.Array, len(c.Keys))
		for i, key := range c.Keys {
			out[i] = get(ks.table(key), key)
		}
		return out, false, nil
	case command.Increment:
		res, err = incr(ks.table(c.Key), c.Key)
		return res, err == nil, err
	case command.Keys:
		return keys(ks), false, nil
	case command.Exists:
		return boolInt(ks.table(c.Key).Get(c.Key) != nil), false, nil
	case command.Delete:
		existed := ks.table(c.Key).Del(c.Key)
		return boolInt(existed), existed, nil
	case command.Info:
		return info(ks), false, nil

	case command.HashSet:
		res, err = hset(ks.table(c.Key), c)
		return res, err == nil, err
	case command.HashGet:
		h, err := getHash(ks.table(c.Key), c.Key)
		if err != nil || h == nil {
			return data.Nothing{}, false, err
		}
		v, _ := h.Get(c.Field)
		return v, false, nil
	case command.HashGetAll:
		h, err := getHash(ks.table(c.Key), c.Key)
		if err != nil || h == nil {
			return data.Nothing{}, false, err
		}
		return h.Value(), false, nil
	case command.HashMultipleGet:
		h, err := getHash(ks.table(c.Key), c.Key)
		if err != nil {
			return nil, false, err
		}
		out := make(data.Array, len(c.Fields))
		for i, field := range c.Fields {
			out[i] = data.Nothing{}
			if h != nil {
				out[i], _ = h.Get(field)
			}
		}
		return out, false, nil

	case command.SetAdd:
		return sadd(ks.table(c.Key), c.Key, c.Value)
	case command.SetMembers:
		s, err := getSet(ks.table(c.Key), c.Key)
		if err != nil {
			return nil, false, err
		}
		if s == nil {
			return data.Set{}, false, nil
		}
		return s.Snapshot(), false, nil
	case command.SetCardinality:
		s, err := getSet(ks.table(c.Key), c.Key)
		if err != nil || s == nil {
			return data.Integer(0), false, err
		}
		return data.Integer(s.Len()), false, nil
	case command.SetIsMember:
		s, err := getSet(ks.table(c.Key), c.Key)
		if err != nil || s == nil {
			return data.Integer(0), false, err
		}
		return boolInt(s.Contains(c.Value)), false, nil
	case command.SetDifference:
		diff, err := sdiff(ks, c.SetA, c.SetB)
		if err != nil {
			return nil, false, err
		}
		return diff, false, nil
	case command.SetDifferenceStore:
		diff, err := sdiff(ks, c.SetA, c.SetB)
		if err != nil {
			return nil, false, err
		}
		entry, _ := meta.NewEntry(diff)
		ks.table(c.NewSet).Put(c.NewSet, entry)
		return data.Integer(diff.Len()), true, nil
	case command.SetRemove:
		s, err := getSet(ks.table(c.Key), c.Key)
		if err != nil || s == nil {
			return data.Integer(0), false, err
		}
		removed := s.Remove(c.Value)
		return boolInt(removed), removed, nil

	case command.LeftPush:
		res, err = push(ks.table(c.Key), c.Key, c.Value, (*meta.List).PushFront)
		return res, err == nil, err
	case command.RightPush:
		res, err = push(ks.table(c.Key), c.Key, c.Value, (*meta.List).PushBack)
		return res, err == nil, err
	case command.ListRange:
		l, err := getList(ks.table(c.Key), c.Key)
		if err != nil {
			return nil, false, err
		}
		if l == nil {
			return data.Array{}, false, nil
		}
		return l.Range(c.Start, c.End), false, nil
	case command.ListLength:
		l, err := getList(ks.table(c.Key), c.Key)
		if err != nil || l == nil {
			return data.Integer(0), false, err
		}
		return data.Integer(l.Len()), false, nil
	case command.LeftPop:
		return pop(ks.table(c.Key), c.Key, (*meta.List).PopFront)
	case command.RightPop:
		return pop(ks.table(c.Key), c.Key, (*meta.List).PopBack)
	}
	return nil, false, public.ErrUnknownCommand
}

func boolInt(b bool) data.Integer {
	if b {
		return 1
	}
	return 0
}

func set(mt meta.MemTable, key string, v data.Value) (data.Value, bool, error) {
	if data.IsNothing(v) {
		return data.Nothing{}, mt.Del(key), nil
	}
	entry, ok := meta.NewEntry(v)
	if !ok {
		return nil, false, public.ErrNothingValue
	}
	mt.Put(key, entry)
	return data.Nothing{}, true, nil
}

func get(mt meta.MemTable, key string) data.Value {
	entry := mt.Get(key)
	if entry == nil {
		return data.Nothing{}
	}
	return entry.Value()
}

func keys(ks keyspace) data.Array {
	tables := ks.tables()
	if len(tables) == 1 {
		return meta.Keys(tables[0])
	}
	var out data.Array
	for _, mt := range tables {
		out = append(out, meta.Keys(mt)...)
	}
	slices.SortFunc(out, func(a, b data.Value) bool {
		return a.(data.SimpleString) < b.(data.SimpleString)
	})
	return out
}

func info(ks keyspace) data.Value {
	var n int
	for _, mt := range ks.tables() {
		n += mt.Count()
	}
	suffix := "s"
	if n == 1 {
		suffix = ""
	}
	return data.SimpleString(fmt.Sprintf(public.InfoTemplate, n, suffix))
}

func incr(mt meta.MemTable, key string) (data.Value, error) {
	entry := mt.Get(key)
	if entry == nil {
		mt.Put(key, meta.NewScalar(data.Integer(1)))
		return data.Integer(1), nil
	}
	scalar, ok := entry.(*meta.Scalar)
	if !ok {
		return nil, public.ErrWrongType
	}

	var (
		next   int64
		stored data.Value
	)
	switch v := scalar.Raw().(type) {
	case data.Integer:
		if v == math.MaxInt64 {
			return nil, public.ErrOutOfRange
		}
		next = int64(v) + 1
		stored = data.Integer(next)
	case data.BigNumber:
		if v.Int == nil {
			v = data.NewBigNumber(0)
		}
		if !v.Int.IsInt64() || v.Int.Int64() == math.MaxInt64 {
			return nil, public.ErrOutOfRange
		}
		next = v.Int.Int64() + 1
		stored = data.NewBigNumber(next)
	case data.SimpleString:
		n, err := parseInt(string(v))
		if err != nil {
			return nil, err
		}
		next = n + 1
		stored = data.SimpleString(strconv.FormatInt(next, 10))
	case data.BulkString:
		n, err := parseInt(string(v))
		if err != nil {
			return nil, err
		}
		next = n + 1
		stored = data.BulkString(strconv.FormatInt(next, 10))
	default:
		return nil, public.ErrWrongType
	}

	mt.Put(key, meta.NewScalar(stored))
	return data.Integer(next), nil
}

// parseInt parses s as a base-10 int64 that can still be incremented.
func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, public.ErrCannotParseAsInteger
	}
	if n == math.MaxInt64 {
		return 0, public.ErrOutOfRange
	}
	return n, nil
}

func getHash(mt meta.MemTable, key string) (*meta.Hash, error) {
	entry := mt.Get(key)
	if entry == nil {
		return nil, nil
	}
	h, ok := entry.(*meta.Hash)
	if !ok {
		return nil, public.ErrWrongType
	}
	return h, nil
}

func getSet(mt meta.MemTable, key string) (*meta.Set, error) {
	entry := mt.Get(key)
	if entry == nil {
		return nil, nil
	}
	s, ok := entry.(*meta.Set)
	if !ok {
		return nil, public.ErrWrongType
	}
	return s, nil
}

func getList(mt meta.MemTable, key string) (*meta.List, error) {
	entry := mt.Get(key)
	if entry == nil {
		return nil, nil
	}
	l, ok := entry.(*meta.List)
	if !ok {
		return nil, public.ErrWrongType
	}
	return l, nil
}

func hset(mt meta.MemTable, c command.HashSet) (data.Value, error) {
	if data.ContainsNothing(c.Value) {
		return nil, public.ErrNothingValue
	}
	h, err := getHash(mt, c.Key)
	if err != nil {
		return nil, err
	}
	if h == nil {
		h = meta.NewHash()
		mt.Put(c.Key, h)
	}
	return boolInt(h.Put(c.Field, c.Value)), nil
}

func sadd(mt meta.MemTable, key string, v data.Value) (data.Value, bool, error) {
	if data.ContainsNothing(v) {
		return nil, false, public.ErrNothingValue
	}
	s, err := getSet(mt, key)
	if err != nil {
		return nil, false, err
	}
	if s == nil {
		s = meta.NewSet()
		mt.Put(key, s)
	}
	added := s.Add(v)
	return boolInt(added), added, nil
}

func sdiff(ks keyspace, keyA, keyB string) (data.Set, error) {
	a, err := getSet(ks.table(keyA), keyA)
	if err != nil {
		return data.Set{}, err
	}
	b, err := getSet(ks.table(keyB), keyB)
	if err != nil {
		return data.Set{}, err
	}
	switch {
	case a == nil:
		return data.Set{}, nil
	case b == nil:
		return a.Snapshot(), nil
	}
	return a.Snapshot().Difference(b.Snapshot()), nil
}

func push(mt meta.MemTable, key string, v data.Value, pushFn func(*meta.List, data.Value) int) (data.Value, error) {
	if data.ContainsNothing(v) {
		return nil, public.ErrNothingValue
	}
	l, err := getList(mt, key)
	if err != nil {
		return nil, err
	}
	if l == nil {
		l = meta.NewList()
		mt.Put(key, l)
	}
	return data.Integer(pushFn(l, v)), nil
}

// pop removes one element. pop never leaves an empty list behind, so EXISTS
// and LLEN agree that a drained key is gone.
func pop(mt meta.MemTable, key string, popFn func(*meta.List) (data.Value, bool)) (data.Value, bool, error) {
	l, err := getList(mt, key)
	if err != nil || l == nil {
		return data.Nothing{}, false, err
	}
	v, ok := popFn(l)
	if !ok {
		v = data.Nothing{}
	}
	if l.Len() == 0 {
		mt.Del(key)
	}
	return v, true, nil
}

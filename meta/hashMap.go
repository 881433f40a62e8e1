package meta

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type HashMapTable struct {
	m map[string]Entry
}

func NewHashMap() *HashMapTable {
	return &HashMapTable{m: make(map[string]Entry)}
}

func (h *HashMapTable) Put(key string, entry Entry) bool {
	_, existed := h.m[key]
	h.m[key] = entry
	return existed
}

func (h *HashMapTable) Get(key string) Entry {
	return h.m[key]
}

func (h *HashMapTable) Del(key string) bool {
	_, ok := h.m[key]
	if ok {
		delete(h.m, key)
	}
	return ok
}

func (h *HashMapTable) Count() int {
	return len(h.m)
}

func (h *HashMapTable) Iterator(reverse bool) Iterator {
	keys := maps.Keys(h.m)
	slices.Sort(keys)
	if reverse {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}

	values := make([]*Item, len(keys))
	for i, k := range keys {
		values[i] = &Item{Key: k, Entry: h.m[k]}
	}
	return newSliceIterator(values, reverse)
}

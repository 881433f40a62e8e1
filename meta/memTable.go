package meta

import "github.com/Kirov7/kraglin/data"

type MemTableType = int8

const (
	Btree MemTableType = iota
	ART
	HashMap
)

// MemTable is the keyspace of one store: key -> stored Entry. It is not safe
// for concurrent use; the owning backend serializes access.
type MemTable interface {
	// Put stores entry under key and reports whether the key already existed
	Put(key string, entry Entry) bool

	// Get returns the entry stored under key, or nil
	Get(key string) Entry

	// Del removes key and reports whether it existed
	Del(key string) bool

	// Iterator walks the keys in ascending (or descending) order
	Iterator(reverse bool) Iterator

	// Count get the num of all the keys
	Count() int
}

func NewMemTable(typ MemTableType) MemTable {
	switch typ {
	case Btree:
		return NewBTree()
	case ART:
		return NewAdaptiveRadixTree()
	case HashMap:
		return NewHashMap()
	default:
		return NewBTree()
	}
}

// ParseMemTableType maps a config name to a MemTableType.
func ParseMemTableType(name string) (MemTableType, bool) {
	switch name {
	case "btree", "":
		return Btree, true
	case "art":
		return ART, true
	case "hashmap":
		return HashMap, true
	}
	return Btree, false
}

// Iterator Generic index iterator interface
type Iterator interface {
	Rewind()
	Seek(key string)
	Next()
	Valid() bool
	Key() string
	Value() Entry
	Close()
}

type Item struct {
	Key   string
	Entry Entry
}

func itemLess(a, b *Item) bool {
	return a.Key < b.Key
}

// Keys collects every key of mt in ascending order as SimpleStrings.
func Keys(mt MemTable) data.Array {
	it := mt.Iterator(false)
	defer it.Close()

	keys := make(data.Array, 0, mt.Count())
	for it.Rewind(); it.Valid(); it.Next() {
		keys = append(keys, data.SimpleString(it.Key()))
	}
	return keys
}

// sliceIterator iterates over a snapshot of items already in iteration order.
type sliceIterator struct {
	currentIndex int
	reverse      bool
	values       []*Item
}

func newSliceIterator(values []*Item, reverse bool) *sliceIterator {
	return &sliceIterator{values: values, reverse: reverse}
}

func (si *sliceIterator) Rewind() {
	si.currentIndex = 0
}

func (si *sliceIterator) Seek(key string) {
	si.currentIndex = searchItems(si.values, key, si.reverse)
}

func (si *sliceIterator) Next() {
	si.currentIndex += 1
}

func (si *sliceIterator) Valid() bool {
	return si.currentIndex < len(si.values)
}

func (si *sliceIterator) Key() string {
	return si.values[si.currentIndex].Key
}

func (si *sliceIterator) Value() Entry {
	return si.values[si.currentIndex].Entry
}

func (si *sliceIterator) Close() {
	si.values = nil
}

package meta

import (
	art "github.com/plar/go-adaptive-radix-tree"
)

// keyPrefix is prepended to every key so the empty key is a valid ART key.
const keyPrefix = '$'

type AdaptiveRadixTree struct {
	tree art.Tree
}

func NewAdaptiveRadixTree() *AdaptiveRadixTree {
	return &AdaptiveRadixTree{
		tree: art.New(),
	}
}

func artKey(key string) art.Key {
	k := make([]byte, 0, len(key)+1)
	k = append(k, keyPrefix)
	return append(k, key...)
}

func (a *AdaptiveRadixTree) Put(key string, entry Entry) bool {
	_, updated := a.tree.Insert(artKey(key), entry)
	return updated
}

func (a *AdaptiveRadixTree) Get(key string) Entry {
	value, ok := a.tree.Search(artKey(key))
	if !ok {
		return nil
	}
	return value.(Entry)
}

func (a *AdaptiveRadixTree) Del(key string) bool {
	_, deleted := a.tree.Delete(artKey(key))
	return deleted
}

func (a *AdaptiveRadixTree) Count() int {
	return a.tree.Size()
}

func (a *AdaptiveRadixTree) Iterator(reverse bool) Iterator {
	size := a.tree.Size()
	values := make([]*Item, size)

	var idx int
	if reverse {
		idx = size - 1
	}
	a.tree.ForEach(func(node art.Node) bool {
		values[idx] = &Item{
			Key:   string(node.Key()[1:]),
			Entry: node.Value().(Entry),
		}
		if reverse {
			idx--
		} else {
			idx++
		}
		return true
	})
	return newSliceIterator(values, reverse)
}

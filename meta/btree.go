package meta

import "github.com/google/btree"

type BTree struct {
	tree *btree.BTreeG[*Item]
}

// NewBTree Init BTree struct
func NewBTree() *BTree {
	return &BTree{
		tree: btree.NewG(32, itemLess),
	}
}

func (bt *BTree) Put(key string, entry Entry) bool {
	_, replaced := bt.tree.ReplaceOrInsert(&Item{Key: key, Entry: entry})
	return replaced
}

func (bt *BTree) Get(key string) Entry {
	item, ok := bt.tree.Get(&Item{Key: key})
	if !ok {
		return nil
	}
	return item.Entry
}

func (bt *BTree) Del(key string) bool {
	_, ok := bt.tree.Delete(&Item{Key: key})
	return ok
}

func (bt *BTree) Count() int {
	return bt.tree.Len()
}

func (bt *BTree) Iterator(reverse bool) Iterator {
	values := make([]*Item, 0, bt.tree.Len())
	saveValues := func(item *Item) bool {
		values = append(values, item)
		return true
	}
	if reverse {
		bt.tree.Descend(saveValues)
	} else {
		bt.tree.Ascend(saveValues)
	}
	return newSliceIterator(values, reverse)
}

package meta

import "sort"

// searchItems returns the first position whose key is >= key (<= key when
// reverse) in a slice sorted in iteration order.
func searchItems(values []*Item, key string, reverse bool) int {
	if reverse {
		return sort.Search(len(values), func(i int) bool {
			return values[i].Key <= key
		})
	}
	return sort.Search(len(values), func(i int) bool {
		return values[i].Key >= key
	})
}

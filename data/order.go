package data

import (
	"bytes"
	"encoding/binary"
	"hash"
	"math"
	"strings"

	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Compare returns -1, 0 or +1 following the total order over all values.
// Values of different kinds are ordered by Kind; values of the same kind are
// ordered by content. A nil Value compares as Nothing.
func Compare(a, b Value) int {
	if a == nil {
		a = Nothing{}
	}
	if b == nil {
		b = Nothing{}
	}
	if ka, kb := a.Kind(), b.Kind(); ka != kb {
		if ka < kb {
			return -1
		}
		return 1
	}

	switch x := a.(type) {
	case SimpleString:
		return strings.Compare(string(x), string(b.(SimpleString)))
	case Integer:
		y := b.(Integer)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case BulkString:
		return bytes.Compare(x, b.(BulkString))
	case Array:
		return compareSlices(x, b.(Array))
	case Boolean:
		y := b.(Boolean)
		switch {
		case x == y:
			return 0
		case !bool(x):
			return -1
		}
		return 1
	case Double:
		return compareDouble(float64(x), float64(b.(Double)))
	case BigNumber:
		return x.big().Cmp(b.(BigNumber).big())
	case Map:
		return compareMaps(x, b.(Map))
	case Set:
		return compareSlices(x.members, b.(Set).members)
	}
	return 0
}

// Equal reports whether a and b are the same value under the total order.
func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// Less reports whether a sorts before b.
func Less(a, b Value) bool {
	return Compare(a, b) < 0
}

func compareSlices(a, b []Value) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func compareDouble(a, b float64) int {
	an, bn := math.IsNaN(a), math.IsNaN(b)
	switch {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareMaps(a, b Map) int {
	ak, bk := a.Keys(), b.Keys()
	for i := 0; i < len(ak) && i < len(bk); i++ {
		if c := strings.Compare(ak[i], bk[i]); c != 0 {
			return c
		}
		if c := Compare(a[ak[i]], b[bk[i]]); c != 0 {
			return c
		}
	}
	switch {
	case len(ak) < len(bk):
		return -1
	case len(ak) > len(bk):
		return 1
	}
	return 0
}

// Keys returns the map keys in ascending order.
func (m Map) Keys() []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

// Hash returns a 64-bit hash of v consistent with Equal: equal values always
// hash the same.
func Hash(v Value) uint64 {
	h := murmur3.New64()
	writeHash(h, v)
	return h.Sum64()
}

func writeHash(h hash.Hash64, v Value) {
	if v == nil {
		v = Nothing{}
	}
	var buf [binary.MaxVarintLen64]byte
	writeLen := func(n int) {
		_, _ = h.Write(buf[:binary.PutUvarint(buf[:], uint64(n))])
	}

	_, _ = h.Write([]byte{byte(v.Kind())})
	switch x := v.(type) {
	case SimpleString:
		writeLen(len(x))
		_, _ = h.Write([]byte(x))
	case Integer:
		_, _ = h.Write(buf[:binary.PutVarint(buf[:], int64(x))])
	case BulkString:
		writeLen(len(x))
		_, _ = h.Write(x)
	case Array:
		writeLen(len(x))
		for _, e := range x {
			writeHash(h, e)
		}
	case Boolean:
		if x {
			_, _ = h.Write([]byte{1})
		} else {
			_, _ = h.Write([]byte{0})
		}
	case Double:
		f := float64(x)
		switch {
		case math.IsNaN(f):
			f = math.NaN()
		case f == 0:
			f = 0
		}
		binary.BigEndian.PutUint64(buf[:8], math.Float64bits(f))
		_, _ = h.Write(buf[:8])
	case BigNumber:
		n := x.big()
		_, _ = h.Write([]byte{byte(n.Sign() + 1)})
		abs := n.Bytes()
		writeLen(len(abs))
		_, _ = h.Write(abs)
	case Map:
		keys := x.Keys()
		writeLen(len(keys))
		for _, k := range keys {
			writeLen(len(k))
			_, _ = h.Write([]byte(k))
			writeHash(h, x[k])
		}
	case Set:
		writeLen(len(x.members))
		for _, e := range x.members {
			writeHash(h, e)
		}
	}
}

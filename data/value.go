package data

import (
	"math/big"
	"strings"
)

// Kind identifies the variant held by a Value. The declaration order is also
// the order used when comparing values of different kinds.
type Kind uint8

const (
	KindSimpleString Kind = iota
	KindInteger
	KindBulkString
	KindArray
	KindBoolean
	KindDouble
	KindBigNumber
	KindMap
	KindSet
	KindNothing
)

var kindNames = [...]string{
	KindSimpleString: "simple-string",
	KindInteger:      "integer",
	KindBulkString:   "bulk-string",
	KindArray:        "array",
	KindBoolean:      "boolean",
	KindDouble:       "double",
	KindBigNumber:    "big-number",
	KindMap:          "map",
	KindSet:          "set",
	KindNothing:      "nothing",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is any datum the store can hold or return. The set of variants is
// closed: only the types declared in this package implement it.
type Value interface {
	Kind() Kind
	isValue()
}

// SimpleString is short text without CR or LF bytes.
type SimpleString string

// Integer is a 64-bit signed integer.
type Integer int64

// BulkString is an arbitrary byte sequence.
type BulkString []byte

// Array is an ordered, possibly heterogeneous sequence of values.
type Array []Value

// Boolean is true or false.
type Boolean bool

// Double is a 64-bit float. It is compared with a total order: all NaNs are
// equal to each other and greater than every other double, and -0 equals +0.
type Double float64

// BigNumber is an arbitrary-precision signed integer.
type BigNumber struct {
	Int *big.Int
}

// Map maps short text keys to values. Iteration through Keys is ordered.
type Map map[string]Value

// Nothing marks the absence of a value. It is only ever a result.
type Nothing struct{}

func (SimpleString) Kind() Kind { return KindSimpleString }
func (Integer) Kind() Kind      { return KindInteger }
func (BulkString) Kind() Kind   { return KindBulkString }
func (Array) Kind() Kind        { return KindArray }
func (Boolean) Kind() Kind      { return KindBoolean }
func (Double) Kind() Kind       { return KindDouble }
func (BigNumber) Kind() Kind    { return KindBigNumber }
func (Map) Kind() Kind          { return KindMap }
func (Set) Kind() Kind          { return KindSet }
func (Nothing) Kind() Kind      { return KindNothing }

func (SimpleString) isValue() {}
func (Integer) isValue()      {}
func (BulkString) isValue()   {}
func (Array) isValue()        {}
func (Boolean) isValue()      {}
func (Double) isValue()       {}
func (BigNumber) isValue()    {}
func (Map) isValue()          {}
func (Set) isValue()          {}
func (Nothing) isValue()      {}

// NewBigNumber returns a BigNumber holding x.
func NewBigNumber(x int64) BigNumber {
	return BigNumber{Int: big.NewInt(x)}
}

// ParseBigNumber parses a base-10 integer of any magnitude.
func ParseBigNumber(s string) (BigNumber, bool) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return BigNumber{}, false
	}
	return BigNumber{Int: n}, true
}

// big returns the number, treating a nil Int as zero.
func (b BigNumber) big() *big.Int {
	if b.Int == nil {
		return new(big.Int)
	}
	return b.Int
}

// IsSimpleString reports whether s may be carried by a SimpleString.
func IsSimpleString(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}

// IsNothing reports whether v is the absence marker. A nil Value counts as
// Nothing.
func IsNothing(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Nothing)
	return ok
}

// ContainsNothing reports whether v is Nothing or holds Nothing anywhere in
// its content. Such values can not be stored.
func ContainsNothing(v Value) bool {
	switch x := v.(type) {
	case nil, Nothing:
		return true
	case Array:
		for _, e := range x {
			if ContainsNothing(e) {
				return true
			}
		}
	case Map:
		for _, e := range x {
			if ContainsNothing(e) {
				return true
			}
		}
	case Set:
		for _, e := range x.members {
			if ContainsNothing(e) {
				return true
			}
		}
	}
	return false
}

// Clone returns a deep copy of v that shares no mutable memory with it.
func Clone(v Value) Value {
	switch x := v.(type) {
	case nil:
		return Nothing{}
	case BulkString:
		if x == nil {
			return BulkString(nil)
		}
		return append(BulkString{}, x...)
	case Array:
		if x == nil {
			return Array(nil)
		}
		out := make(Array, len(x))
		for i, e := range x {
			out[i] = Clone(e)
		}
		return out
	case BigNumber:
		return BigNumber{Int: new(big.Int).Set(x.big())}
	case Map:
		if x == nil {
			return Map(nil)
		}
		out := make(Map, len(x))
		for k, e := range x {
			out[k] = Clone(e)
		}
		return out
	case Set:
		if len(x.members) == 0 {
			return Set{}
		}
		out := make([]Value, len(x.members))
		for i, e := range x.members {
			out[i] = Clone(e)
		}
		return Set{members: out}
	default:
		return v
	}
}

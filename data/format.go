package data

import (
	"strconv"
	"strings"
)

// Format renders v in a compact, human readable form used by logs, test
// failure messages and the CLI.
func Format(v Value) string {
	var sb strings.Builder
	format(&sb, v)
	return sb.String()
}

func format(sb *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil, Nothing:
		sb.WriteString("(nil)")
	case SimpleString:
		sb.WriteString(string(x))
	case Integer:
		sb.WriteString("(integer) ")
		sb.WriteString(strconv.FormatInt(int64(x), 10))
	case BulkString:
		sb.WriteString(strconv.Quote(string(x)))
	case Boolean:
		sb.WriteString("(boolean) ")
		sb.WriteString(strconv.FormatBool(bool(x)))
	case Double:
		sb.WriteString("(double) ")
		sb.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 64))
	case BigNumber:
		sb.WriteString("(big number) ")
		sb.WriteString(x.big().String())
	case Array:
		writeList(sb, "[", "]", x)
	case Set:
		writeList(sb, "{", "}", x.members)
	case Map:
		sb.WriteString("{")
		for i, k := range x.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(k))
			sb.WriteString(": ")
			format(sb, x[k])
		}
		sb.WriteString("}")
	}
}

func writeList(sb *strings.Builder, open, end string, items []Value) {
	sb.WriteString(open)
	for i, e := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		format(sb, e)
	}
	sb.WriteString(end)
}

func (v SimpleString) String() string { return Format(v) }
func (v Integer) String() string      { return Format(v) }
func (v BulkString) String() string   { return Format(v) }
func (v Array) String() string        { return Format(v) }
func (v Boolean) String() string      { return Format(v) }
func (v Double) String() string       { return Format(v) }
func (v BigNumber) String() string    { return Format(v) }
func (v Map) String() string          { return Format(v) }
func (v Set) String() string          { return Format(v) }
func (v Nothing) String() string      { return Format(v) }

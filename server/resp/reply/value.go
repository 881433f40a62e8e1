package reply

import (
	"strconv"

	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/public"
	"github.com/pkg/errors"
)

// FromValue encodes v as a RESP2 reply. RESP2 has no booleans, doubles, big
// numbers, maps or sets: booleans become 1/0, doubles and big numbers become
// bulk strings, maps become a flat field/value array and sets an array of
// their members.
func FromValue(v data.Value) Reply {
	switch x := v.(type) {
	case nil, data.Nothing:
		return MakeNullBulkReply()
	case data.SimpleString:
		if !data.IsSimpleString(string(x)) {
			return MakeBulkReply([]byte(x))
		}
		return MakeStatusReply(string(x))
	case data.Integer:
		return MakeIntReply(int64(x))
	case data.BulkString:
		if x == nil {
			return MakeBulkReply([]byte{})
		}
		return MakeBulkReply(x)
	case data.Boolean:
		if x {
			return MakeIntReply(1)
		}
		return MakeIntReply(0)
	case data.Double:
		return MakeBulkReply([]byte(strconv.FormatFloat(float64(x), 'g', -1, 64)))
	case data.BigNumber:
		if x.Int == nil {
			return MakeBulkReply([]byte("0"))
		}
		return MakeBulkReply([]byte(x.Int.String()))
	case data.Array:
		return fromValues(x)
	case data.Set:
		return fromValues(x.Members())
	case data.Map:
		keys := x.Keys()
		replies := make([]Reply, 0, 2*len(keys))
		for _, k := range keys {
			replies = append(replies, MakeBulkReply([]byte(k)), FromValue(x[k]))
		}
		return MakeArrayReply(replies)
	}
	return &UnknownErrReply{}
}

func fromValues(values []data.Value) Reply {
	if len(values) == 0 {
		return &EmptyMultiBulkReply{}
	}
	replies := make([]Reply, len(values))
	for i, e := range values {
		replies[i] = FromValue(e)
	}
	return MakeArrayReply(replies)
}

// FromError maps an engine error to the reply a Redis client expects.
func FromError(err error) ErrorReply {
	var errReply ErrorReply
	switch {
	case errors.As(err, &errReply):
		return errReply
	case errors.Is(err, public.ErrWrongType):
		return &WrongTypeErrReply{}
	case errors.Is(err, public.ErrCannotParseAsInteger):
		return &NotIntegerErrReply{}
	case errors.Is(err, public.ErrOutOfRange):
		return &OverflowErrReply{}
	}
	return MakeErrReply("ERR " + err.Error())
}

// ToValue decodes a reply read by a client back into a value. Error replies
// decode to Nothing; use IsErrorReply first.
func ToValue(r Reply) data.Value {
	switch x := r.(type) {
	case *StatusReply:
		return data.SimpleString(x.Status)
	case *OkReply:
		return data.SimpleString("OK")
	case *PongReply:
		return data.SimpleString("PONG")
	case *IntReply:
		return data.Integer(x.Code)
	case *BulkReply:
		if x.Arg == nil {
			return data.Nothing{}
		}
		return data.BulkString(x.Arg)
	case *MultiBulkReply:
		out := make(data.Array, len(x.Args))
		for i, arg := range x.Args {
			if arg == nil {
				out[i] = data.Nothing{}
			} else {
				out[i] = data.BulkString(arg)
			}
		}
		return out
	case *ArrayReply:
		out := make(data.Array, len(x.Replies))
		for i, e := range x.Replies {
			out[i] = ToValue(e)
		}
		return out
	case *EmptyMultiBulkReply:
		return data.Array{}
	}
	return data.Nothing{}
}

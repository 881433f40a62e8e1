// Package reply holds the RESP2 replies the server sends and the client
// reads back.
package reply

import (
	"bytes"
	"strconv"
)

var (
	CRLF = "\r\n"
)

// Reply is a RESP message
type Reply interface {
	ToBytes() []byte
}

// ErrorReply is an error that is also a RESP message
type ErrorReply interface {
	Error() string
	ToBytes() []byte
}

/* ---- Bulk Reply ---- */

// BulkReply stores a binary-safe string
type BulkReply struct {
	Arg []byte
}

func MakeBulkReply(arg []byte) *BulkReply {
	return &BulkReply{Arg: arg}
}

func (r *BulkReply) ToBytes() []byte {
	if r.Arg == nil {
		return nullBulkBytes
	}
	return []byte("$" + strconv.Itoa(len(r.Arg)) + CRLF + string(r.Arg) + CRLF)
}

/* ---- Multi Bulk Reply ---- */

// MultiBulkReply stores a list of bulk strings, e.g. a command line
type MultiBulkReply struct {
	Args [][]byte
}

func MakeMultiBulkReply(args [][]byte) *MultiBulkReply {
	return &MultiBulkReply{Args: args}
}

func (r *MultiBulkReply) ToBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("*" + strconv.Itoa(len(r.Args)) + CRLF)
	for _, arg := range r.Args {
		if arg == nil {
			buf.Write(nullBulkBytes)
		} else {
			buf.WriteString("$" + strconv.Itoa(len(arg)) + CRLF + string(arg) + CRLF)
		}
	}
	return buf.Bytes()
}

/* ---- Array Reply ---- */

// ArrayReply stores a list of replies of any type, nested arrays included
type ArrayReply struct {
	Replies []Reply
}

func MakeArrayReply(replies []Reply) *ArrayReply {
	return &ArrayReply{Replies: replies}
}

func (r *ArrayReply) ToBytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("*" + strconv.Itoa(len(r.Replies)) + CRLF)
	for _, rep := range r.Replies {
		buf.Write(rep.ToBytes())
	}
	return buf.Bytes()
}

/* ---- Status Reply ---- */

// StatusReply stores a simple status string
type StatusReply struct {
	Status string
}

func MakeStatusReply(status string) *StatusReply {
	return &StatusReply{Status: status}
}

func (r *StatusReply) ToBytes() []byte {
	return []byte("+" + r.Status + CRLF)
}

/* ---- Int Reply ---- */

// IntReply stores an int64 number
type IntReply struct {
	Code int64
}

func MakeIntReply(code int64) *IntReply {
	return &IntReply{Code: code}
}

func (r *IntReply) ToBytes() []byte {
	return []byte(":" + strconv.FormatInt(r.Code, 10) + CRLF)
}

/* ---- Error Reply ---- */

// StandardErrReply represents server error
type StandardErrReply struct {
	Status string
}

func MakeErrReply(status string) *StandardErrReply {
	return &StandardErrReply{Status: status}
}

func (r *StandardErrReply) ToBytes() []byte {
	return []byte("-" + oneLine(r.Status) + CRLF)
}

func (r *StandardErrReply) Error() string {
	return r.Status
}

// IsErrorReply returns true if the given reply is error
func IsErrorReply(reply Reply) bool {
	return reply.ToBytes()[0] == '-'
}

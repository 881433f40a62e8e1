package reply

import "strings"

// UnknownErrReply represents UnknownErr
type UnknownErrReply struct{}

var unknownErrBytes = []byte("-ERR unknown\r\n")

func (r *UnknownErrReply) ToBytes() []byte {
	return unknownErrBytes
}

func (r *UnknownErrReply) Error() string {
	return "ERR unknown"
}

// ArgNumErrReply represents wrong number of arguments for command
type ArgNumErrReply struct {
	Cmd string
}

func MakeArgNumErrReply(cmd string) *ArgNumErrReply {
	return &ArgNumErrReply{Cmd: cmd}
}

func (r *ArgNumErrReply) ToBytes() []byte {
	return []byte("-" + r.Error() + CRLF)
}

func (r *ArgNumErrReply) Error() string {
	return "ERR wrong number of arguments for '" + oneLine(r.Cmd) + "' command"
}

// UnknownCommandErrReply represents a command the server does not know
type UnknownCommandErrReply struct {
	Cmd string
}

func (r *UnknownCommandErrReply) ToBytes() []byte {
	return []byte("-" + r.Error() + CRLF)
}

func (r *UnknownCommandErrReply) Error() string {
	return "ERR unknown command '" + oneLine(r.Cmd) + "'"
}

// SyntaxErrReply represents meeting unexpected arguments
type SyntaxErrReply struct{}

var syntaxErrBytes = []byte("-ERR syntax error\r\n")
var theSyntaxErrReply = &SyntaxErrReply{}

func MakeSyntaxErrReply() *SyntaxErrReply {
	return theSyntaxErrReply
}

func (r *SyntaxErrReply) ToBytes() []byte {
	return syntaxErrBytes
}

func (r *SyntaxErrReply) Error() string {
	return "ERR syntax error"
}

// WrongTypeErrReply represents operation against a key holding the wrong kind of value
type WrongTypeErrReply struct{}

var wrongTypeErrBytes = []byte("-WRONGTYPE Operation against a key holding the wrong kind of value\r\n")

func (r *WrongTypeErrReply) ToBytes() []byte {
	return wrongTypeErrBytes
}

func (r *WrongTypeErrReply) Error() string {
	return "WRONGTYPE Operation against a key holding the wrong kind of value"
}

// NotIntegerErrReply represents a value that is not an integer or out of range
type NotIntegerErrReply struct{}

var notIntegerErrBytes = []byte("-ERR value is not an integer or out of range\r\n")

func (r *NotIntegerErrReply) ToBytes() []byte {
	return notIntegerErrBytes
}

func (r *NotIntegerErrReply) Error() string {
	return "ERR value is not an integer or out of range"
}

// OverflowErrReply represents an increment that would overflow
type OverflowErrReply struct{}

var overflowErrBytes = []byte("-ERR increment or decrement would overflow\r\n")

func (r *OverflowErrReply) ToBytes() []byte {
	return overflowErrBytes
}

func (r *OverflowErrReply) Error() string {
	return "ERR increment or decrement would overflow"
}

// ProtocolErrReply represents meeting unexpected byte during parse requesting
type ProtocolErrReply struct {
	Msg string
}

func (r *ProtocolErrReply) ToBytes() []byte {
	return []byte("-" + r.Error() + CRLF)
}

func (r *ProtocolErrReply) Error() string {
	return "ERR Protocol error: '" + oneLine(r.Msg) + "'"
}

// oneLine replaces CR and LF so client supplied text cannot end an error
// line early.
func oneLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, s)
}

package parser

import (
	"bytes"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/server/resp/reply"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestParseStream(t *testing.T) {
	replies := []reply.Reply{
		reply.MakeIntReply(1),
		reply.MakeIntReply(-1),
		reply.MakeStatusReply("OK"),
		reply.MakeBulkReply([]byte("a\r\nb")),
		reply.MakeBulkReply([]byte{}),
		reply.MakeMultiBulkReply([][]byte{[]byte("SET"), []byte("key"), []byte("")}),
		reply.MakeMultiBulkReply([][]byte{[]byte("a"), nil}),
		reply.MakeErrReply("ERR unknown"),
		reply.MakeArrayReply([]reply.Reply{
			reply.MakeIntReply(1),
			reply.MakeArrayReply([]reply.Reply{reply.MakeStatusReply("x")}),
		}),
	}
	var buf bytes.Buffer
	for _, r := range replies {
		buf.Write(r.ToBytes())
	}

	ch := ParseStream(bytes.NewReader(buf.Bytes()))
	i := 0
	for payload := range ch {
		if payload.Err != nil {
			assert.Equal(t, io.EOF, payload.Err)
			break
		}
		assert.Less(t, i, len(replies))
		assert.Equal(t, replies[i].ToBytes(), payload.Data.ToBytes())
		i++
	}
	assert.Equal(t, len(replies), i)
}

func TestParseStream_Inline(t *testing.T) {
	ch := ParseStream(bytes.NewReader([]byte("\r\nPING\r\nget  key\r\n")))

	payload := <-ch
	assert.Nil(t, payload.Err)
	assert.Equal(t, reply.MakeMultiBulkReply([][]byte{[]byte("PING")}), payload.Data)

	payload = <-ch
	assert.Nil(t, payload.Err)
	assert.Equal(t, reply.MakeMultiBulkReply([][]byte{[]byte("get"), []byte("key")}), payload.Data)

	payload = <-ch
	assert.Equal(t, io.EOF, payload.Err)
	_, ok := <-ch
	assert.False(t, ok)
}

func TestParseOne_Errors(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
		Want  error
	}{
		{Name: "bad integer", Input: ":abc\r\n", Want: ErrProtocol},
		{Name: "bad bulk length", Input: "$x\r\n", Want: ErrProtocol},
		{Name: "negative bulk length", Input: "$-2\r\n", Want: ErrProtocol},
		{Name: "bad terminator", Input: "$1\r\nab\r\n", Want: ErrProtocol},
		{Name: "missing cr", Input: "+OK\n", Want: ErrProtocol},
		{Name: "inline inside array", Input: "*1\r\nPING\r\n", Want: ErrProtocol},
		{Name: "huge bulk", Input: "$999999999999\r\n", Want: ErrLimitExceeded},
		{Name: "huge array", Input: "*99999999\r\n", Want: ErrLimitExceeded},
		{Name: "truncated", Input: "$5\r\nab", Want: io.ErrUnexpectedEOF},
		{Name: "truncated large bulk", Input: "$100000\r\nab", Want: io.ErrUnexpectedEOF},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			_, err := ParseOne([]byte(tt.Input))
			assert.True(t, errors.Is(err, tt.Want), "got %v", err)
		})
	}
}

func TestParseOne_Nested(t *testing.T) {
	v := data.Array{
		data.Integer(1),
		data.Map{"f": data.BulkString("v")},
		data.NewSet(data.SimpleString("m")),
		data.Nothing{},
	}
	rep, err := ParseOne(reply.FromValue(v).ToBytes())
	assert.Nil(t, err)

	got := reply.ToValue(rep)
	want := data.Array{
		data.Integer(1),
		data.Array{data.BulkString("f"), data.BulkString("v")},
		data.Array{data.SimpleString("m")},
		data.Nothing{},
	}
	assert.True(t, data.Equal(want, got), data.Format(got))
}

func TestParseOne_NullArray(t *testing.T) {
	rep, err := ParseOne([]byte("*-1\r\n"))
	assert.Nil(t, err)
	assert.Equal(t, reply.MakeNullBulkReply(), rep)

	rep, err = ParseOne([]byte("*0\r\n"))
	assert.Nil(t, err)
	assert.Equal(t, &reply.EmptyMultiBulkReply{}, rep)
}

func TestParseOne_LargeBulk(t *testing.T) {
	body := strings.Repeat("a", 100000)
	rep, err := ParseOne([]byte("$100000\r\n" + body + "\r\n"))
	assert.Nil(t, err)
	assert.Equal(t, reply.MakeBulkReply([]byte(body)), rep)
}

func TestParseOne_HeadersDoNotPreallocate(t *testing.T) {
	input := []byte(strings.Repeat("*1048576\r\n", MaxDepth) + "$999999\r\n")

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, err := ParseOne(input)
	runtime.ReadMemStats(&after)

	assert.NotNil(t, err)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(8<<20))
}

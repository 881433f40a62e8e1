// Package parser reads RESP2 messages from a stream.
package parser

import (
	"bufio"
	"bytes"
	"io"
	"runtime/debug"
	"strconv"

	"github.com/Kirov7/kraglin/public/logger"
	"github.com/Kirov7/kraglin/server/resp/reply"
	"github.com/pkg/errors"
)

// Protocol limits
const (
	MaxArrayLen  = 1024 * 1024
	MaxBulkLen   = 512 * 1024 * 1024
	MaxInlineLen = 64 * 1024
	MaxDepth     = 32

	// lengths above these grow their buffers as input arrives instead of
	// trusting the header
	preallocArrayLen = 1024
	preallocBulkLen  = 64 * 1024
)

var (
	ErrProtocol      = errors.New("protocol error")
	ErrLimitExceeded = errors.New("limit exceeded")
)

// Payload stores reply or error
type Payload struct {
	Data reply.Reply
	Err  error
}

// ParseStream reads data from reader and sends payloads through channel. The
// channel is closed after the first error: once a message is malformed the
// rest of the stream can not be trusted.
func ParseStream(reader io.Reader) <-chan *Payload {
	ch := make(chan *Payload)
	go parse0(reader, ch)
	return ch
}

// ParseOne reads exactly one reply from data.
func ParseOne(data []byte) (reply.Reply, error) {
	r := bufio.NewReader(bytes.NewReader(data))
	for {
		rep, err := readReply(r, 0)
		if err != nil {
			return nil, err
		}
		if rep != nil {
			return rep, nil
		}
	}
}

func parse0(rd io.Reader, ch chan<- *Payload) {
	defer func() {
		if err := recover(); err != nil {
			logger.Default().Error("parser panic", "err", err, "stack", string(debug.Stack()))
		}
		close(ch)
	}()

	r := bufio.NewReader(rd)
	for {
		rep, err := readReply(r, 0)
		if err != nil {
			ch <- &Payload{Err: err}
			return
		}
		// blank inline line
		if rep == nil {
			continue
		}
		ch <- &Payload{Data: rep}
	}
}

// readReply reads one message. Inline commands ("PING\r\n") are accepted at
// the top level only; a blank inline line yields a nil reply.
func readReply(r *bufio.Reader, depth int) (reply.Reply, error) {
	if depth > MaxDepth {
		return nil, errors.Wrapf(ErrLimitExceeded, "nesting deeper than %d", MaxDepth)
	}
	b, err := r.Peek(1)
	if err != nil {
		return nil, err
	}

	switch b[0] {
	case '+', '-', ':':
		line, err := readLine(r, MaxInlineLen)
		if err != nil {
			return nil, err
		}
		return parseSingleLineReply(line)
	case '$':
		return readBulk(r)
	case '*':
		return readArray(r, depth)
	}

	if depth > 0 {
		return nil, errors.Wrapf(ErrProtocol, "unexpected byte %q", b[0])
	}
	line, err := readLine(r, MaxInlineLen)
	if err != nil {
		return nil, err
	}
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	return reply.MakeMultiBulkReply(fields), nil
}

func parseSingleLineReply(line []byte) (reply.Reply, error) {
	body := string(line[1:])
	switch line[0] {
	case '+':
		return reply.MakeStatusReply(body), nil
	case '-':
		return reply.MakeErrReply(body), nil
	default:
		n, err := strconv.ParseInt(body, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrProtocol, "invalid integer %q", body)
		}
		return reply.MakeIntReply(n), nil
	}
}

func readLength(r *bufio.Reader) (int64, error) {
	line, err := readLine(r, 64)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(string(line[1:]), 10, 64)
	if err != nil || n < -1 {
		return 0, errors.Wrapf(ErrProtocol, "invalid length %q", line)
	}
	return n, nil
}

func readBulk(r *bufio.Reader) (reply.Reply, error) {
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	if n == -1 {
		return reply.MakeNullBulkReply(), nil
	}
	if n > MaxBulkLen {
		return nil, errors.Wrapf(ErrLimitExceeded, "bulk length %d exceeds %d", n, MaxBulkLen)
	}

	var buf []byte
	if n <= preallocBulkLen {
		buf = make([]byte, n+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
	} else {
		var b bytes.Buffer
		if _, err := io.CopyN(&b, r, n+2); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		buf = b.Bytes()
	}
	if !bytes.HasSuffix(buf, []byte("\r\n")) {
		return nil, errors.Wrap(ErrProtocol, "invalid bulk terminator")
	}
	return reply.MakeBulkReply(buf[:n]), nil
}

// readArray returns a MultiBulkReply when every element is a bulk string, so
// command lines keep their flat form, and an ArrayReply otherwise.
func readArray(r *bufio.Reader, depth int) (reply.Reply, error) {
	n, err := readLength(r)
	if err != nil {
		return nil, err
	}
	switch {
	case n == -1:
		return reply.MakeNullBulkReply(), nil
	case n == 0:
		return &reply.EmptyMultiBulkReply{}, nil
	case n > MaxArrayLen:
		return nil, errors.Wrapf(ErrLimitExceeded, "array length %d exceeds %d", n, MaxArrayLen)
	}

	replies := make([]reply.Reply, 0, min(n, preallocArrayLen))
	flat := true
	for i := int64(0); i < n; i++ {
		rep, err := readReply(r, depth+1)
		if err != nil {
			return nil, err
		}
		switch rep.(type) {
		case *reply.BulkReply, *reply.NullBulkReply:
		default:
			flat = false
		}
		replies = append(replies, rep)
	}
	if !flat {
		return reply.MakeArrayReply(replies), nil
	}

	args := make([][]byte, len(replies))
	for i, rep := range replies {
		if bulk, ok := rep.(*reply.BulkReply); ok {
			args[i] = bulk.Arg
		}
	}
	return reply.MakeMultiBulkReply(args), nil
}

func readLine(r *bufio.Reader, maxLen int) ([]byte, error) {
	var buf []byte
	for {
		frag, err := r.ReadSlice('\n')
		if err == nil {
			buf = append(buf, frag...)
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			buf = append(buf, frag...)
			if len(buf) > maxLen {
				return nil, errors.Wrapf(ErrLimitExceeded, "line longer than %d", maxLen)
			}
			continue
		}
		return nil, err
	}

	if len(buf) > maxLen {
		return nil, errors.Wrapf(ErrLimitExceeded, "line longer than %d", maxLen)
	}
	if len(buf) < 2 || buf[len(buf)-2] != '\r' {
		return nil, errors.Wrapf(ErrProtocol, "missing CRLF in %q", buf)
	}
	return buf[:len(buf)-2], nil
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Kirov7/kraglin/server/resp/reply"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExecutor struct {
	replies map[string]reply.Reply
	seen    []string
}

func (f *fakeExecutor) Exec(ctx context.Context, args [][]byte) (reply.Reply, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = string(a)
	}
	line := strings.Join(parts, " ")
	f.seen = append(f.seen, line)
	r, ok := f.replies[line]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return r, nil
}

func TestFormat(t *testing.T) {
	tests := []struct {
		Name string
		Args reply.Reply
		Want string
	}{
		{"ok", reply.MakeOkReply(), "OK"},
		{"int", reply.MakeIntReply(3), "(integer) 3"},
		{"bulk", reply.MakeBulkReply([]byte("v")), `"v"`},
		{"nil", reply.MakeNullBulkReply(), "(nil)"},
		{"array", reply.MakeMultiBulkReply([][]byte{[]byte("a"), nil}), `["a", (nil)]`},
		{"error", &reply.WrongTypeErrReply{}, "(error) WRONGTYPE Operation against a key holding the wrong kind of value"},
	}
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, format(tt.Args))
		})
	}
}

func TestRunLines(t *testing.T) {
	timeout = time.Second
	f := &fakeExecutor{replies: map[string]reply.Reply{
		"SET k v": reply.MakeOkReply(),
		"GET k":   reply.MakeBulkReply([]byte("v")),
	}}
	var out bytes.Buffer
	err := runLines(context.Background(), f, strings.NewReader("SET k v\n\n  GET   k \n"), &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"SET k v", "GET k"}, f.seen)
	assert.Equal(t, "OK\n\"v\"\n", out.String())

	err = runOne(context.Background(), f, []string{"PING"}, &out)
	assert.Error(t, err)
}

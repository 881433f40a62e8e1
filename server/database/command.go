package database

import (
	"context"
	"strings"

	"github.com/Kirov7/kraglin/server/resp/reply"
)

// ExecFunc is interface for command executor
// args don't include cmd line
type ExecFunc func(db *DB, ctx context.Context, args [][]byte) reply.Reply

var cmdTable = make(map[string]*command)

type command struct {
	executor ExecFunc
	arity    int // allow number of args, arity < 0 means len(args) >= -arity
}

// RegisterCommand registers a new command
// arity means allowed number of cmdArgs, arity < 0 means len(args) >= -arity.
// for example: the arity of `get` is 2, `mget` is -2
func RegisterCommand(name string, executor ExecFunc, arity int) {
	name = strings.ToLower(name)
	cmdTable[name] = &command{
		executor: executor,
		arity:    arity,
	}
}

// Commands lists the registered command names, lower case.
func Commands() []string {
	names := make([]string, 0, len(cmdTable))
	for name := range cmdTable {
		names = append(names, name)
	}
	return names
}

// Package database turns RESP command lines into engine commands.
package database

import (
	"context"
	"runtime/debug"
	"strings"

	"github.com/Kirov7/kraglin"
	kcmd "github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/public/logger"
	"github.com/Kirov7/kraglin/server"
	"github.com/Kirov7/kraglin/server/resp/reply"
	"github.com/hashicorp/go-hclog"
)

// CmdLine is alias for [][]byte, represents a command line
type CmdLine = [][]byte

// Database is the interface for redis style storage engine
type Database interface {
	Exec(c *server.Conn, args [][]byte) reply.Reply
	Close()
}

// DB serves command lines from one backend.
type DB struct {
	backend kraglin.DB
	logger  hclog.Logger
}

func NewDB(backend kraglin.DB, l hclog.Logger) *DB {
	if l == nil {
		l = logger.Default()
	}
	return &DB{backend: backend, logger: l.Named("database")}
}

// Exec executes one command line. c may be nil; otherwise its context bounds
// the wait for the store.
func (db *DB) Exec(c *server.Conn, cmdLine [][]byte) (result reply.Reply) {
	defer func() {
		if err := recover(); err != nil {
			db.logger.Error("panic executing command", "err", err, "stack", string(debug.Stack()))
			result = &reply.UnknownErrReply{}
		}
	}()

	if len(cmdLine) == 0 {
		return reply.MakeErrReply("ERR empty command")
	}
	cmdName := strings.ToLower(string(cmdLine[0]))
	cmd, ok := cmdTable[cmdName]
	if !ok {
		return &reply.UnknownCommandErrReply{Cmd: cmdName}
	}
	if !validateArity(cmd.arity, cmdLine) {
		return reply.MakeArgNumErrReply(cmdName)
	}
	return cmd.executor(db, c.Context(), cmdLine[1:])
}

func (db *DB) Close() {
	if err := db.backend.Close(); err != nil {
		db.logger.Warn("closing backend", "err", err)
	}
}

// execute runs cmd and encodes its result.
func (db *DB) execute(ctx context.Context, cmd kcmd.Command) reply.Reply {
	v, err := db.backend.Execute(ctx, cmd)
	if err != nil {
		db.logger.Debug("command failed", "cmd", cmd.Name(), "err", err)
		return reply.FromError(err)
	}
	return reply.FromValue(v)
}

// executeValue runs cmd and hands back the raw result, or the error reply.
func (db *DB) executeValue(ctx context.Context, cmd kcmd.Command) (data.Value, reply.ErrorReply) {
	v, err := db.backend.Execute(ctx, cmd)
	if err != nil {
		db.logger.Debug("command failed", "cmd", cmd.Name(), "err", err)
		return nil, reply.FromError(err)
	}
	return v, nil
}

// validateArity checks the number of arguments,
// arity < 0 means len(args) >= -arity.
func validateArity(arity int, cmdArgs [][]byte) bool {
	argNum := len(cmdArgs)
	if arity >= 0 {
		return argNum == arity
	}
	return argNum >= -arity
}

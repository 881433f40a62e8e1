package database

import (
	"context"

	kcmd "github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/server/resp/reply"
)

// execKeys lists every key. Only the match-all pattern is understood.
func execKeys(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	if len(args) > 1 || (len(args) == 1 && string(args[0]) != "*") {
		return reply.MakeSyntaxErrReply()
	}
	return db.execute(ctx, kcmd.Keys{})
}

func execExists(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.Exists{Key: string(args[0])})
}

func execDel(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.Delete{Key: string(args[0])})
}

func execInfo(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.Info{})
}

func init() {
	RegisterCommand("Keys", execKeys, -1)
	RegisterCommand("Exists", execExists, 2)
	RegisterCommand("Del", execDel, 2)
	RegisterCommand("Info", execInfo, -1)
}

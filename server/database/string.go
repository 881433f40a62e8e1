package database

import (
	"context"

	kcmd "github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/server/resp/reply"
)

// execSet sets string value of the given key
func execSet(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	cmd := kcmd.Set{Key: string(args[0]), Value: bulk(args[1])}
	if _, errReply := db.executeValue(ctx, cmd); errReply != nil {
		return errReply
	}
	return reply.MakeOkReply()
}

// execGet returns string value bound to the given key
func execGet(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.Get{Key: string(args[0])})
}

func execMGet(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.MultipleGet{Keys: strs(args)})
}

func execIncr(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.Increment{Key: string(args[0])})
}

// bulk copies an argument out of the parser's buffer.
func bulk(arg []byte) data.BulkString {
	return append(data.BulkString{}, arg...)
}

func strs(args [][]byte) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = string(arg)
	}
	return out
}

func init() {
	RegisterCommand("Set", execSet, 3)
	RegisterCommand("Get", execGet, 2)
	RegisterCommand("MGet", execMGet, -2)
	RegisterCommand("Incr", execIncr, 2)
}

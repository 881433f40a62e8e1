package database

import (
	"context"

	kcmd "github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/server/resp/reply"
)

func execHSet(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.HashSet{
		Key:   string(args[0]),
		Field: string(args[1]),
		Value: bulk(args[2]),
	})
}

func execHGet(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.HashGet{Key: string(args[0]), Field: string(args[1])})
}

// execHGetAll answers a flat field, value, field, value... array.
func execHGetAll(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.HashGetAll{Key: string(args[0])})
}

func execHMGet(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.HashMultipleGet{Key: string(args[0]), Fields: strs(args[1:])})
}

func init() {
	RegisterCommand("HSet", execHSet, 4)
	RegisterCommand("HGet", execHGet, 3)
	RegisterCommand("HGetAll", execHGetAll, 2)
	RegisterCommand("HMGet", execHMGet, -3)
}

package database

import (
	"context"

	kcmd "github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/server/resp/reply"
)

func execSAdd(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.SetAdd{Key: string(args[0]), Value: bulk(args[1])})
}

func execSMembers(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.SetMembers{Key: string(args[0])})
}

func execSCard(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.SetCardinality{Key: string(args[0])})
}

func execSIsMember(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.SetIsMember{Key: string(args[0]), Value: bulk(args[1])})
}

func execSDiff(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.SetDifference{SetA: string(args[0]), SetB: string(args[1])})
}

// execSDiffStore takes the destination first, as redis does.
func execSDiffStore(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.SetDifferenceStore{
		NewSet: string(args[0]),
		SetA:   string(args[1]),
		SetB:   string(args[2]),
	})
}

func execSRem(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.SetRemove{Key: string(args[0]), Value: bulk(args[1])})
}

func init() {
	RegisterCommand("SAdd", execSAdd, 3)
	RegisterCommand("SMembers", execSMembers, 2)
	RegisterCommand("SCard", execSCard, 2)
	RegisterCommand("SIsMember", execSIsMember, 3)
	RegisterCommand("SDiff", execSDiff, 3)
	RegisterCommand("SDiffStore", execSDiffStore, 4)
	RegisterCommand("SRem", execSRem, 3)
}

package database

import (
	"context"
	"strconv"

	kcmd "github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/server/resp/reply"
)

func execLPush(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.LeftPush{Key: string(args[0]), Value: bulk(args[1])})
}

func execRPush(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.RightPush{Key: string(args[0]), Value: bulk(args[1])})
}

func execLRange(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	start, err := strconv.ParseInt(string(args[1]), 10, 64)
	if err != nil {
		return &reply.NotIntegerErrReply{}
	}
	end, err := strconv.ParseInt(string(args[2]), 10, 64)
	if err != nil {
		return &reply.NotIntegerErrReply{}
	}
	return db.execute(ctx, kcmd.ListRange{Key: string(args[0]), Start: start, End: end})
}

func execLLen(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.ListLength{Key: string(args[0])})
}

func execLPop(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.LeftPop{Key: string(args[0])})
}

func execRPop(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	return db.execute(ctx, kcmd.RightPop{Key: string(args[0])})
}

func init() {
	RegisterCommand("LPush", execLPush, 3)
	RegisterCommand("RPush", execRPush, 3)
	RegisterCommand("LRange", execLRange, 4)
	RegisterCommand("LLen", execLLen, 2)
	RegisterCommand("LPop", execLPop, 2)
	RegisterCommand("RPop", execRPop, 2)
}

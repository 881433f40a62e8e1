package database

import (
	"context"

	"github.com/Kirov7/kraglin/server/resp/reply"
)

// Ping the server
func Ping(db *DB, ctx context.Context, args [][]byte) reply.Reply {
	if len(args) == 0 {
		return &reply.PongReply{}
	} else if len(args) == 1 {
		return reply.MakeBulkReply(args[0])
	} else {
		return reply.MakeArgNumErrReply("ping")
	}
}

func init() {
	RegisterCommand("ping", Ping, -1)
}

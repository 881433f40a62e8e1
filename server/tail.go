package server

import (
	"context"
	"net"
)

func NewTailService(c *TcpSliceRouterContext) *TailService {
	return &TailService{ctx: c.Ctx}
}

// TailService ends the middleware chain. The RESP middleware aborts the chain
// once the connection is done, so it only runs when no middleware served the
// connection.
type TailService struct {
	ctx context.Context
}

func (t TailService) ServeTCP(ctx context.Context, conn net.Conn) {
	_ = conn.Close()
}

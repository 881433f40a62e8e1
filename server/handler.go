package server

import (
	"context"
	"net"
)

// HandleFunc represents application handler function
type HandleFunc func(ctx context.Context, conn net.Conn)

// ServeTCP calls f(ctx, conn).
func (f HandleFunc) ServeTCP(ctx context.Context, conn net.Conn) {
	f(ctx, conn)
}

// TCPHandler represents application handler over tcp
type TCPHandler interface {
	ServeTCP(ctx context.Context, conn net.Conn)
}

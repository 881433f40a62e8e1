// Package resp serves the RESP2 protocol on top of the slice router.
package resp

import (
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/Kirov7/kraglin/public/logger"
	"github.com/Kirov7/kraglin/server"
	"github.com/Kirov7/kraglin/server/database"
	"github.com/Kirov7/kraglin/server/resp/parser"
	"github.com/Kirov7/kraglin/server/resp/reply"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

var (
	unknownErrReplyBytes = []byte("-ERR unknown\r\n")
)

// RespHandler parses requests off a connection and executes them against db
type RespHandler struct {
	activeConn sync.Map // net.Conn -> placeholder
	db         database.Database
	logger     hclog.Logger
	inShutdown int32 // refusing new client and new request
}

func NewRespHandler(db database.Database, l hclog.Logger) *RespHandler {
	if l == nil {
		l = logger.Default()
	}
	return &RespHandler{db: db, logger: l.Named("resp")}
}

func (h *RespHandler) closeConn(conn net.Conn) {
	_ = conn.Close()
	h.activeConn.Delete(conn)
}

// Close stops handler
func (h *RespHandler) Close() error {
	if !atomic.CompareAndSwapInt32(&h.inShutdown, 0, 1) {
		return nil
	}
	h.logger.Info("handler shutting down")

	h.activeConn.Range(func(key interface{}, val interface{}) bool {
		_ = key.(net.Conn).Close()
		return true
	})
	h.db.Close()
	return nil
}

func (h *RespHandler) shuttingDown() bool {
	return atomic.LoadInt32(&h.inShutdown) != 0
}

// Middleware reads command lines until the peer goes away, answering each in
// order, then aborts the chain.
func (h *RespHandler) Middleware() server.TcpHandlerFunc {
	return func(ctx *server.TcpSliceRouterContext) {
		defer ctx.Abort()

		conn := ctx.GetConn()
		remote := ctx.GetString(server.RemoteAddrContextKey)
		if h.shuttingDown() {
			_ = conn.Close()
			return
		}
		h.activeConn.Store(conn, struct{}{})

		ch := parser.ParseStream(conn)
		defer func() {
			h.closeConn(conn)
			// the parser blocks on send until someone reads
			for range ch {
			}
		}()

		for payload := range ch {
			if payload.Err != nil {
				if isClosed(payload.Err) {
					h.logger.Debug("connection closed", "remote", remote)
					return
				}
				h.logger.Warn("protocol error", "remote", remote, "err", payload.Err)
				errReply := &reply.ProtocolErrReply{Msg: payload.Err.Error()}
				_ = ctx.Write(errReply.ToBytes())
				return
			}
			if h.shuttingDown() {
				return
			}
			r, ok := payload.Data.(*reply.MultiBulkReply)
			if !ok {
				h.logger.Warn("require multi bulk reply", "remote", remote)
				if err := ctx.Write(reply.MakeErrReply("ERR request must be an array of bulk strings").ToBytes()); err != nil {
					return
				}
				continue
			}

			result := h.db.Exec(ctx.GetClientConn(), r.Args)
			b := unknownErrReplyBytes
			if result != nil {
				b = result.ToBytes()
			}
			if err := ctx.Write(b); err != nil {
				h.logger.Debug("write failed", "remote", remote, "err", err)
				return
			}
		}
	}
}

func isClosed(err error) bool {
	var netErr net.Error
	return errors.Is(err, io.EOF) ||
		(errors.As(err, &netErr) && netErr.Timeout()) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed)
}

package server

import (
	"context"
	"net"
	"runtime"
	"time"
)

type Conn struct {
	server    *TcpServer
	ctx       context.Context
	cancelCtx context.CancelFunc
	// Raw Connection
	rwc net.Conn
	// Record remote ip
	remoteAddr string
}

func (s *TcpServer) newConn(rwc net.Conn) *Conn {
	c := &Conn{
		server: s,
		rwc:    rwc,
	}
	if d := c.server.ReadTimeout; d != 0 {
		_ = c.rwc.SetReadDeadline(time.Now().Add(d))
	}
	if d := c.server.WriteTimeout; d != 0 {
		_ = c.rwc.SetWriteDeadline(time.Now().Add(d))
	}
	if d := c.server.KeepAliveTimeout; d != 0 {
		if tcpConn, ok := c.rwc.(*net.TCPConn); ok {
			_ = tcpConn.SetKeepAlive(true)
			_ = tcpConn.SetKeepAlivePeriod(d)
		}
	}
	return c
}

// NewConn wraps a raw connection that is not owned by a TcpServer.
func NewConn(ctx context.Context, rwc net.Conn) *Conn {
	c := &Conn{rwc: rwc, remoteAddr: rwc.RemoteAddr().String()}
	c.ctx, c.cancelCtx = context.WithCancel(ctx)
	return c
}

func (c *Conn) Close() {
	if c.cancelCtx != nil {
		c.cancelCtx()
	}
	_ = c.rwc.Close()
}

// Context is cancelled when the connection closes.
func (c *Conn) Context() context.Context {
	if c == nil || c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func (c *Conn) RemoteAddr() string {
	return c.remoteAddr
}

func (c *Conn) Write(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, err := c.rwc.Write(b)
	return err
}

func (c *Conn) serve(ctx context.Context) {
	c.remoteAddr = c.rwc.RemoteAddr().String()
	ctx = context.WithValue(ctx, ConnContextKey, c)
	ctx = context.WithValue(ctx, RemoteAddrContextKey, c.remoteAddr)
	c.ctx, c.cancelCtx = context.WithCancel(ctx)
	c.server.conns.Store(c, struct{}{})
	defer func() {
		if err := recover(); err != nil && err != ErrAbortHandler {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			c.server.logger().Error("panic serving connection", "remote", c.remoteAddr, "err", err, "stack", string(buf))
		}
		c.server.conns.Delete(c)
		c.Close()
	}()
	if c.server.Handler == nil {
		panic("handler empty")
	}
	c.server.Handler.ServeTCP(c.ctx, c.rwc)
}

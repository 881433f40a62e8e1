package server

import (
	"context"
	"math"
	"net"

	"golang.org/x/exp/slices"
)

const abortIndex int8 = math.MaxInt8 / 2

type TcpHandlerFunc func(*TcpSliceRouterContext)

type TcpSliceRouter struct {
	group *TcpSliceGroup
}

type TcpSliceGroup struct {
	*TcpSliceRouter
	path     string
	handlers []TcpHandlerFunc
}

type TcpSliceRouterContext struct {
	conn net.Conn
	Ctx  context.Context
	*TcpSliceGroup
	index int8
}

func newTcpSliceRouterContext(conn net.Conn, r *TcpSliceRouter, ctx context.Context) *TcpSliceRouterContext {
	newTcpSliceGroup := &TcpSliceGroup{TcpSliceRouter: r}
	if r.group != nil {
		newTcpSliceGroup.path = r.group.path
		// each connection appends its own tail handler
		newTcpSliceGroup.handlers = slices.Clone(r.group.handlers)
	}
	c := &TcpSliceRouterContext{conn: conn, TcpSliceGroup: newTcpSliceGroup, Ctx: ctx}
	c.Reset()
	return c
}

func (c *TcpSliceRouterContext) Get(key interface{}) interface{} {
	return c.Ctx.Value(key)
}

func (c *TcpSliceRouterContext) Set(key, val interface{}) {
	c.Ctx = context.WithValue(c.Ctx, key, val)
}

func (c *TcpSliceRouterContext) GetString(key interface{}) string {
	s, _ := c.Get(key).(string)
	return s
}

// GetConn returns the raw connection being served
func (c *TcpSliceRouterContext) GetConn() net.Conn {
	return c.conn
}

// GetClientConn returns the server side Conn wrapping the raw connection, or
// nil when the router runs outside a TcpServer.
func (c *TcpSliceRouterContext) GetClientConn() *Conn {
	conn, _ := c.Get(ConnContextKey).(*Conn)
	return conn
}

func (c *TcpSliceRouterContext) Write(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, err := c.conn.Write(b)
	return err
}

type TcpSliceRouterHandler struct {
	coreFunc func(*TcpSliceRouterContext) TCPHandler
	router   *TcpSliceRouter
}

func (w *TcpSliceRouterHandler) ServeTCP(ctx context.Context, conn net.Conn) {
	c := newTcpSliceRouterContext(conn, w.router, ctx)
	c.handlers = append(c.handlers, func(c *TcpSliceRouterContext) {
		w.coreFunc(c).ServeTCP(ctx, conn)
	})
	c.Reset()
	c.Next()
}

func NewTcpSliceRouterHandler(coreFunc func(*TcpSliceRouterContext) TCPHandler, router *TcpSliceRouter) *TcpSliceRouterHandler {
	return &TcpSliceRouterHandler{
		coreFunc: coreFunc,
		router:   router,
	}
}

func NewTcpSliceRouter() *TcpSliceRouter {
	return &TcpSliceRouter{}
}

func (g *TcpSliceRouter) Group() *TcpSliceGroup {
	g.group = &TcpSliceGroup{
		TcpSliceRouter: g,
	}
	return g.group
}

func (g *TcpSliceGroup) Use(middlewares ...TcpHandlerFunc) *TcpSliceGroup {
	g.handlers = append(g.handlers, middlewares...)
	return g
}

func (c *TcpSliceRouterContext) Next() {
	c.index++
	for c.index < int8(len(c.handlers)) {
		c.handlers[c.index](c)
		c.index++
	}
}

func (c *TcpSliceRouterContext) Abort() {
	c.index = abortIndex
}

func (c *TcpSliceRouterContext) IsAborted() bool {
	return c.index >= abortIndex
}

func (c *TcpSliceRouterContext) Reset() {
	c.index = -1
}

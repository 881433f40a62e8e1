package server

import (
	"bufio"
	"context"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler TCPHandler) (*TcpServer, string) {
	srv := &TcpServer{Handler: handler}
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(l)
	}()
	t.Cleanup(func() {
		require.NoError(t, srv.Close(context.Background()))
		assert.ErrorIs(t, <-done, ErrServerClosed)
	})
	return srv, l.Addr().String()
}

func TestTcpServer_Echo(t *testing.T) {
	_, addr := serve(t, HandleFunc(func(ctx context.Context, conn net.Conn) {
		_, _ = io.Copy(conn, conn)
	}))

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	_, err = conn.Write([]byte("hello\n"))
	require.NoError(t, err)
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "hello\n", line)
}

func TestTcpServer_ContextValues(t *testing.T) {
	got := make(chan *Conn, 1)
	_, addr := serve(t, HandleFunc(func(ctx context.Context, conn net.Conn) {
		c, _ := ctx.Value(ConnContextKey).(*Conn)
		got <- c
		<-ctx.Done()
	}))

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	c := <-got
	require.NotNil(t, c)
	assert.Equal(t, conn.LocalAddr().String(), c.RemoteAddr())
	assert.NoError(t, c.Context().Err())
}

func TestTcpServer_CloseDropsConnections(t *testing.T) {
	started := make(chan struct{}, 1)
	srv := &TcpServer{Handler: HandleFunc(func(ctx context.Context, conn net.Conn) {
		started <- struct{}{}
		<-ctx.Done()
	})}
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(l)
	}()

	conn, err := net.Dial("tcp", l.Addr().String())
	require.NoError(t, err)
	defer conn.Close()
	<-started
	assert.NotNil(t, srv.ListenAddr())

	require.NoError(t, srv.Close(context.Background()))
	require.NoError(t, srv.Close(context.Background()))
	assert.ErrorIs(t, <-done, ErrServerClosed)

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, err = conn.Read(make([]byte, 1))
	assert.Error(t, err)

	assert.ErrorIs(t, srv.ListenAndServe(), ErrServerClosed)
}

func TestTcpSliceRouter_Middlewares(t *testing.T) {
	var order []string
	router := NewTcpSliceRouter()
	router.Group().Use(
		func(c *TcpSliceRouterContext) {
			order = append(order, "first")
			c.Set("seen", "yes")
			c.Next()
			order = append(order, "first-after")
		},
		func(c *TcpSliceRouterContext) {
			order = append(order, "second:"+c.GetString("seen"))
		},
	)
	var tailRan atomic.Bool
	handler := NewTcpSliceRouterHandler(func(c *TcpSliceRouterContext) TCPHandler {
		return HandleFunc(func(ctx context.Context, conn net.Conn) {
			tailRan.Store(true)
		})
	}, router)

	client, peer := net.Pipe()
	defer client.Close()
	handler.ServeTCP(context.Background(), peer)

	assert.Equal(t, []string{"first", "second:yes", "first-after"}, order)
	assert.True(t, tailRan.Load())
}

func TestTcpSliceRouter_Abort(t *testing.T) {
	router := NewTcpSliceRouter()
	router.Group().Use(func(c *TcpSliceRouterContext) {
		c.Abort()
	})
	handler := NewTcpSliceRouterHandler(func(c *TcpSliceRouterContext) TCPHandler {
		return NewTailService(c)
	}, router)

	client, peer := net.Pipe()
	defer client.Close()
	handler.ServeTCP(context.Background(), peer)

	// the tail closes connections it reaches, an aborted chain never gets there
	_ = client.SetWriteDeadline(time.Now().Add(100 * time.Millisecond))
	_, err := client.Write([]byte("x"))
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	assert.True(t, netErr.Timeout())
}

func TestTailService_Closes(t *testing.T) {
	router := NewTcpSliceRouter()
	handler := NewTcpSliceRouterHandler(func(c *TcpSliceRouterContext) TCPHandler {
		return NewTailService(c)
	}, router)

	client, peer := net.Pipe()
	handler.ServeTCP(context.Background(), peer)
	_, err := client.Write([]byte("x"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

package server

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Kirov7/kraglin/public/logger"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
)

type TcpServer struct {
	Addr    string
	Handler TCPHandler
	Logger  hclog.Logger
	ctx     context.Context

	WriteTimeout     time.Duration
	ReadTimeout      time.Duration
	KeepAliveTimeout time.Duration

	mu         sync.Mutex
	inShutdown int32
	doneChan   chan struct{}
	l          *onceCloseListener
	conns      sync.Map // *Conn -> struct{}

	NotifyStarted func()
}

type onceCloseListener struct {
	net.Listener
	once     sync.Once
	closeErr error
}

func (oc *onceCloseListener) Close() error {
	oc.once.Do(func() {
		oc.closeErr = oc.Listener.Close()
	})
	return oc.closeErr
}

func (s *TcpServer) shuttingDown() bool {
	return atomic.LoadInt32(&s.inShutdown) != 0
}

func (s *TcpServer) logger() hclog.Logger {
	if s.Logger == nil {
		return logger.Default()
	}
	return s.Logger
}

func (s *TcpServer) ListenAndServe() error {
	if s.shuttingDown() {
		return ErrServerClosed
	}
	addr := s.Addr
	if addr == "" {
		return errors.New("need addr")
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return s.Serve(listener)
}

// Close stops accepting connections and closes the open ones.
func (s *TcpServer) Close(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.inShutdown, 0, 1) {
		return nil
	}
	s.mu.Lock()
	if s.doneChan == nil {
		s.doneChan = make(chan struct{})
	}
	close(s.doneChan)
	l := s.l
	s.mu.Unlock()

	s.conns.Range(func(key, _ any) bool {
		key.(*Conn).Close()
		return true
	})
	if l == nil {
		return nil
	}
	return l.Close()
}

func (s *TcpServer) Serve(l net.Listener) error {
	s.mu.Lock()
	s.l = &onceCloseListener{Listener: l}
	s.mu.Unlock()
	defer s.l.Close()

	if s.ctx == nil {
		s.ctx = context.Background()
	}
	baseCtx := s.ctx
	ctx := context.WithValue(baseCtx, ServerContextKey, s)

	if s.NotifyStarted != nil {
		go s.NotifyStarted()
	}
	s.logger().Info("tcp server started", "addr", l.Addr().String())
	for {
		rw, e := l.Accept()
		if e != nil {
			select {
			case <-s.getDoneChan():
				return ErrServerClosed
			default:
			}
			s.logger().Warn("accept failed", "err", e)
			continue
		}
		s.logger().Debug("new connection", "remote", rw.RemoteAddr().String())
		go s.newConn(rw).serve(ctx)
	}
}

// ListenAddr returns the bound address once Serve has started.
func (s *TcpServer) ListenAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.l == nil {
		return nil
	}
	return s.l.Addr()
}

func (s *TcpServer) getDoneChan() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doneChan == nil {
		s.doneChan = make(chan struct{})
	}
	return s.doneChan
}

package server

import "github.com/pkg/errors"

type contextKey string

var (
	ErrServerClosed = errors.New("tcp: Server closed")
	ErrAbortHandler = errors.New("tcp: abort TCPHandler")
)

const (
	ServerContextKey     contextKey = "tcp-server"
	RemoteAddrContextKey contextKey = "remote-addr"
	ConnContextKey       contextKey = "Conn"
)

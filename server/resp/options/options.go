package options

import (
	"net"
	"strconv"
	"time"

	"github.com/Kirov7/kraglin"
	"github.com/Kirov7/kraglin/public"
)

type KraglinOptions struct {
	Host   string
	Port   int
	Engine kraglin.Options

	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	KeepAliveTimeout time.Duration

	// PidFile is locked for the lifetime of the server when set
	PidFile string
	// MetricsAddr serves /metrics when set
	MetricsAddr string
}

func DefaultOptions() KraglinOptions {
	return KraglinOptions{
		Host:             public.DefaultListenHost,
		Port:             public.DefaultListenPort,
		Engine:           kraglin.DefaultOptions(),
		KeepAliveTimeout: 5 * time.Minute,
	}
}

// Addr is the listen address.
func (o KraglinOptions) Addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

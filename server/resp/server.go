package resp

import (
	"github.com/Kirov7/kraglin/server"
	"github.com/Kirov7/kraglin/server/resp/options"
	"github.com/hashicorp/go-hclog"
)

// NewTcpServer puts h behind the slice router of a TcpServer listening on
// opt's address.
func NewTcpServer(opt options.KraglinOptions, h *RespHandler, l hclog.Logger) *server.TcpServer {
	router := server.NewTcpSliceRouter()
	router.Group().Use(
		h.Middleware(),
	)

	tailFunc := func(c *server.TcpSliceRouterContext) server.TCPHandler {
		return server.NewTailService(c)
	}

	return &server.TcpServer{
		Addr:             opt.Addr(),
		Handler:          server.NewTcpSliceRouterHandler(tailFunc, router),
		Logger:           l,
		ReadTimeout:      opt.ReadTimeout,
		WriteTimeout:     opt.WriteTimeout,
		KeepAliveTimeout: opt.KeepAliveTimeout,
	}
}

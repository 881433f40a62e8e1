package standalone

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Kirov7/kraglin"
	"github.com/Kirov7/kraglin/cmd/root"
	"github.com/Kirov7/kraglin/metrics"
	"github.com/Kirov7/kraglin/public/logger"
	"github.com/Kirov7/kraglin/server"
	"github.com/Kirov7/kraglin/server/database"
	"github.com/Kirov7/kraglin/server/resp"
	"github.com/Kirov7/kraglin/server/resp/options"
	"github.com/gofrs/flock"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var configFile string

var standaloneCmd = &cobra.Command{
	Use:   "standalone",
	Short: "Standalone kraglin",
	Long:  `Run a single kraglin server. Settings come from flags, then KRAGLIN_* (or LISTEN_HOST/LISTEN_PORT) env, then the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := newViper(cmd, configFile)
		if err != nil {
			return err
		}
		opt, logCfg, err := loadOptions(v)
		if err != nil {
			return err
		}
		log := logger.New(logCfg)
		logger.SetDefault(log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return run(ctx, opt, log)
	},
}

// run serves until ctx is done.
func run(ctx context.Context, opt options.KraglinOptions, log hclog.Logger) error {
	if opt.PidFile != "" {
		unlock, err := lockPidFile(opt.PidFile)
		if err != nil {
			return err
		}
		defer unlock()
	}

	backend, err := kraglin.NewBackend(opt.Engine)
	if err != nil {
		return errors.Wrap(err, "create backend")
	}
	var db kraglin.DB = backend

	var metricsSrv *http.Server
	if opt.MetricsAddr != "" {
		collector := metrics.NewCollector()
		db = collector.Instrument(backend)
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		metricsSrv = &http.Server{Addr: opt.MetricsAddr, Handler: mux}
		go func() {
			log.Info("metrics listening", "addr", opt.MetricsAddr)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "err", err)
			}
		}()
	}

	handler := resp.NewRespHandler(database.NewDB(db, log), log)
	srv := resp.NewTcpServer(opt, handler, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("kraglin standalone server running", "addr", srv.Addr, "backend", opt.Engine.Backend, "index", opt.Engine.MemTableType)
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down kraglin server")
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Close(shutdownCtx); err != nil {
		log.Warn("closing listener", "err", err)
	}
	_ = handler.Close()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}

	if serveErr != nil && !errors.Is(serveErr, server.ErrServerClosed) {
		return serveErr
	}
	log.Info("kraglin server stopped")
	return nil
}

// lockPidFile takes an exclusive lock on path and writes the pid into it.
func lockPidFile(path string) (func(), error) {
	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, "lock pid file %s", path)
	}
	if !locked {
		return nil, errors.Errorf("pid file %s is held by another server", path)
	}
	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644); err != nil {
		_ = fl.Unlock()
		return nil, errors.Wrapf(err, "write pid file %s", path)
	}
	return func() {
		_ = fl.Unlock()
		_ = os.Remove(path)
	}, nil
}

func init() {
	addFlags(standaloneCmd)
	root.AddCommand(standaloneCmd)
}

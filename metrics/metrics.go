// Package metrics exposes Prometheus metrics for a backend.
package metrics

import (
	"context"
	"github.com/pkg/errors"
	"net/http"
	"time"

	"github.com/Kirov7/kraglin"
	"github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/public"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kraglin"

// Result labels
const (
	ResultOK       = "ok"
	ResultCanceled = "canceled"
	ResultError    = "error"
)

// Collector holds the command metrics of one backend.
type Collector struct {
	registry *prometheus.Registry
	commands *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands executed, by command name and result.",
		}, []string{"command", "result"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "command_errors_total",
			Help:      "Failed commands, by command name and error kind.",
		}, []string{"command", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Time spent in Execute, lock wait included.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"command"}),
	}
	c.registry.MustRegister(c.commands, c.errors, c.duration)
	return c
}

// Registry returns the registry the collector's metrics live in.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Instrument wraps db so every Execute is counted and timed.
func (c *Collector) Instrument(db kraglin.DB) kraglin.DB {
	return &instrumented{DB: db, c: c}
}

func (c *Collector) observe(name string, elapsed time.Duration, err error) {
	c.duration.WithLabelValues(name).Observe(elapsed.Seconds())
	switch {
	case err == nil:
		c.commands.WithLabelValues(name, ResultOK).Inc()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.commands.WithLabelValues(name, ResultCanceled).Inc()
	default:
		c.commands.WithLabelValues(name, ResultError).Inc()
		c.errors.WithLabelValues(name, errorKind(err)).Inc()
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, public.ErrWrongType):
		return "wrong_type"
	case errors.Is(err, public.ErrCannotParseAsInteger):
		return "not_integer"
	case errors.Is(err, public.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, public.ErrNothingValue):
		return "nothing_value"
	case errors.Is(err, public.ErrBackendClosed):
		return "closed"
	}
	return "other"
}

type instrumented struct {
	kraglin.DB
	c *Collector
}

func (i *instrumented) Execute(ctx context.Context, cmd command.Command) (data.Value, error) {
	start := time.Now()
	res, err := i.DB.Execute(ctx, cmd)
	i.c.observe(cmd.Name(), time.Since(start), err)
	return res, err
}

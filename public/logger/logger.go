// Package logger builds the process logger on top of hclog.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/hashicorp/go-hclog"
)

type Config struct {
	// Level is one of trace, debug, info, warn, error or off. Empty means info.
	Level string
	JSON  bool
	// Output defaults to stderr
	Output io.Writer
}

// New returns a logger named "kraglin".
func New(cfg Config) hclog.Logger {
	level := hclog.LevelFromString(cfg.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "kraglin",
		Level:      level,
		JSONFormat: cfg.JSON,
		Output:     out,
	})
}

var (
	mu  sync.RWMutex
	def = hclog.NewNullLogger()
)

// Default returns the process logger. It discards everything until
// SetDefault is called.
func Default() hclog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return def
}

func SetDefault(l hclog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	def = l
}

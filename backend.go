// Package kraglin is an in-memory, multi-type key-value engine with a
// Redis-like command set.
//
// Every request is a command.Command handed to a Backend's Execute. A backend
// applies each command atomically: no caller ever sees a partially applied
// mutation.
package kraglin

import (
	"context"

	"github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/data"
)

// Backend executes commands against a store. Implementations are safe for
// concurrent use.
//
// Execute honours ctx only while waiting for the store; once the command has
// started it runs to completion.
type Backend interface {
	Execute(ctx context.Context, cmd command.Command) (data.Value, error)
}

// DB is a Backend owned by the process: it can be watched and closed.
type DB interface {
	Backend
	Watch(ctx context.Context, key string) <-chan *WatchEvent
	Close() error
}

// NewBackend builds the backend selected by opt.
func NewBackend(opt Options) (DB, error) {
	if err := checkOptions(&opt); err != nil {
		return nil, err
	}
	switch opt.Backend {
	case Sharded:
		return NewShardedBackend(opt.Shards, opt.MemTableType), nil
	default:
		return NewSimpleBackend(opt.MemTableType), nil
	}
}

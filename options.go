package kraglin

import (
	"github.com/Kirov7/kraglin/meta"
	"github.com/Kirov7/kraglin/public"
	"github.com/pkg/errors"
)

type BackendType = int8

const (
	// Simple guards the whole keyspace with one lock
	Simple BackendType = iota
	// Sharded stripes the keyspace over several locks by key hash
	Sharded
)

type Options struct {
	Backend      BackendType
	Shards       int
	MemTableType meta.MemTableType
}

func DefaultOptions() Options {
	return Options{
		Backend:      Simple,
		Shards:       public.DefaultShardCount,
		MemTableType: meta.Btree,
	}
}

// ParseBackendType maps a config name to a BackendType.
func ParseBackendType(name string) (BackendType, bool) {
	switch name {
	case "simple", "":
		return Simple, true
	case "sharded":
		return Sharded, true
	}
	return Simple, false
}

func checkOptions(opt *Options) error {
	switch opt.Backend {
	case Simple:
	case Sharded:
		if opt.Shards <= 0 {
			return errors.Errorf("shard count must be positive, got %d", opt.Shards)
		}
	default:
		return errors.Errorf("unknown backend type %d", opt.Backend)
	}
	switch opt.MemTableType {
	case meta.Btree, meta.ART, meta.HashMap:
	default:
		return errors.Errorf("unknown memtable type %d", opt.MemTableType)
	}
	return nil
}

package kraglin

import (
	"context"

	"github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/meta"
	"github.com/Kirov7/kraglin/public"
	"github.com/Kirov7/kraglin/public/ds"
	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/slices"
)

type shard struct {
	lock     *ds.Mutex
	memTable meta.MemTable
}

// ShardedBackend stripes the keyspace over several MemTables, each behind its
// own lock. A command locks every shard it touches in ascending shard order,
// so commands on disjoint shards run in parallel and per-command atomicity is
// kept.
type ShardedBackend struct {
	shards []*shard
	wm     *watcherManager
	closed bool // guarded by every shard lock
}

func NewShardedBackend(n int, typ meta.MemTableType) *ShardedBackend {
	if n <= 0 {
		n = public.DefaultShardCount
	}
	b := &ShardedBackend{
		shards: make([]*shard, n),
		wm:     newWatcherManager(),
	}
	for i := range b.shards {
		b.shards[i] = &shard{lock: ds.NewMutex(), memTable: meta.NewMemTable(typ)}
	}
	go b.wm.start()
	return b
}

func (b *ShardedBackend) shardIndex(key string) int {
	return int(murmur3.Sum32([]byte(key)) % uint32(len(b.shards)))
}

func (b *ShardedBackend) table(key string) meta.MemTable {
	return b.shards[b.shardIndex(key)].memTable
}

func (b *ShardedBackend) tables() []meta.MemTable {
	out := make([]meta.MemTable, len(b.shards))
	for i, s := range b.shards {
		out[i] = s.memTable
	}
	return out
}

// lockOrder returns the sorted, deduplicated shard indexes cmd needs. A
// command naming no key locks every shard.
func (b *ShardedBackend) lockOrder(cmd command.Command) []int {
	keys, all := touchedKeys(cmd)
	if all || len(keys) == 0 {
		idx := make([]int, len(b.shards))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, 0, len(keys))
	for _, key := range keys {
		idx = append(idx, b.shardIndex(key))
	}
	slices.Sort(idx)
	return slices.Compact(idx)
}

func (b *ShardedBackend) lockShards(ctx context.Context, idx []int) (unlock func(), err error) {
	held := 0
	unlock = func() {
		for i := held - 1; i >= 0; i-- {
			b.shards[idx[i]].lock.Unlock()
		}
	}
	for _, i := range idx {
		if err := b.shards[i].lock.Lock(ctx); err != nil {
			unlock()
			return nil, err
		}
		held++
	}
	return unlock, nil
}

func (b *ShardedBackend) Execute(ctx context.Context, cmd command.Command) (data.Value, error) {
	unlock, err := b.lockShards(ctx, b.lockOrder(cmd))
	if err != nil {
		return nil, err
	}
	defer unlock()

	if b.closed {
		return nil, public.ErrBackendClosed
	}
	res, wrote, err := apply(b, cmd)
	if err != nil {
		return nil, err
	}
	if wrote {
		b.wm.notifyWrites(b, cmd)
	}
	return res, nil
}

func (b *ShardedBackend) Watch(ctx context.Context, key string) <-chan *WatchEvent {
	return b.wm.watch(ctx, key)
}

func (b *ShardedBackend) Close() error {
	unlock, err := b.lockShards(context.Background(), b.lockOrder(command.Keys{}))
	if err != nil {
		return err
	}
	defer unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.wm.stop()
	return nil
}

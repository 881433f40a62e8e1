package kraglin

import (
	"context"

	"github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/meta"
	"github.com/Kirov7/kraglin/public"
	"github.com/Kirov7/kraglin/public/ds"
)

// SimpleBackend guards one MemTable with one lock. Every command holds the
// lock for its whole read-modify-write sequence.
type SimpleBackend struct {
	lock     *ds.Mutex
	memTable meta.MemTable
	wm       *watcherManager
	closed   bool
}

func NewSimpleBackend(typ meta.MemTableType) *SimpleBackend {
	b := &SimpleBackend{
		lock:     ds.NewMutex(),
		memTable: meta.NewMemTable(typ),
		wm:       newWatcherManager(),
	}
	go b.wm.start()
	return b
}

func (b *SimpleBackend) table(string) meta.MemTable { return b.memTable }

func (b *SimpleBackend) tables() []meta.MemTable { return []meta.MemTable{b.memTable} }

func (b *SimpleBackend) Execute(ctx context.Context, cmd command.Command) (data.Value, error) {
	if err := b.lock.Lock(ctx); err != nil {
		return nil, err
	}
	defer b.lock.Unlock()

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

func (b *SimpleBackend) Watch(ctx context.Context, key string) <-chan *WatchEvent {
	return b.wm.watch(ctx, key)
}

// Close stops the watchers. Commands issued afterwards fail with
// public.ErrBackendClosed.
func (b *SimpleBackend) Close() error {
	if err := b.lock.Lock(context.Background()); err != nil {
		return err
	}
	defer b.lock.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.wm.stop()
	return nil
}

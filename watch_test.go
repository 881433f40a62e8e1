package kraglin

import (
	"context"
	"testing"
	"time"

	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/meta"
	"github.com/Kirov7/kraglin/public"
	"github.com/stretchr/testify/assert"
)

func TestBackend_Watch(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *Facade) {
		db := f.Backend().(DB)
		key := "kraglin"
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		watchCh := db.Watch(ctx, key)

		go func() {
			bg := context.Background()
			_, _ = f.Set(bg, key, data.Integer(1))
			_, _ = f.Get(bg, key)
			_, _ = f.Incr(bg, key)
			_, _ = f.Set(bg, "other", data.Integer(1))
			_, _ = f.Del(bg, key)
			_, _ = f.RPush(bg, key, data.SimpleString("x"))
			_, _ = f.LPop(bg, key)
		}()

		expectedEvents := []*WatchEvent{
			{Key: key, Command: "SET", Type: PutEvent, Value: data.Integer(1)},
			{Key: key, Command: "INCR", Type: PutEvent, Value: data.Integer(2)},
			{Key: key, Command: "DEL", Type: DelEvent, Value: data.Nothing{}},
			{Key: key, Command: "RPUSH", Type: PutEvent, Value: data.Array{data.SimpleString("x")}},
			{Key: key, Command: "LPOP", Type: DelEvent, Value: data.Nothing{}},
		}

		for _, expectedEvent := range expectedEvents {
			select {
			case <-ctx.Done():
				assert.Fail(t, "Context canceled before receiving all events")
				return
			case event, ok := <-watchCh:
				assert.True(t, ok)
				assert.Equal(t, expectedEvent.Key, event.Key)
				assert.Equal(t, expectedEvent.Command, event.Command)
				assert.Equal(t, expectedEvent.Type, event.Type)
				assert.True(t, data.Equal(expectedEvent.Value, event.Value), data.Format(event.Value))
			}
		}
	})
}

func TestBackend_WatchSDiffStore(t *testing.T) {
	b := NewShardedBackend(4, meta.Btree)
	defer b.Close()
	f := NewFacade(b)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	watchCh := b.Watch(ctx, "dst")

	_, _ = f.SAdd(ctx, "src", data.Integer(1))
	_, err := f.SDiffStore(ctx, "src", "none", "dst")
	assert.Nil(t, err)

	select {
	case <-ctx.Done():
		assert.Fail(t, "no event for the destination key")
	case event := <-watchCh:
		assert.Equal(t, "SDIFFSTORE", event.Command)
		assert.Equal(t, PutEvent, event.Type)
		assert.True(t, data.Equal(data.NewSet(data.Integer(1)), event.Value))
	}
}

func TestBackend_Watch_Cancel(t *testing.T) {
	b := NewSimpleBackend(meta.Btree)
	defer b.Close()

	key := "key"
	ctx, cancel := context.WithCancel(context.Background())
	watchCh := b.wm.watch(ctx, key)

	cancel()

	// the listener closes the channel once the context is done
	select {
	case _, ok := <-watchCh:
		assert.False(t, ok)
	case <-time.After(time.Second):
		assert.Fail(t, "watch channel was not closed")
	}
}

func TestBackend_Watch_Close(t *testing.T) {
	b := NewSimpleBackend(meta.ART)
	watchCh := b.Watch(context.Background(), "key")
	assert.Nil(t, b.Close())

	_, ok := <-watchCh
	assert.False(t, ok)

	// watching a closed backend yields a closed channel
	_, ok = <-b.Watch(context.Background(), "key")
	assert.False(t, ok)
}

func TestBackend_Watch_StalledWatcherDoesNotBlockOthers(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *Facade) {
		db := f.Backend().(DB)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// never drained
		_ = db.Watch(ctx, "stalled")
		fastCh := db.Watch(ctx, "fast")

		for i := 0; i < public.WatchBufferSize+100; i++ {
			_, err := f.Set(ctx, "stalled", data.Integer(int64(i)))
			assert.Nil(t, err)
		}
		_, err := f.Set(ctx, "fast", data.Integer(1))
		assert.Nil(t, err)

		select {
		case event := <-fastCh:
			assert.Equal(t, "fast", event.Key)
			assert.True(t, data.Equal(data.Integer(1), event.Value))
		case <-time.After(500 * time.Millisecond):
			assert.Fail(t, "event for a drained watcher was held up")
		}
	})
}

func TestBackend_Watch_NoEventWithoutChange(t *testing.T) {
	eachBackend(t, func(t *testing.T, f *Facade) {
		db := f.Backend().(DB)
		key := "k"
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		watchCh := db.Watch(ctx, key)

		bg := context.Background()
		_, _ = f.Del(bg, key)
		_, _ = f.LPop(bg, key)
		_, _ = f.RPop(bg, key)
		_, _ = f.SAdd(bg, key, data.Integer(1))
		_, _ = f.SAdd(bg, key, data.Integer(1))
		_, _ = f.SRem(bg, key, data.Integer(2))
		_, _ = f.LPush(bg, key, data.Integer(1)) // wrong type
		_, _ = f.SRem(bg, key, data.Integer(1))
		_, _ = f.Set(bg, key, data.Integer(7))

		expected := []string{"SADD", "SREM", "SET"}
		for _, name := range expected {
			select {
			case <-ctx.Done():
				assert.Fail(t, "Context canceled before receiving all events")
				return
			case event := <-watchCh:
				assert.Equal(t, name, event.Command)
				assert.Equal(t, PutEvent, event.Type)
			}
		}
	})
}

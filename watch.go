package kraglin

import (
	"context"
	"sync"
	"time"

	"github.com/Kirov7/kraglin/command"
	"github.com/Kirov7/kraglin/data"
	"github.com/Kirov7/kraglin/public"
	"github.com/Kirov7/kraglin/public/ds"
	"github.com/Kirov7/kraglin/public/logger"
)

type EventType byte

const (
	PutEvent EventType = iota
	DelEvent
)

func (t EventType) String() string {
	if t == DelEvent {
		return "del"
	}
	return "put"
}

// WatchEvent reports that a command changed a watched key. Value is the
// content of the key right after the command, or Nothing for DelEvent.
type WatchEvent struct {
	Key     string
	Command string
	Type    EventType
	Value   data.Value
}

const sendTimeout = 100 * time.Millisecond

type watcherManager struct {
	lock     *sync.RWMutex
	watchers map[string]map[*watcher]struct{} // key to watchers
	queue    *ds.EventQueue[*WatchEvent]
	closeCh  chan struct{}
}

func newWatcherManager() *watcherManager {
	return &watcherManager{
		lock:     &sync.RWMutex{},
		watchers: make(map[string]map[*watcher]struct{}),
		queue:    ds.NewEventQueue[*WatchEvent](),
		closeCh:  make(chan struct{}),
	}
}

func (wm *watcherManager) closeWatcherListener(w *watcher) {
	select {
	case <-w.ctx.Done():
		wm.lock.Lock()
		wm.unWatch(w)
		wm.lock.Unlock()
	case <-wm.closeCh:
		return
	}
}

func (wm *watcherManager) watch(ctx context.Context, key string) <-chan *WatchEvent {
	w := &watcher{
		key:    key,
		ctx:    ctx,
		respCh: make(chan *WatchEvent, public.WatchBufferSize),
		queue:  ds.NewEventQueue[*WatchEvent](),
		done:   make(chan struct{}),
	}

	wm.lock.Lock()
	defer wm.lock.Unlock()

	select {
	case <-wm.closeCh:
		close(w.respCh)
		return w.respCh
	default:
	}

	if _, ok := wm.watchers[key]; !ok {
		wm.watchers[key] = make(map[*watcher]struct{})
	}
	wm.watchers[key][w] = struct{}{}
	logger.Default().Named("watch").Debug("watching key", "key", key)

	go wm.closeWatcherListener(w)
	go w.deliver()

	return w.respCh
}

// unWatch must be called with wm.lock held. The delivery goroutine closes
// respCh once it sees done.
func (wm *watcherManager) unWatch(w *watcher) {
	if !w.canceled {
		w.canceled = true
		w.queue.Close()
		close(w.done)
	}

	delete(wm.watchers[w.key], w)
	if len(wm.watchers[w.key]) == 0 {
		delete(wm.watchers, w.key)
	}
}

func (wm *watcherManager) watched(key string) bool {
	wm.lock.RLock()
	defer wm.lock.RUnlock()
	_, ok := wm.watchers[key]
	return ok
}

// notifyWrites queues one event per watched key cmd wrote. The
// caller still holds the locks of those keys, so events are queued in commit
// order.
func (wm *watcherManager) notifyWrites(ks keyspace, cmd command.Command) {
	for _, key := range writtenKeys(cmd) {
		if !wm.watched(key) {
			continue
		}
		event := &WatchEvent{Key: key, Command: cmd.Name(), Type: PutEvent}
		if entry := ks.table(key).Get(key); entry != nil {
			event.Value = entry.Value()
		} else {
			event.Type = DelEvent
			event.Value = data.Nothing{}
		}
		wm.queue.Write(event)
	}
}

func (wm *watcherManager) start() {
	log := logger.Default().Named("watch")
	log.Debug("watcher dispatch started")
	defer log.Debug("watcher dispatch stopped")
	for {
		event, ok := wm.queue.Read()
		if !ok {
			break
		}

		wm.lock.RLock()
		for w := range wm.watchers[event.Key] {
			if w.canceled {
				continue
			}
			w.queue.Write(event)
		}
		wm.lock.RUnlock()
	}
}

func (wm *watcherManager) stop() {
	wm.queue.Close()

	close(wm.closeCh)

	wm.lock.Lock()
	defer wm.lock.Unlock()

	for _, watchers := range wm.watchers {
		for w := range watchers {
			wm.unWatch(w)
		}
	}
}

// watcher owns a private queue drained by its own goroutine, so a watcher
// that stops reading delays only its own events.
type watcher struct {
	key      string
	ctx      context.Context
	respCh   chan *WatchEvent
	queue    *ds.EventQueue[*WatchEvent]
	done     chan struct{}
	canceled bool // guarded by watcherManager.lock
}

func (w *watcher) deliver() {
	defer close(w.respCh)
	for {
		event, ok := w.queue.Read()
		if !ok {
			return
		}
		if !w.sendResp(event) {
			return
		}
	}
}

// sendResp drops the event if the watcher does not drain its channel in time.
// It returns false once the watcher is gone.
func (w *watcher) sendResp(event *WatchEvent) bool {
	select {
	case <-w.done:
		return false
	default:
	}

	timer := time.NewTimer(sendTimeout)
	defer timer.Stop()

	select {
	case w.respCh <- event:
	case <-timer.C:
	case <-w.ctx.Done():
		return false
	case <-w.done:
		return false
	}
	return true
}

package ds

import (
	"context"

	"github.com/Kirov7/kraglin/public"
)

// Mutex is an exclusive lock whose acquisition can be abandoned through a
// context. Waiters are woken in roughly arrival order, but no ordering is
// guaranteed. The zero Mutex is not usable; call NewMutex.
type Mutex struct {
	ch chan struct{}
}

func NewMutex() *Mutex {
	return &Mutex{ch: make(chan struct{}, 1)}
}

// Lock blocks until the lock is held or ctx is done. A context that is
// already done never acquires the lock.
func (m *Mutex) Lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case m.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryLock acquires the lock only if it is free.
func (m *Mutex) TryLock() bool {
	select {
	case m.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

func (m *Mutex) Unlock() {
	select {
	case <-m.ch:
	default:
		panic(public.ErrMutexUnlocked)
	}
}

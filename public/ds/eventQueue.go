package ds

import (
	"sync"
)

// EventQueue is an unbounded FIFO. Writers never block; readers block until
// an item arrives or the queue is closed.
type EventQueue[T any] struct {
	items  []T
	cond   *sync.Cond
	closed bool
}

func NewEventQueue[T any]() *EventQueue[T] {
	return &EventQueue[T]{
		cond: sync.NewCond(&sync.Mutex{}),
	}
}

// Read pops the oldest item. ok is false once the queue is closed and empty.
func (q *EventQueue[T]) Read() (item T, ok bool) {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return item, false
	}

	var zero T
	item = q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Write appends item and reports whether the queue accepted it.
func (q *EventQueue[T]) Write(item T) bool {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, item)
	q.cond.Signal()
	return true
}

func (q *EventQueue[T]) Len() int {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()
	return len(q.items)
}

// Close rejects further writes. Items already queued can still be read.
func (q *EventQueue[T]) Close() {
	q.cond.L.Lock()
	defer q.cond.L.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.cond.Broadcast()
}

package ds

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventQueue_FIFO(t *testing.T) {
	q := NewEventQueue[int]()
	for i := 0; i < 3; i++ {
		assert.True(t, q.Write(i))
	}
	assert.Equal(t, 3, q.Len())
	for i := 0; i < 3; i++ {
		got, ok := q.Read()
		assert.True(t, ok)
		assert.Equal(t, i, got)
	}
	assert.Equal(t, 0, q.Len())
}

func TestEventQueue_ReadBlocksUntilWrite(t *testing.T) {
	q := NewEventQueue[string]()
	got := make(chan string)
	go func() {
		s, _ := q.Read()
		got <- s
	}()
	q.Write("event")
	assert.Equal(t, "event", <-got)
}

func TestEventQueue_Close(t *testing.T) {
	q := NewEventQueue[int]()
	q.Write(1)
	q.Close()
	q.Close()

	// pending events drain before Read reports the close
	got, ok := q.Read()
	assert.True(t, ok)
	assert.Equal(t, 1, got)
	_, ok = q.Read()
	assert.False(t, ok)

	assert.False(t, q.Write(2))
	_, ok = q.Read()
	assert.False(t, ok)
}

func TestEventQueue_CloseWakesReaders(t *testing.T) {
	q := NewEventQueue[int]()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := q.Read()
			assert.False(t, ok)
		}()
	}
	q.Close()
	wg.Wait()
}

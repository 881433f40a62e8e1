package ds

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Kirov7/kraglin/public"
	"github.com/stretchr/testify/assert"
)

func TestMutex_LockUnlock(t *testing.T) {
	m := NewMutex()
	assert.Nil(t, m.Lock(context.Background()))
	assert.False(t, m.TryLock())
	m.Unlock()
	assert.True(t, m.TryLock())
	m.Unlock()
}

func TestMutex_CanceledWhileWaiting(t *testing.T) {
	m := NewMutex()
	assert.Nil(t, m.Lock(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := m.Lock(ctx)
	assert.Equal(t, context.DeadlineExceeded, err)

	m.Unlock()
	assert.True(t, m.TryLock())
	m.Unlock()
}

func TestMutex_DoneContextNeverLocks(t *testing.T) {
	m := NewMutex()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, m.Lock(ctx))
	assert.True(t, m.TryLock())
}

func TestMutex_UnlockUnlocked(t *testing.T) {
	m := NewMutex()
	assert.PanicsWithError(t, public.ErrMutexUnlocked.Error(), func() {
		m.Unlock()
	})
}

func TestMutex_Exclusive(t *testing.T) {
	m := NewMutex()
	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Nil(t, m.Lock(context.Background()))
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1600, counter)
}

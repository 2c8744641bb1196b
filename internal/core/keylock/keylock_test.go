package keylock

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestKeyLock_SerializesSameKey verifies that holders of one key never overlap.
func TestKeyLock_SerializesSameKey(t *testing.T) {
	kl := New()

	var active, maxActive int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := kl.Lock("SHP-1")
			defer unlock()

			n := atomic.AddInt32(&active, 1)
			for {
				m := atomic.LoadInt32(&maxActive)
				if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive)
	assert.Equal(t, 0, kl.Len())
}

// TestKeyLock_DifferentKeysDoNotBlock verifies that distinct keys proceed in parallel.
func TestKeyLock_DifferentKeysDoNotBlock(t *testing.T) {
	kl := New()

	unlockA := kl.Lock("A")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := kl.Lock("B")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on B blocked behind A")
	}
}

// TestKeyLock_UnlockIsIdempotent verifies a double release does not corrupt the refcount.
func TestKeyLock_UnlockIsIdempotent(t *testing.T) {
	kl := New()

	unlock := kl.Lock("A")
	unlock()
	unlock()

	assert.Equal(t, 0, kl.Len())

	relock := kl.Lock("A")
	assert.Equal(t, 1, kl.Len())
	relock()
}

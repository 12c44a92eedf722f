package locks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := NewKeyedMutex()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			km.Lock("space/7")
			defer km.Unlock("space/7")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestKeyedMutex_DifferentKeysDoNotBlock(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("space/1")
	done := make(chan struct{})
	go func() {
		km.Lock("space/2")
		km.Unlock("space/2")
		close(done)
	}()

	<-done // would deadlock if keys shared one mutex
	km.Unlock("space/1")
}

func TestKeyedMutex_EntriesAreReleased(t *testing.T) {
	km := NewKeyedMutex()

	km.Lock("payer/1")
	km.Unlock("payer/1")

	km.mu.Lock()
	defer km.mu.Unlock()
	assert.Empty(t, km.entries)
}

func TestKeyedMutex_UnlockUnheldPanics(t *testing.T) {
	km := NewKeyedMutex()
	assert.Panics(t, func() { km.Unlock("space/9") })
}

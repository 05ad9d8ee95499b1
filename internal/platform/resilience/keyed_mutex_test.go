package resilience

import (
	"sync"
	"testing"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	m := NewKeyedMutex()

	const workers = 50
	counter := 0
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			unlock := m.Lock("team-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("lost updates under the same key: %d", counter)
	}
}

func TestKeyedMutex_IndependentKeysDoNotBlock(t *testing.T) {
	m := NewKeyedMutex()

	unlockA := m.Lock("team-a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := m.Lock("team-b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-t.Context().Done():
		t.Fatal("lock on a different key blocked")
	}
}

func TestKeyedMutex_ReleasesKeyState(t *testing.T) {
	m := NewKeyedMutex()

	unlock := m.Lock("team-1")
	unlock()

	if n := m.Len(); n != 0 {
		t.Fatalf("expected no retained keys, got %d", n)
	}
}

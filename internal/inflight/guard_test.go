package inflight

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardSerializesSameKey(t *testing.T) {
	g := NewGuard()
	key := Key("sess1", "cancel", "booking42")

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = g.Do(key, func() error {
			atomic.AddInt32(&calls, 1)
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	assert.True(t, g.Busy(key))

	// Second trigger for the same entity-action while the first is in
	// flight must be a no-op.
	err := g.Do(key, func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.False(t, g.Busy(key))

	// Once idle again the action may be repeated.
	err = g.Do(key, func() error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGuardIndependentKeys(t *testing.T) {
	g := NewGuard()
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = g.Do(Key("sess1", "cancel", "a"), func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// A different entity is not blocked by the in-flight one.
	ran := false
	err := g.Do(Key("sess1", "cancel", "b"), func() error {
		ran = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, ran)
	close(release)
}

func TestGuardClearsOnError(t *testing.T) {
	g := NewGuard()
	key := Key("s", "create_room", "")

	err := g.Do(key, func() error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, g.Busy(key), "busy flag must reset after a failure")
}

func TestGuardRapidRepeatedTriggers(t *testing.T) {
	g := NewGuard()
	key := Key("s", "book", "room1")

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = g.Do(key, func() error {
			atomic.AddInt32(&calls, 1)
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// Double-click and worse: every repeat while the first request is
	// pending is rejected without reaching the backend.
	rejected := 0
	for i := 0; i < 15; i++ {
		if err := g.Do(key, func() error {
			atomic.AddInt32(&calls, 1)
			return nil
		}); err == ErrBusy {
			rejected++
		}
	}
	close(release)
	<-done

	assert.Equal(t, 15, rejected)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

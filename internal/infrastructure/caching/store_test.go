package caching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreGetSet(t *testing.T) {
	s := NewStore[string](time.Minute)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("a", "1")
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	hits, misses := s.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	s.Delete("a")
	_, ok = s.Get("a")
	assert.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore[int](time.Minute)
	s.now = func() time.Time { return now }

	s.Set("a", 1)
	s.Set("b", 2)

	now = now.Add(30 * time.Second)
	_, ok := s.Get("a")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	assert.Equal(t, 1, s.Purge())
	assert.Zero(t, s.Len())
}

func TestStoreWithoutTTLNeverExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore[int](0)
	s.now = func() time.Time { return now }

	s.Set("a", 1)
	now = now.Add(365 * 24 * time.Hour)

	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Zero(t, s.Purge())

	s.Flush()
	assert.Zero(t, s.Len())
}

func TestKeyLockSerialisesSameKey(t *testing.T) {
	l := NewKeyLock()
	unlock := l.Lock("feed")
	assert.Equal(t, 1, l.Held())

	acquired := make(chan struct{})
	go func() {
		release := l.Lock("feed")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock acquired while the key was held")
	case <-time.After(20 * time.Millisecond):
	}

	other := l.Lock("other")
	other()

	unlock()
	<-acquired
	assert.Eventually(t, func() bool { return l.Held() == 0 }, time.Second, time.Millisecond)
}

package cleanup

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/caching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) Purge() int {
	p.calls.Add(1)
	return 0
}

func (p *countingPurger) Len() int { return 0 }

func TestSweepRemovesExpiredEntries(t *testing.T) {
	posts := caching.NewStore[string](time.Millisecond)
	menus := caching.NewStore[[]string](time.Hour)
	for i := 0; i < 1000; i++ {
		posts.Set(fmt.Sprintf("recent-posts-%d", i), "<ul></ul>")
	}
	menus.Set("summaries", []string{"Primary"})

	w := NewWorker(&Config{CleanupInterval: time.Minute, VerboseReporting: true}, nil)
	w.Add("recent-posts", posts)
	w.Add("menu-summaries", menus)
	w.Add("nil", nil)

	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 1000, w.Sweep())
	assert.Zero(t, posts.Len())
	assert.Equal(t, 1, menus.Len())
	assert.Zero(t, w.Sweep())
}

func TestStartSweepsOnEveryTick(t *testing.T) {
	p := &countingPurger{}
	w := NewWorker(&Config{CleanupInterval: 5 * time.Millisecond}, nil)
	w.Add("counting", p)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return p.calls.Load() >= 2 }, 5*time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.Fail(t, "worker did not stop after cancel")
	}
}

func TestStartDisabledReturnsImmediately(t *testing.T) {
	p := &countingPurger{}
	w := NewWorker(&Config{CleanupInterval: 0}, nil)
	w.Add("counting", p)

	w.Start(context.Background())
	assert.Zero(t, p.calls.Load())
}

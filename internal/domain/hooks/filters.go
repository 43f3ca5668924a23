// Package hooks provides named extension points. A Chain holds the filters
// registered against one name and threads a value through them in order.
package hooks

import (
	"sort"
	"sync"
)

// DefaultPriority is the priority Add registers filters at.
const DefaultPriority = 10

// Filter transforms a value on its way through a Chain.
type Filter[T any] func(T) T

type registered[T any] struct {
	priority int
	seq      int
	fn       Filter[T]
}

// Chain is a named, ordered list of filters for values of type T.
type Chain[T any] struct {
	name    string
	mu      sync.RWMutex
	filters []registered[T]
	seq     int
}

// NewChain returns an empty chain for the named extension point.
func NewChain[T any](name string) *Chain[T] {
	return &Chain[T]{name: name}
}

// Name returns the extension point name.
func (c *Chain[T]) Name() string {
	return c.name
}

// Add registers fn at DefaultPriority.
func (c *Chain[T]) Add(fn Filter[T]) {
	c.AddPriority(DefaultPriority, fn)
}

// AddPriority registers fn. Lower priorities run first; equal priorities run
// in registration order.
func (c *Chain[T]) AddPriority(priority int, fn Filter[T]) {
	if fn == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.filters = append(c.filters, registered[T]{priority: priority, seq: c.seq, fn: fn})
	sort.SliceStable(c.filters, func(i, j int) bool {
		if c.filters[i].priority != c.filters[j].priority {
			return c.filters[i].priority < c.filters[j].priority
		}
		return c.filters[i].seq < c.filters[j].seq
	})
}

// Apply passes value through every registered filter and returns the result.
func (c *Chain[T]) Apply(value T) T {
	c.mu.RLock()
	filters := make([]registered[T], len(c.filters))
	copy(filters, c.filters)
	c.mu.RUnlock()

	for _, f := range filters {
		value = f.fn(value)
	}
	return value
}

// Len returns the number of registered filters.
func (c *Chain[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.filters)
}

// Reset removes every filter.
func (c *Chain[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = nil
}

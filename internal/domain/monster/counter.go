package monster

import "sync/atomic"

// Counter numbers sub-widget renders. It starts at 1 and is shared by every
// Monster render in the process, so placeholder ids never repeat on a page.
type Counter struct {
	next atomic.Int64
}

func NewCounter() *Counter {
	c := &Counter{}
	c.next.Store(1)
	return c
}

// Next returns the current value and advances the counter.
func (c *Counter) Next() int64 {
	return c.next.Add(1) - 1
}

// Current returns the value the next sub-widget will receive.
func (c *Counter) Current() int64 {
	return c.next.Load()
}

package arena

import (
	"fmt"
	"math"
)

// Counter mints monotonically increasing symbol numbers. The zero Counter
// starts at 1, leaving 0 free for a reserved well-known symbol.
type Counter struct {
	name string
	last uint32
}

func NewCounter(name string) Counter {
	return Counter{name: name}
}

// Next returns a number never returned before by this counter.
func (c *Counter) Next() uint32 {
	if c.last == math.MaxUint32 {
		panic(fmt.Sprintf("counter %s exhausted", c.name))
	}
	c.last++
	return c.last
}

// Peek reports the last minted number (0 if none).
func (c *Counter) Peek() uint32 {
	return c.last
}

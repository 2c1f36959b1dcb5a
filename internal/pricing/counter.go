package pricing

import "strings"

// Direction of a unit counter step.
type Direction int

const (
	Down Direction = -1
	Up   Direction = 1
)

// ParseDirection accepts "up"/"down", "inc"/"dec" and "+"/"-".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "inc", "increment", "+":
		return Up, true
	case "down", "dec", "decrement", "-":
		return Down, true
	}
	return 0, false
}

// Counter is a unit-step integer bounded below by 1 and above by Ceiling.
// A zero ceiling leaves the counter unbounded above.
type Counter struct {
	value   int
	ceiling int
}

// NewCounter clamps initial into [1, ceiling].
func NewCounter(initial, ceiling int) Counter {
	c := Counter{value: initial, ceiling: ceiling}
	c.clamp()
	return c
}

func (c Counter) Value() int   { return c.value }
func (c Counter) Ceiling() int { return c.ceiling }

// Adjust moves the counter one step and reports whether it changed.
func (c *Counter) Adjust(d Direction) bool {
	switch d {
	case Up:
		if c.ceiling > 0 && c.value >= c.ceiling {
			return false
		}
		c.value++
		return true
	case Down:
		if c.value <= 1 {
			return false
		}
		c.value--
		return true
	}
	return false
}

func (c *Counter) clamp() {
	if c.value < 1 {
		c.value = 1
	}
	if c.ceiling > 0 && c.value > c.ceiling {
		c.value = c.ceiling
	}
}

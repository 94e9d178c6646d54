package combat

import "fmt"

// Unbounded marks a Counter with no upper cap.
const Unbounded = -1

// Counter is a token-style counter clamped to [0, Max].
type Counter struct {
	Value int
	// Max is the inclusive cap, or Unbounded.
	Max int
}

// Add increases the counter by n, capped at Max.
func (c *Counter) Add(n int) {
	c.Value += n
	if c.Max != Unbounded && c.Value > c.Max {
		c.Value = c.Max
	}
}

// Sub decreases the counter by n, floored at zero.
func (c *Counter) Sub(n int) {
	c.Value -= n
	if c.Value < 0 {
		c.Value = 0
	}
}

// Take empties the counter and returns what it held.
func (c *Counter) Take() int {
	v := c.Value
	c.Value = 0
	return v
}

// Check reports a value outside [0, Max].
func (c Counter) Check(name string) error {
	if c.Value < 0 || (c.Max != Unbounded && c.Value > c.Max) {
		return fmt.Errorf("%w: %s = %d outside [0, %s]", ErrInvariant, name, c.Value, c.maxString())
	}
	return nil
}

func (c Counter) maxString() string {
	if c.Max == Unbounded {
		return "∞"
	}
	return fmt.Sprintf("%d", c.Max)
}

// Timer counts down the rounds of a temporary effect.
type Timer struct {
	Remaining int
	// Max is the duration set by Start.
	Max int
}

// Start (re)arms the timer for Max rounds.
func (t *Timer) Start() { t.Remaining = t.Max }

// Active reports whether rounds remain.
func (t Timer) Active() bool { return t.Remaining > 0 }

// Tick consumes one round and reports whether the timer just expired.
func (t *Timer) Tick() bool {
	if t.Remaining <= 0 {
		return false
	}
	t.Remaining--
	return t.Remaining == 0
}

// Check reports a remaining duration outside [0, Max].
func (t Timer) Check(name string) error {
	if t.Remaining < 0 || t.Remaining > t.Max {
		return fmt.Errorf("%w: %s = %d outside [0, %d]", ErrInvariant, name, t.Remaining, t.Max)
	}
	return nil
}

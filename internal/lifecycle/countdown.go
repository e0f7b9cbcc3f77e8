package lifecycle

// CountdownState is the phase of a redirect countdown.
type CountdownState int

const (
	// Counting means the countdown is running; Remaining() ticks are left.
	Counting CountdownState = iota
	// Firing means the countdown reached zero on the last tick; the
	// caller should perform the redirect now.
	Firing
	// Fired means the redirect has been performed.
	Fired
	// Cancelled means the countdown was aborted before firing.
	Cancelled
)

// DefaultCountdownTicks is the number of ticks before a redirect fires.
const DefaultCountdownTicks = 3

// Countdown is the redirect countdown state machine. It holds no timer;
// the caller advances it with Tick on its own clock and may Cancel it
// when navigating away.
type Countdown struct {
	remaining int
	state     CountdownState
}

// NewCountdown creates a countdown with the given number of ticks.
// Non-positive values use DefaultCountdownTicks.
func NewCountdown(ticks int) *Countdown {
	if ticks <= 0 {
		ticks = DefaultCountdownTicks
	}
	return &Countdown{remaining: ticks, state: Counting}
}

// State returns the current phase.
func (c *Countdown) State() CountdownState {
	return c.state
}

// Remaining returns the ticks left before firing.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Tick advances the countdown by one step and returns the new state.
// Ticking transitions Counting to Firing when the count reaches zero,
// and Firing to Fired. Fired and Cancelled are terminal.
func (c *Countdown) Tick() CountdownState {
	switch c.state {
	case Counting:
		c.remaining--
		if c.remaining <= 0 {
			c.remaining = 0
			c.state = Firing
		}
	case Firing:
		c.state = Fired
	}
	return c.state
}

// Cancel aborts the countdown unless it already fired.
func (c *Countdown) Cancel() {
	if c.state == Counting || c.state == Firing {
		c.state = Cancelled
	}
}

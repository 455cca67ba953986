package bastion

// Cooldown is a tick-counted ability gate. It replaces wall-clock timers:
// the owner ticks it once per simulation frame and checks Ready at
// tick time, so ability execution always happens on the simulation
// goroutine.
//
// A new Cooldown starts on cooldown; the first cast becomes possible after
// one full interval.
type Cooldown struct {
	interval  int
	remaining int
}

// NewCooldown returns a cooldown with the given interval in ticks.
// Panics if ticks < 1.
func NewCooldown(ticks int) Cooldown {
	if ticks < 1 {
		panic("bastion: cooldown interval must be at least one tick")
	}
	return Cooldown{interval: ticks, remaining: ticks}
}

// Tick counts one frame off the cooldown. Safe to call while ready.
func (c *Cooldown) Tick() {
	if c.remaining > 0 {
		c.remaining--
	}
}

// Ready reports whether the cooldown has fully elapsed. A ready cooldown
// stays ready until Reset; unsuccessful cast attempts do not re-arm it.
func (c *Cooldown) Ready() bool { return c.remaining == 0 }

// Reset re-arms the cooldown for a full interval.
func (c *Cooldown) Reset() { c.remaining = c.interval }

// Remaining returns the ticks left until ready.
func (c *Cooldown) Remaining() int { return c.remaining }

// Interval returns the configured interval in ticks.
func (c *Cooldown) Interval() int { return c.interval }

// SetInterval changes the interval for future resets without touching the
// current countdown. Panics if ticks < 1.
func (c *Cooldown) SetInterval(ticks int) {
	if ticks < 1 {
		panic("bastion: cooldown interval must be at least one tick")
	}
	c.interval = ticks
}

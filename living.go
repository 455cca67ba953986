package bastion

// Living adds health, velocity-driven movement, and invincibility frames to
// Core. Concrete types set MaxHealth once at construction; it is constant
// per type (per stage, for towers).
type Living struct {
	Core

	Health    int
	MaxHealth int

	// Velocity is applied to Pos once per tick.
	Velocity Vec2

	// Invincible suppresses all damage while set.
	Invincible bool
	// InvincibilityFrames suppresses damage while positive; decremented
	// once per tick regardless of how often Damage is called.
	InvincibilityFrames int

	// ScreenBound hard-clamps the position into the viewport each tick.
	ScreenBound bool
	// ShowHealthBar makes the registry attach a HealthBar companion at
	// registration time.
	ShowHealthBar bool

	OnDamage func()
	OnHeal   func()
	OnDeath  func()
}

// living is the capability the registry checks for the health-bar companion.
type living interface {
	vitals() *Living
}

func (l *Living) vitals() *Living { return l }

// Damage subtracts amount from health, clamped at zero. A no-op while
// invincible, while invincibility frames remain, or once the entity is
// dying or removed. Reaching zero health fires OnDeath and disposes the
// entity; OnDeath can therefore fire at most once.
func (l *Living) Damage(amount int) {
	if l.removed || l.pendingRemoval || l.Invincible || l.InvincibilityFrames > 0 {
		return
	}
	l.Health -= amount
	if l.Health < 0 {
		l.Health = 0
	}
	if l.OnDamage != nil {
		l.OnDamage()
	}
	if l.Health == 0 {
		if l.OnDeath != nil {
			l.OnDeath()
		}
		l.Dispose()
	}
}

// Heal adds amount to health, clamped at MaxHealth.
func (l *Living) Heal(amount int) {
	if l.removed {
		return
	}
	l.Health += amount
	if l.Health > l.MaxHealth {
		l.Health = l.MaxHealth
	}
	if l.OnHeal != nil {
		l.OnHeal()
	}
}

// HealthFraction returns health as a fraction of MaxHealth in [0, 1].
func (l *Living) HealthFraction() float64 {
	if l.MaxHealth <= 0 {
		return 0
	}
	return float64(l.Health) / float64(l.MaxHealth)
}

// Tick applies default per-frame motion: decrement invincibility frames,
// move by Velocity, and, when screen-bound, clamp the position so the
// entity's bounds stay inside the viewport (hard clamp, not bounce).
func (l *Living) Tick(frame int64) {
	if l.InvincibilityFrames > 0 {
		l.InvincibilityFrames--
	}
	l.Pos = l.Pos.Add(l.Velocity)
	if !l.ScreenBound || l.reg == nil || l.self == nil {
		return
	}
	b := l.self.Bounds()
	vp := l.reg.viewport
	l.Pos.X = clamp(l.Pos.X, 0, vp.Width-b.Width)
	l.Pos.Y = clamp(l.Pos.Y, 0, vp.Height-b.Height)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package game

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bastion"
)

// projectile behavior knobs shared by every tower's munitions.
const (
	// fanSpeedMax bounds each axis of a fan-out fragment's velocity.
	fanSpeedMax = 5.0
	// orbContactRange is how close a healer orb must get before it starts
	// transferring health.
	orbContactRange = 10.0
	// orbPulseTicks is the delay between individual heal pulses while an
	// orb is latched onto its target.
	orbPulseTicks = 10
	// orbSpeed is a healer orb's travel speed in pixels per tick.
	orbSpeed = 3.0
)

// Projectile is a parameterized munition. Every tower fires the same type
// with different knobs: a sniper round is a fast projectile with a huge
// travel budget, a mine is a zero-velocity one with a long lifespan, a
// grenade is one with an area radius and, at the top stage, a fan count.
//
// A projectile damages enemies only; it passes through towers and the
// player.
type Projectile struct {
	bastion.Living

	// Radius is the contact radius. Any enemy within it triggers the hit.
	Radius float64
	// Damage dealt on hit, per enemy when AreaRadius is set.
	Damage int
	// TravelBudget caps the total Manhattan distance flown; reaching it
	// detonates the projectile where it stands. Zero means unlimited.
	TravelBudget float64
	// MoveTicks halts the projectile after this many ticks of drift.
	// Zero means it never halts. Mines drift briefly, then arm in place.
	MoveTicks int
	// LifeSpan disposes the projectile quietly after this many ticks
	// without a hit. Zero means unlimited.
	LifeSpan int
	// AreaRadius makes the hit damage every enemy within it instead of
	// only the contacted one. Zero means single-target.
	AreaRadius float64
	// FanCount spawns this many half-damage fragments with randomized
	// velocities when the projectile detonates. Fragments never fan again.
	FanCount int
	// Color fills the projectile's square.
	Color color.Color

	traveled float64
	age      int
}

// NewProjectile creates a single-target munition centered at the given
// point, moving with the given per-tick velocity.
func NewProjectile(center, velocity bastion.Vec2, radius float64, damage int) *Projectile {
	p := &Projectile{
		Radius: radius,
		Damage: damage,
		Color:  color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff},
	}
	p.Pos = bastion.Vec2{X: center.X - radius, Y: center.Y - radius}
	p.Velocity = velocity
	p.SetPriority(40)
	return p
}

// Center returns the projectile's center point.
func (p *Projectile) Center() bastion.Vec2 {
	return p.Bounds().Center()
}

// Traveled returns the Manhattan distance flown so far.
func (p *Projectile) Traveled() float64 { return p.traveled }

// Tick moves the projectile, spends its travel budget, ages it out, and
// resolves contact with enemies.
func (p *Projectile) Tick(frame int64) {
	p.age++
	if p.MoveTicks > 0 && p.age > p.MoveTicks {
		p.Velocity = bastion.Vec2{}
	}
	p.Living.Tick(frame)
	p.traveled += math.Abs(p.Velocity.X) + math.Abs(p.Velocity.Y)

	if p.LifeSpan > 0 && p.age > p.LifeSpan {
		p.Dispose()
		return
	}
	if p.Registry() == nil {
		return
	}
	if hit := bastion.NearbyOf[*Enemy](p.Registry(), p.Center(), p.Radius); len(hit) > 0 {
		if p.AreaRadius > 0 {
			p.detonate()
		} else {
			hit[0].Damage(p.Damage)
			p.fanOut()
		}
		p.Dispose()
		return
	}
	if p.TravelBudget > 0 && p.traveled >= p.TravelBudget {
		p.detonate()
		p.Dispose()
	}
}

// detonate applies area damage around the projectile's current center, then
// fans out fragments.
func (p *Projectile) detonate() {
	if p.AreaRadius > 0 {
		for _, e := range bastion.NearbyOf[*Enemy](p.Registry(), p.Center(), p.AreaRadius) {
			e.Damage(p.Damage)
		}
	}
	p.fanOut()
}

// fanOut scatters half-damage fragments in random directions. Fragments
// inherit the parent's contact radius and color but never fan themselves.
func (p *Projectile) fanOut() {
	for i := 0; i < p.FanCount; i++ {
		frag := NewProjectile(p.Center(), randomFanVelocity(), p.Radius, p.Damage/2)
		frag.Color = p.Color
		frag.LifeSpan = TicksPerSecond * 2
		p.Registry().Register(frag)
		frag.Spawn()
	}
}

// randomFanVelocity picks a velocity with each axis uniform in
// [-fanSpeedMax, fanSpeedMax], rerolled until it is nonzero so a fragment
// never sits on its origin.
func randomFanVelocity() bastion.Vec2 {
	for {
		v := bastion.Vec2{
			X: (rand.Float64()*2 - 1) * fanSpeedMax,
			Y: (rand.Float64()*2 - 1) * fanSpeedMax,
		}
		if v.X != 0 || v.Y != 0 {
			return v
		}
	}
}

// Draw fills the projectile's square.
func (p *Projectile) Draw(screen *ebiten.Image) {
	bastion.FillRect(screen, p.Bounds(), p.Color)
}

// Bounds is the square of side 2*Radius centered on the projectile.
func (p *Projectile) Bounds() bastion.Rect {
	return p.Pos.AsRect(2*p.Radius, 2*p.Radius)
}

// HealerOrb is the healer tower's munition: it seeks the most wounded tower
// in range and transfers health to it in pulses until its pool runs dry.
// When its current target is healed to full it picks the next most wounded
// tower; with nothing left to heal it drifts in place until its lifespan
// lapses.
type HealerOrb struct {
	bastion.Living

	// Pool is the total health the orb can transfer before dissolving.
	Pool int
	// Rate is the health transferred per pulse.
	Rate int
	// DetectRadius bounds target acquisition around the orb.
	DetectRadius float64
	// LifeSpan disposes the orb after this many ticks even with pool
	// left, so an orb with nothing to heal does not linger forever.
	LifeSpan int

	age    int
	pulse  bastion.Cooldown
	target AnyTower
}

// NewHealerOrb creates an orb centered at the given point.
func NewHealerOrb(center bastion.Vec2, pool, rate int, detectRadius float64) *HealerOrb {
	o := &HealerOrb{
		Pool:         pool,
		Rate:         rate,
		DetectRadius: detectRadius,
		LifeSpan:     10 * TicksPerSecond,
		pulse:        bastion.NewCooldown(orbPulseTicks),
	}
	o.Pos = bastion.Vec2{X: center.X - orbContactRange/2, Y: center.Y - orbContactRange/2}
	o.SetPriority(40)
	return o
}

// Target returns the tower the orb is currently seeking, or nil.
func (o *HealerOrb) Target() AnyTower { return o.target }

// Tick acquires or refreshes the target, steers toward it, and pulses
// health into it on contact.
func (o *HealerOrb) Tick(frame int64) {
	o.age++
	o.pulse.Tick()
	if o.Pool <= 0 || (o.LifeSpan > 0 && o.age > o.LifeSpan) {
		o.Dispose()
		return
	}
	if o.Registry() == nil {
		return
	}

	if o.target != nil {
		tc := o.target.TowerRef()
		if tc.Removed() || tc.PendingRemoval() || tc.Health >= tc.MaxHealth {
			o.target = nil
		}
	}
	if o.target == nil {
		o.target = o.acquireTarget()
	}
	if o.target == nil {
		o.Velocity = bastion.Vec2{}
		o.Living.Tick(frame)
		return
	}

	dst := o.target.Bounds().Center()
	if o.Center().Dist(dst) <= orbContactRange {
		o.Velocity = bastion.Vec2{}
		o.Living.Tick(frame)
		if o.pulse.Ready() {
			amount := min(o.Rate, o.Pool)
			o.target.TowerRef().Heal(amount)
			o.Pool -= amount
			o.pulse.Reset()
		}
		return
	}
	o.Velocity = bastion.TravelVelocity(o.Center(), dst, orbSpeed)
	o.Living.Tick(frame)
}

// acquireTarget returns the wounded tower with the lowest health fraction
// within DetectRadius. Ties keep the first in registry order.
func (o *HealerOrb) acquireTarget() AnyTower {
	var best AnyTower
	bestFrac := 0.0
	for _, t := range bastion.NearbyOf[AnyTower](o.Registry(), o.Center(), o.DetectRadius) {
		tc := t.TowerRef()
		if tc.PendingRemoval() || tc.Health >= tc.MaxHealth {
			continue
		}
		f := tc.HealthFraction()
		if best == nil || f < bestFrac {
			best, bestFrac = t, f
		}
	}
	return best
}

// Center returns the orb's center point.
func (o *HealerOrb) Center() bastion.Vec2 {
	return o.Bounds().Center()
}

// Draw fills the orb's square in healer green.
func (o *HealerOrb) Draw(screen *ebiten.Image) {
	bastion.FillRect(screen, o.Bounds(), color.RGBA{R: 0x66, G: 0xee, B: 0x99, A: 0xff})
}

// Bounds is the orb's fixed-size square.
func (o *HealerOrb) Bounds() bastion.Rect {
	return o.Pos.AsRect(orbContactRange, orbContactRange)
}

package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bastion"
)

// Enemy tuning. The retarget sweep starts tight once the enemy has fought
// before (a replacement target is usually near the one that just fell) and
// wide on the first acquisition.
const (
	enemySize          = 30
	enemyMaxHealth     = 100
	enemyMaxSpeed      = 2.0
	enemyContactRange  = 10.0
	enemyContactDamage = 25

	retargetInterval   = 30
	retargetBaseNarrow = 20.0
	retargetBaseWide   = 300.0
	retargetSweeps     = 5

	attackCooldownTicks = 30
)

// enemy animation states.
const (
	enemyStateWalk   bastion.StateKey = "walk"
	enemyStateAttack bastion.StateKey = "attack"
)

// Enemy walks toward the nearest tower it has committed to, stops at
// contact range, and bites on a tick cooldown. It retargets on a fixed
// cadence whenever it has no live target, sweeping an expanding radius and
// committing to the first tower found in registry order.
//
// The attack shares the towers' busy-poll asymmetry: a ready cooldown stays
// ready until a bite actually lands.
type Enemy struct {
	bastion.Sprite

	target    AnyTower
	hadTarget bool
	retarget  bastion.Cooldown
	attack    bastion.Cooldown
}

// NewEnemy creates an enemy at the given position.
func NewEnemy(pos bastion.Vec2) *Enemy {
	e := &Enemy{
		Sprite:   bastion.NewSprite(enemyStateWalk, 6),
		retarget: bastion.NewCooldown(retargetInterval),
		attack:   bastion.NewCooldown(attackCooldownTicks),
	}
	e.Pos = pos
	e.Health = enemyMaxHealth
	e.MaxHealth = enemyMaxHealth
	e.ShowHealthBar = true
	e.SetPriority(35)
	body := color.RGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}
	e.AddState(enemyStateWalk, []*ebiten.Image{solidFrame(enemySize, body)})
	e.AddState(enemyStateAttack, []*ebiten.Image{
		solidFrame(enemySize, color.RGBA{R: 0xff, G: 0x90, B: 0x90, A: 0xff}),
		solidFrame(enemySize, body),
	})
	return e
}

// Target returns the tower the enemy is committed to, or nil while
// searching.
func (e *Enemy) Target() AnyTower { return e.target }

// OnTarget reports whether the enemy is within contact range of its target.
func (e *Enemy) OnTarget() bool {
	if e.target == nil {
		return false
	}
	return e.Bounds().Center().Dist(e.target.Bounds().Center()) <= enemyContactRange
}

// Tick moves toward the committed target, bites it at contact range, and
// periodically re-scans for a target while it has none.
func (e *Enemy) Tick(frame int64) {
	e.attack.Tick()
	if e.target != nil {
		tc := e.target.TowerRef()
		if tc.Removed() || tc.PendingRemoval() {
			e.target = nil
		}
	}
	if e.target == nil {
		e.Velocity = bastion.Vec2{}
		e.retarget.Tick()
		if e.retarget.Ready() {
			e.target = e.acquireTarget()
			e.retarget.Reset()
			if e.target != nil {
				e.hadTarget = true
			}
		}
		e.Sprite.Tick(frame)
		return
	}

	if e.OnTarget() {
		e.Velocity = bastion.Vec2{}
		if e.attack.Ready() {
			e.target.TowerRef().Damage(enemyContactDamage)
			e.attack.Reset()
			if e.HasState(enemyStateAttack) {
				e.QueueState(enemyStateAttack, nil, 1)
			}
		}
	} else {
		e.Velocity = bastion.TravelVelocity(e.Bounds().Center(), e.target.Bounds().Center(), enemyMaxSpeed)
	}
	e.Sprite.Tick(frame)
}

// acquireTarget sweeps expanding radii around the enemy and commits to the
// first tower found in registry order. Returns nil when even the widest
// sweep is empty.
func (e *Enemy) acquireTarget() AnyTower {
	base := retargetBaseWide
	if e.hadTarget {
		base = retargetBaseNarrow
	}
	from := e.Bounds().Center()
	for m := 1; m <= retargetSweeps; m++ {
		for _, tw := range bastion.NearbyOf[AnyTower](e.Registry(), from, base*float64(m)) {
			tc := tw.TowerRef()
			if tc.Removed() || tc.PendingRemoval() {
				continue
			}
			return tw
		}
	}
	return nil
}

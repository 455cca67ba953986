// Package game implements the tower-defense session content on top of the
// bastion core: the placement grid, towers with staged stat tables, enemies,
// the player, and the projectile family.
package game

import (
	"github.com/phanxgames/bastion"
)

// TicksPerSecond is the fixed simulation rate the stat tables are tuned
// for. Cooldowns and regeneration are expressed in these ticks.
const TicksPerSecond = 60

// TargetType selects what kind of entity a tower's ability affects.
type TargetType uint8

const (
	// TargetNone casts untargeted self-effects (minefields, healers).
	TargetNone TargetType = iota
	// TargetEnemy scans for enemies within the area of effect.
	TargetEnemy
	// TargetTower scans for other towers within the area of effect.
	TargetTower
	// TargetPlayer affects the player wherever they are.
	TargetPlayer
)

// Stage is a tower's upgrade tier. Upgrading rebinds the stat table in
// place; there is no path back down.
type Stage int

const (
	Stage1 Stage = iota + 1
	Stage2
	Stage3
)

// Next returns the following stage, or false from the final stage.
func (s Stage) Next() (Stage, bool) {
	switch s {
	case Stage1:
		return Stage2, true
	case Stage2:
		return Stage3, true
	default:
		return 0, false
	}
}

// Stats is one stage's row of a tower's stat table.
type Stats struct {
	MaxHealth    int
	Damage       int
	Cooldown     int // minimum ticks between successful casts
	AreaOfEffect float64
	Regeneration int // health regained per second, up to MaxHealth
	BuildCost    int
	UpgradeCost  int
}

// Animation states shared by all towers. The ability state is optional;
// towers without one cast instantly.
const (
	StateIdle    bastion.StateKey = "idle"
	StateAbility bastion.StateKey = "ability"
)

// abilityLoops is how many times the ability animation plays before the
// cooldown re-arms.
const abilityLoops = 1

// Tower is the common behavior of every placeable tower: a sprite with a
// stage-keyed stat table, an ability cooldown counted in simulation ticks,
// and a target-type selector. Concrete tower types embed Tower and bind
// their ability with setAbility.
//
// Ability timing is deliberately asymmetric: a successful cast re-arms the
// cooldown, but finding no targets does not. The tower retries every
// subsequent tick until a target appears.
type Tower struct {
	bastion.Sprite

	target TargetType
	stage  Stage
	table  map[Stage]Stats
	stats  Stats

	cooldown  bastion.Cooldown
	casting   bool
	onAbility func(targets []bastion.Entity)

	cell *Cell
}

// AnyTower matches every concrete tower type in queries.
type AnyTower interface {
	bastion.Entity
	TowerRef() *Tower
}

// TowerRef returns the embedded Tower.
func (t *Tower) TowerRef() *Tower { return t }

// newTower builds the shared tower base from a stage table.
func newTower(target TargetType, table map[Stage]Stats) Tower {
	stats := table[Stage1]
	tw := Tower{
		Sprite:   bastion.NewSprite(StateIdle, 4),
		target:   target,
		stage:    Stage1,
		table:    table,
		stats:    stats,
		cooldown: bastion.NewCooldown(stats.Cooldown),
	}
	tw.Health = stats.MaxHealth
	tw.MaxHealth = stats.MaxHealth
	tw.ShowHealthBar = true
	tw.SetPriority(30)
	return tw
}

// setAbility binds the concrete tower's ability. Called once from each
// concrete constructor.
func (t *Tower) setAbility(fn func(targets []bastion.Entity)) {
	t.onAbility = fn
}

// Stage returns the tower's current upgrade tier.
func (t *Tower) Stage() Stage { return t.stage }

// Stats returns the stat row for the current stage.
func (t *Tower) Stats() Stats { return t.stats }

// Target returns the tower's target-type selector.
func (t *Tower) Target() TargetType { return t.target }

// Cell returns the grid cell housing the tower, or nil when unplaced.
func (t *Tower) Cell() *Cell { return t.cell }

// CooldownRemaining returns the ticks left until the ability is ready.
func (t *Tower) CooldownRemaining() int { return t.cooldown.Remaining() }

// AbilityReady reports whether the tower is in its ready/polling state.
func (t *Tower) AbilityReady() bool { return t.cooldown.Ready() && !t.casting }

// Upgrade advances the tower one stage and rebinds its stat table: health
// is restored to the new maximum and the cooldown interval is rebased.
// Returns false from the final stage.
func (t *Tower) Upgrade() bool {
	next, ok := t.stage.Next()
	if !ok {
		return false
	}
	t.stage = next
	t.stats = t.table[next]
	t.MaxHealth = t.stats.MaxHealth
	t.Health = t.stats.MaxHealth
	t.cooldown.SetInterval(t.stats.Cooldown)
	return true
}

// Tick advances animation and motion, accrues regeneration, counts the
// cooldown, and attempts the ability whenever it is ready.
func (t *Tower) Tick(frame int64) {
	t.Sprite.Tick(frame)
	if t.stats.Regeneration > 0 && frame%TicksPerSecond == 0 {
		t.Heal(t.stats.Regeneration)
	}
	t.cooldown.Tick()
	if t.cooldown.Ready() && !t.casting {
		t.attemptAbility()
	}
}

// attemptAbility acquires targets and casts. No targets (for a targeted
// tower) leaves the cooldown ready so the attempt repeats next tick.
func (t *Tower) attemptAbility() {
	if t.onAbility == nil || t.Registry() == nil {
		return
	}
	targets := t.acquireTargets()
	if len(targets) == 0 && t.target != TargetNone {
		return
	}
	if t.HasState(StateAbility) {
		// The cooldown re-arms only after the cast animation has
		// played out.
		t.casting = true
		t.QueueState(StateAbility, func() {
			t.casting = false
			t.cooldown.Reset()
		}, abilityLoops)
	} else {
		t.cooldown.Reset()
	}
	t.onAbility(targets)
}

func (t *Tower) acquireTargets() []bastion.Entity {
	reg := t.Registry()
	switch t.target {
	case TargetEnemy:
		enemies := bastion.NearbyOf[*Enemy](reg, t.Pos, t.stats.AreaOfEffect)
		out := make([]bastion.Entity, 0, len(enemies))
		for _, e := range enemies {
			out = append(out, e)
		}
		return out
	case TargetTower:
		towers := bastion.NearbyOf[AnyTower](reg, t.Pos, t.stats.AreaOfEffect)
		out := make([]bastion.Entity, 0, len(towers))
		for _, other := range towers {
			if other.TowerRef() == t || other.TowerRef().PendingRemoval() {
				continue
			}
			out = append(out, other)
		}
		return out
	case TargetPlayer:
		players := bastion.EntitiesOf[*Player](reg)
		out := make([]bastion.Entity, 0, len(players))
		for _, p := range players {
			out = append(out, p)
		}
		return out
	default:
		return nil
	}
}

package game

import (
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bastion"
)

// towerSize is the side of every tower's square frame, in pixels. Sized to
// sit inside the default grid cell with a visible margin.
const towerSize = 40

// solidFrame builds one flat-colored square frame. All built-in frames are
// flat color; frame counts only pace the animations.
func solidFrame(size int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	img.Fill(c)
	return img
}

// addTowerStates registers the idle frame and a two-frame ability flash.
func addTowerStates(t *Tower, idle, flash color.Color) {
	t.AddState(StateIdle, []*ebiten.Image{solidFrame(towerSize, idle)})
	t.AddState(StateAbility, []*ebiten.Image{
		solidFrame(towerSize, flash),
		solidFrame(towerSize, idle),
	})
}

// CoreTower is the heart of the base: tough, self-regenerating, and pulsing
// area damage into every enemy in range. Losing it loses the session.
type CoreTower struct {
	Tower
}

var coreStats = map[Stage]Stats{
	Stage1: {MaxHealth: 1000, Damage: 40, Cooldown: 60, AreaOfEffect: 150, Regeneration: 1, BuildCost: 0, UpgradeCost: 400},
	Stage2: {MaxHealth: 1500, Damage: 50, Cooldown: 60, AreaOfEffect: 150, Regeneration: 2, UpgradeCost: 900},
	Stage3: {MaxHealth: 2500, Damage: 80, Cooldown: 60, AreaOfEffect: 250, Regeneration: 3},
}

// NewCoreTower creates the core tower. The pulse hits every acquired target
// directly; there is no projectile to dodge.
func NewCoreTower() *CoreTower {
	t := &CoreTower{Tower: newTower(TargetEnemy, coreStats)}
	addTowerStates(&t.Tower, color.RGBA{R: 0x4f, G: 0x8f, B: 0xff, A: 0xff}, color.RGBA{R: 0xcf, G: 0xe3, B: 0xff, A: 0xff})
	t.setAbility(func(targets []bastion.Entity) {
		for _, target := range targets {
			if e, ok := target.(*Enemy); ok {
				e.Damage(t.Stats().Damage)
			}
		}
	})
	return t
}

// ArcherTower fires a single arrow at the first enemy in range.
type ArcherTower struct {
	Tower
}

var archerStats = map[Stage]Stats{
	Stage1: {MaxHealth: 250, Damage: 30, Cooldown: 60, AreaOfEffect: 200, BuildCost: 100, UpgradeCost: 150},
	Stage2: {MaxHealth: 250, Damage: 45, Cooldown: 60, AreaOfEffect: 200, UpgradeCost: 250},
	Stage3: {MaxHealth: 250, Damage: 60, Cooldown: 60, AreaOfEffect: 200},
}

const (
	arrowSpeed  = 6.0
	arrowRadius = 4.0
)

// NewArcherTower creates an archer tower.
func NewArcherTower() *ArcherTower {
	t := &ArcherTower{Tower: newTower(TargetEnemy, archerStats)}
	addTowerStates(&t.Tower, color.RGBA{R: 0x6b, G: 0xa3, B: 0x3c, A: 0xff}, color.RGBA{R: 0xd2, G: 0xf0, B: 0xb0, A: 0xff})
	t.setAbility(func(targets []bastion.Entity) {
		t.fireArrow(targets[0], arrowSpeed, t.Stats().Damage)
	})
	return t
}

// fireArrow launches a single-target projectile from the tower's center at
// the target's current center. The arrow's travel budget is half again the
// tower's reach, so a target that steps out of range can still be clipped.
func (t *Tower) fireArrow(target bastion.Entity, speed float64, damage int) {
	origin := t.Bounds().Center()
	vel := bastion.TravelVelocity(origin, target.Bounds().Center(), speed)
	arrow := NewProjectile(origin, vel, arrowRadius, damage)
	arrow.TravelBudget = t.Stats().AreaOfEffect * 1.5
	t.Registry().Register(arrow)
	arrow.Spawn()
}

// SniperTower lands hits instantly at very long range, trading fire rate
// for reach. The shot is hitscan; there is no projectile to intercept.
type SniperTower struct {
	Tower
}

var sniperStats = map[Stage]Stats{
	Stage1: {MaxHealth: 250, Damage: 150, Cooldown: 180, AreaOfEffect: 400, BuildCost: 250, UpgradeCost: 300},
	Stage2: {MaxHealth: 250, Damage: 300, Cooldown: 180, AreaOfEffect: 400, UpgradeCost: 500},
	Stage3: {MaxHealth: 250, Damage: 600, Cooldown: 180, AreaOfEffect: 400},
}

// NewSniperTower creates a sniper tower.
func NewSniperTower() *SniperTower {
	t := &SniperTower{Tower: newTower(TargetEnemy, sniperStats)}
	addTowerStates(&t.Tower, color.RGBA{R: 0x8a, G: 0x5c, B: 0xc9, A: 0xff}, color.RGBA{R: 0xe4, G: 0xd4, B: 0xff, A: 0xff})
	t.setAbility(func(targets []bastion.Entity) {
		if e, ok := targets[0].(*Enemy); ok {
			e.Damage(t.Stats().Damage)
		}
	})
	return t
}

// GrenadierTower lobs a shell that detonates where its travel budget runs
// out, damaging everything in the blast. At the top stage the blast fans
// out half-damage fragments.
type GrenadierTower struct {
	Tower
}

var grenadierStats = map[Stage]Stats{
	Stage1: {MaxHealth: 300, Damage: 50, Cooldown: 120, AreaOfEffect: 250, BuildCost: 200, UpgradeCost: 250},
	Stage2: {MaxHealth: 300, Damage: 75, Cooldown: 120, AreaOfEffect: 250, UpgradeCost: 400},
	Stage3: {MaxHealth: 300, Damage: 120, Cooldown: 120, AreaOfEffect: 250},
}

const (
	shellSpeed       = 4.0
	shellRadius      = 6.0
	shellBlastRadius = 60.0
	shellFanCount    = 5
)

// NewGrenadierTower creates a grenadier tower.
func NewGrenadierTower() *GrenadierTower {
	t := &GrenadierTower{Tower: newTower(TargetEnemy, grenadierStats)}
	addTowerStates(&t.Tower, color.RGBA{R: 0xc9, G: 0x7a, B: 0x2b, A: 0xff}, color.RGBA{R: 0xff, G: 0xdd, B: 0xa8, A: 0xff})
	t.setAbility(func(targets []bastion.Entity) {
		origin := t.Bounds().Center()
		dst := targets[0].Bounds().Center()
		shell := NewProjectile(origin, bastion.TravelVelocity(origin, dst, shellSpeed), shellRadius, t.Stats().Damage)
		// Budget the flight to the target's current position so the
		// shell bursts there even if the target moves on.
		shell.TravelBudget = origin.DistX(dst) + origin.DistY(dst)
		shell.AreaRadius = shellBlastRadius
		shell.Color = color.RGBA{R: 0xff, G: 0x8c, B: 0x1a, A: 0xff}
		if t.Stage() == Stage3 {
			shell.FanCount = shellFanCount
		}
		t.Registry().Register(shell)
		shell.Spawn()
	})
	return t
}

// MinefieldTower seeds drifting mines around itself on a fixed cadence.
// Mines drift briefly, arm in place, and detonate in an area when an enemy
// wanders into contact. Untargeted: it lays mines whether or not enemies
// are near.
type MinefieldTower struct {
	Tower
}

var minefieldStats = map[Stage]Stats{
	Stage1: {MaxHealth: 200, Damage: 50, Cooldown: 90, AreaOfEffect: 100, BuildCost: 150, UpgradeCost: 200},
	Stage2: {MaxHealth: 200, Damage: 80, Cooldown: 90, AreaOfEffect: 110, UpgradeCost: 350},
	Stage3: {MaxHealth: 200, Damage: 120, Cooldown: 90, AreaOfEffect: 115},
}

const (
	mineSpeed       = 2.0
	mineRadius      = 8.0
	mineDriftMin    = 15
	mineDriftMax    = 25
	mineLifeSeconds = 10
)

// NewMinefieldTower creates a minefield tower.
func NewMinefieldTower() *MinefieldTower {
	t := &MinefieldTower{Tower: newTower(TargetNone, minefieldStats)}
	addTowerStates(&t.Tower, color.RGBA{R: 0x99, G: 0x33, B: 0x33, A: 0xff}, color.RGBA{R: 0xff, G: 0xb3, B: 0xb3, A: 0xff})
	t.setAbility(func([]bastion.Entity) {
		mine := NewProjectile(t.Bounds().Center(), randomFanVelocity().Mul(mineSpeed/fanSpeedMax), mineRadius, t.Stats().Damage)
		mine.MoveTicks = mineDriftMin + rand.IntN(mineDriftMax-mineDriftMin+1)
		mine.LifeSpan = mineLifeSeconds * TicksPerSecond
		mine.AreaRadius = t.Stats().AreaOfEffect
		mine.Color = color.RGBA{R: 0xaa, G: 0x44, B: 0x44, A: 0xff}
		t.Registry().Register(mine)
		mine.Spawn()
	})
	return t
}

// WardTower shields the towers around it: each cast grants every other
// tower in range a burst of invincibility frames, absorbing enemy bites
// while they last. It never shields itself.
type WardTower struct {
	Tower
}

// For the ward the stat table reads differently: Damage is the number of
// invincibility frames granted per cast.
var wardStats = map[Stage]Stats{
	Stage1: {MaxHealth: 300, Damage: 30, Cooldown: 300, AreaOfEffect: 150, BuildCost: 150, UpgradeCost: 250},
	Stage2: {MaxHealth: 300, Damage: 45, Cooldown: 300, AreaOfEffect: 175, UpgradeCost: 400},
	Stage3: {MaxHealth: 300, Damage: 60, Cooldown: 300, AreaOfEffect: 200},
}

// NewWardTower creates a ward tower.
func NewWardTower() *WardTower {
	t := &WardTower{Tower: newTower(TargetTower, wardStats)}
	addTowerStates(&t.Tower, color.RGBA{R: 0xb0, G: 0xb8, B: 0xc8, A: 0xff}, color.RGBA{R: 0xf2, G: 0xf6, B: 0xff, A: 0xff})
	t.setAbility(func(targets []bastion.Entity) {
		frames := t.Stats().Damage
		for _, target := range targets {
			if tw, ok := target.(AnyTower); ok {
				v := tw.TowerRef()
				// A fresh, longer shield wins; never shorten one.
				if frames > v.InvincibilityFrames {
					v.InvincibilityFrames = frames
				}
			}
		}
	})
	return t
}

// HealerTower emits a seeking orb on a fixed cadence. The orb does the
// actual healing; the tower itself never touches another tower's health.
// Untargeted: orbs are emitted even when every tower is at full health.
type HealerTower struct {
	Tower
}

// For the healer the stat table reads differently: Damage is the orb's
// per-pulse heal rate and AreaOfEffect is the orb's detect radius.
var healerStats = map[Stage]Stats{
	Stage1: {MaxHealth: 200, Damage: 10, Cooldown: 240, AreaOfEffect: 150, Regeneration: 1, BuildCost: 200, UpgradeCost: 300},
	Stage2: {MaxHealth: 200, Damage: 15, Cooldown: 240, AreaOfEffect: 200, Regeneration: 1, UpgradeCost: 450},
	Stage3: {MaxHealth: 200, Damage: 25, Cooldown: 240, AreaOfEffect: 300, Regeneration: 2},
}

// orbPool is the total health an orb can transfer, per stage.
var orbPool = map[Stage]int{
	Stage1: 30,
	Stage2: 60,
	Stage3: 100,
}

// NewHealerTower creates a healer tower.
func NewHealerTower() *HealerTower {
	t := &HealerTower{Tower: newTower(TargetNone, healerStats)}
	addTowerStates(&t.Tower, color.RGBA{R: 0x2e, G: 0xa8, B: 0x7a, A: 0xff}, color.RGBA{R: 0xbf, G: 0xf5, B: 0xe0, A: 0xff})
	t.setAbility(func([]bastion.Entity) {
		orb := NewHealerOrb(t.Bounds().Center(), orbPool[t.Stage()], t.Stats().Damage, t.Stats().AreaOfEffect)
		t.Registry().Register(orb)
		orb.Spawn()
	})
	return t
}

package game

import (
	"testing"

	"github.com/phanxgames/bastion"
)

func TestProjectileHitsFirstEnemyInRadius(t *testing.T) {
	reg := newArena(t)
	e := spawnEnemy(t, reg, bastion.Vec2{X: 120, Y: 97}) // centered near the flight path
	far := spawnEnemy(t, reg, bastion.Vec2{X: 400, Y: 400})

	p := NewProjectile(bastion.Vec2{X: 100, Y: 100}, bastion.Vec2{X: 4, Y: 0}, 30, 25)
	reg.Register(p)
	p.Spawn()

	for i := 1; i <= 10 && !p.PendingRemoval(); i++ {
		p.Tick(int64(i))
	}

	if !p.PendingRemoval() {
		t.Fatal("projectile should dispose itself on contact")
	}
	if e.Health != enemyMaxHealth-25 {
		t.Errorf("contacted enemy health = %d, want %d", e.Health, enemyMaxHealth-25)
	}
	if far.Health != enemyMaxHealth {
		t.Error("a single-target hit must not splash")
	}
}

func TestProjectileTravelBudgetDetonates(t *testing.T) {
	reg := newArena(t)
	// In blast range of the detonation point (112,100), out of contact range.
	e := spawnEnemy(t, reg, bastion.Vec2{X: 140, Y: 100})

	p := NewProjectile(bastion.Vec2{X: 100, Y: 100}, bastion.Vec2{X: 4, Y: 0}, 2, 40)
	p.TravelBudget = 12
	p.AreaRadius = 60
	reg.Register(p)
	p.Spawn()

	for i := 1; i <= 3; i++ {
		p.Tick(int64(i))
	}

	if !p.PendingRemoval() {
		t.Fatal("projectile should detonate once its travel budget is spent")
	}
	if p.Traveled() < 12 {
		t.Errorf("traveled %v, want at least the 12px budget", p.Traveled())
	}
	if e.Health != enemyMaxHealth-40 {
		t.Errorf("enemy health = %d, want caught in the blast", e.Health)
	}
}

func TestProjectileAreaHitSplashes(t *testing.T) {
	reg := newArena(t)
	near := spawnEnemy(t, reg, bastion.Vec2{X: 104, Y: 100})
	splash := spawnEnemy(t, reg, bastion.Vec2{X: 140, Y: 100})

	p := NewProjectile(bastion.Vec2{X: 100, Y: 100}, bastion.Vec2{}, 50, 30)
	p.AreaRadius = 60
	reg.Register(p)
	p.Spawn()
	p.Tick(1)

	if near.Health != enemyMaxHealth-30 || splash.Health != enemyMaxHealth-30 {
		t.Errorf("healths = %d/%d, want both caught in the area", near.Health, splash.Health)
	}
}

func TestMineDriftsThenArms(t *testing.T) {
	reg := newArena(t)
	p := NewProjectile(bastion.Vec2{X: 100, Y: 100}, bastion.Vec2{X: 2, Y: 0}, 8, 50)
	p.MoveTicks = 2
	reg.Register(p)
	p.Spawn()

	for i := 1; i <= 5; i++ {
		p.Tick(int64(i))
	}
	if got := p.Center(); got != (bastion.Vec2{X: 104, Y: 100}) {
		t.Errorf("center = %v, want drift to stop after two ticks", got)
	}
	if p.Velocity != (bastion.Vec2{}) {
		t.Error("an armed mine must not keep moving")
	}
}

func TestProjectileLifespanFizzles(t *testing.T) {
	reg := newArena(t)
	e := spawnEnemy(t, reg, bastion.Vec2{X: 500, Y: 500})
	p := NewProjectile(bastion.Vec2{X: 100, Y: 100}, bastion.Vec2{}, 8, 50)
	p.LifeSpan = 3
	reg.Register(p)
	p.Spawn()

	for i := 1; i <= 4; i++ {
		p.Tick(int64(i))
	}
	if !p.PendingRemoval() {
		t.Error("projectile should fizzle after its lifespan")
	}
	if e.Health != enemyMaxHealth {
		t.Error("a fizzle must not deal damage")
	}
}

func TestDetonationFansOut(t *testing.T) {
	reg := newArena(t)
	p := NewProjectile(bastion.Vec2{X: 100, Y: 100}, bastion.Vec2{X: 4, Y: 0}, 2, 40)
	p.TravelBudget = 4
	p.AreaRadius = 30
	p.FanCount = 3
	reg.Register(p)
	p.Spawn()
	p.Tick(1)

	if !p.PendingRemoval() {
		t.Fatal("shell should have detonated")
	}
	frags := 0
	for _, q := range bastion.EntitiesOf[*Projectile](reg) {
		if q == p {
			continue
		}
		frags++
		if q.Velocity == (bastion.Vec2{}) {
			t.Error("fragments must never sit still")
		}
		if q.Damage != 20 {
			t.Errorf("fragment damage = %d, want half of 40", q.Damage)
		}
		if q.FanCount != 0 {
			t.Error("fragments must not fan out again")
		}
	}
	if frags != 3 {
		t.Errorf("detonation spawned %d fragments, want 3", frags)
	}
}

func TestHealerOrbHealsWoundedTower(t *testing.T) {
	reg := newArena(t)
	tw := NewArcherTower()
	placeAt(t, reg, tw, bastion.Vec2{X: 100, Y: 100})
	tw.Damage(100)

	orb := NewHealerOrb(tw.Bounds().Center(), 30, 10, 200)
	reg.Register(orb)
	orb.Spawn()

	for i := 1; i <= orbPulseTicks; i++ {
		orb.Tick(int64(i))
	}
	if got, want := tw.Health, tw.MaxHealth-100+10; got != want {
		t.Errorf("tower health = %d, want %d after one pulse", got, want)
	}
	if orb.Pool != 20 {
		t.Errorf("orb pool = %d, want 20", orb.Pool)
	}
}

func TestHealerOrbDrainsAndDissolves(t *testing.T) {
	reg := newArena(t)
	tw := NewArcherTower()
	placeAt(t, reg, tw, bastion.Vec2{X: 100, Y: 100})
	tw.Damage(100)

	orb := NewHealerOrb(tw.Bounds().Center(), 30, 10, 200)
	reg.Register(orb)
	orb.Spawn()

	for i := 1; i <= orbPulseTicks*3+1 && !orb.PendingRemoval(); i++ {
		orb.Tick(int64(i))
	}
	if orb.Pool != 0 {
		t.Errorf("orb pool = %d, want fully spent", orb.Pool)
	}
	if !orb.PendingRemoval() {
		t.Error("a spent orb should dissolve")
	}
	if got, want := tw.Health, tw.MaxHealth-100+30; got != want {
		t.Errorf("tower health = %d, want %d", got, want)
	}
}

func TestHealerOrbIgnoresHealthyTowers(t *testing.T) {
	reg := newArena(t)
	tw := NewArcherTower()
	placeAt(t, reg, tw, bastion.Vec2{X: 100, Y: 100})

	orb := NewHealerOrb(bastion.Vec2{X: 120, Y: 120}, 30, 10, 200)
	reg.Register(orb)
	orb.Spawn()
	for i := 1; i <= orbPulseTicks*2; i++ {
		orb.Tick(int64(i))
	}
	if orb.Target() != nil {
		t.Error("an orb must not latch onto a full-health tower")
	}
	if tw.Health != tw.MaxHealth {
		t.Error("nothing to heal")
	}
}

package bastion

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestRegisterInjectsContext(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	s := newStub(0, 0, 1)
	r.Register(s)
	if s.Registry() != r {
		t.Error("Register should inject the registry")
	}
	if s.ID() == 0 {
		t.Error("Register should assign an id")
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegisterRemovedEntityIsNoop(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	s := newStub(0, 0, 1)
	r.Register(s)
	s.Spawn()
	s.Dispose()
	r.Tick(1)
	r.Register(s)
	if r.Len() != 0 {
		t.Error("a removed entity must not be re-registered")
	}
}

func TestTickOrderFollowsPriority(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	a := newStub(0, 0, 1)
	a.SetPriority(5)
	b := newStub(0, 0, 1)
	b.SetPriority(1)
	c := newStub(0, 0, 1)
	c.SetPriority(5)
	d := newStub(0, 0, 1)
	d.SetPriority(3)
	r.RegisterAll(a, b, c, d)
	r.SpawnAll()
	r.Tick(1)

	got := make([]int, 0, 4)
	for _, e := range r.Entities() {
		got = append(got, e.core().Priority())
	}
	want := []int{1, 3, 5, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	// Equal priorities keep insertion order (stable sort).
	if r.Entities()[2] != Entity(a) || r.Entities()[3] != Entity(c) {
		t.Error("stable sort should keep insertion order for equal priorities")
	}
}

func TestRemovalDoesNotSkipNeighbors(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	a := newStub(0, 0, 1)
	b := newStub(0, 0, 1)
	c := newStub(0, 0, 1)
	r.RegisterAll(a, b, c)
	r.SpawnAll()
	b.Dispose()
	r.Tick(1)

	if a.ticked != 1 || c.ticked != 1 {
		t.Errorf("neighbors ticked %d/%d times, want 1/1", a.ticked, c.ticked)
	}
	if b.ticked != 0 {
		t.Error("a disposed entity must not be ticked on its removal pass")
	}
	if !b.Removed() {
		t.Error("disposed entity should be removed")
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}
}

func TestRegisterDuringTickJoinsAfterPass(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	late := newStub(0, 0, 1)
	spawner := newStub(0, 0, 1)
	r.Register(spawner)
	r.SpawnAll()

	ticked := false
	spawnerTick := func() {
		if !ticked {
			ticked = true
			r.Register(late)
		}
	}
	s2 := &hookedStub{stub: *newStub(0, 0, 1), onTick: spawnerTick}
	r.Register(s2)
	r.Tick(1)

	if late.ticked != 0 {
		t.Error("entity registered mid-pass must not tick in the same pass")
	}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3 after the pass", r.Len())
	}
	r.Tick(2)
	if late.ticked != 1 {
		t.Error("entity registered mid-pass should tick on the next pass")
	}
}

type hookedStub struct {
	stub
	onTick func()
}

func (h *hookedStub) Tick(frame int64) {
	h.stub.Tick(frame)
	if h.onTick != nil {
		h.onTick()
	}
}

func TestDeferRunsBeforeEntities(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	s := newStub(0, 0, 1)
	r.Register(s)
	disposedFirst := false
	r.Defer(func() {
		s.Spawn()
		s.Dispose()
		disposedFirst = true
	})
	r.Tick(1)
	if !disposedFirst {
		t.Fatal("deferred intent did not run")
	}
	if s.ticked != 0 {
		t.Error("an entity disposed by a deferred intent must not tick that frame")
	}
	if r.Len() != 0 {
		t.Error("entity should be removed within the same pass")
	}
}

func TestDeferNilIsNoop(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	r.Defer(nil)
	r.Tick(1)
}

func TestOffscreenCulling(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	r.DisposeOffscreen(true, 50)
	inside := newStub(10, 10, 10)
	margin := newStub(-40, 10, 10) // within the 50px margin
	outside := newStub(-200, 10, 10)
	r.RegisterAll(inside, margin, outside)
	r.SpawnAll()

	r.Tick(1) // flags the offscreen entity
	r.Tick(2) // removes it
	if inside.Removed() || margin.Removed() {
		t.Error("entities inside the safe area must survive")
	}
	if !outside.Removed() {
		t.Error("entity beyond the margin should be culled")
	}
}

func TestOffscreenCullingDisabled(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	outside := newStub(-200, 10, 10)
	r.Register(outside)
	r.SpawnAll()
	r.Tick(1)
	r.Tick(2)
	if outside.Removed() {
		t.Error("culling should be off by default")
	}
}

func TestClickedAtTopmostWins(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	under := newStub(0, 0, 50)
	under.SetPriority(1)
	over := newStub(0, 0, 50)
	over.SetPriority(2)
	r.RegisterAll(under, over)
	r.SpawnAll()
	r.Tick(1) // sorts

	if got := r.ClickedAt(Vec2{10, 10}); got != Entity(over) {
		t.Error("the entity drawn last should win the hit test")
	}
	over.SetVisible(false)
	if got := r.ClickedAt(Vec2{10, 10}); got != Entity(under) {
		t.Error("hidden entities should be skipped")
	}
	if got := r.ClickedAt(Vec2{99, 99}); got != nil {
		t.Error("a miss should return nil")
	}
}

func TestHealthBarAutoAttached(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	l := &livingStub{}
	l.size = 10
	l.ShowHealthBar = true
	l.Health = 10
	l.MaxHealth = 10
	r.Register(l)
	if n := len(EntitiesOf[*HealthBar](r)); n != 1 {
		t.Fatalf("registry holds %d health bars, want 1", n)
	}
}

func TestHealthBarDrawableWithIndividuallySpawnedOwner(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	l := &livingStub{size: 10}
	l.ShowHealthBar = true
	l.Health = 10
	l.MaxHealth = 10
	r.Register(l)
	l.Spawn() // owner spawned directly, never via SpawnAll
	r.Tick(1)

	bars := EntitiesOf[*HealthBar](r)
	if len(bars) != 1 {
		t.Fatalf("registry holds %d health bars, want 1", len(bars))
	}
	if !bars[0].ShouldDraw() {
		t.Error("the bar should be drawable once its owner is live")
	}
}

func TestHealthBarWaitsForUnspawnedOwner(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	l := &livingStub{size: 10}
	l.ShowHealthBar = true
	l.Health = 10
	l.MaxHealth = 10
	r.Register(l)
	r.Tick(1)
	if bars := EntitiesOf[*HealthBar](r); bars[0].ShouldDraw() {
		t.Error("the bar must not draw before its owner has spawned")
	}
}

func TestHealthBarDisposesWithOwner(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	l := &livingStub{}
	l.size = 10
	l.ShowHealthBar = true
	l.Health = 10
	l.MaxHealth = 10
	r.Register(l)
	r.SpawnAll()
	l.Dispose()
	r.Tick(1) // owner removed
	r.Tick(2) // bar notices and disposes
	r.Tick(3) // bar removed
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0 after owner and bar are gone", r.Len())
	}
}

// livingStub gives Living a concrete body for registry tests.
type livingStub struct {
	Living
	size float64
}

func (l *livingStub) Draw(dst *ebiten.Image) {}

func (l *livingStub) Bounds() Rect { return l.Pos.AsRect(l.size, l.size) }

func TestClearDropsEverything(t *testing.T) {
	r := NewRegistry(Size{100, 100})
	a := newStub(0, 0, 1)
	b := newStub(0, 0, 1)
	r.RegisterAll(a, b)
	r.SpawnAll()
	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
	if !a.PendingRemoval() || !b.PendingRemoval() {
		t.Error("Clear should dispose every entity")
	}
}

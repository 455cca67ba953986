package bastion

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Entity is anything the registry can simulate and render: it advances its
// state once per tick, draws itself to a surface, and reports its current
// axis-aligned bounds. Concrete types gain the identity/lifecycle half of
// the contract by embedding Core.
type Entity interface {
	// Tick advances internal state for one frame. It must not draw.
	Tick(frame int64)
	// Draw renders the current state. It must not mutate simulation state.
	Draw(screen *ebiten.Image)
	// Bounds returns the current bounding box, consistent with the
	// current position. Used for all collision, click, and culling tests.
	Bounds() Rect
	// Spawn runs one-time load logic and makes the entity live.
	// Subsequent calls are no-ops.
	Spawn()

	core() *Core
}

// entityIDCounter is a plain counter. No atomic: the simulation is
// single-threaded.
var entityIDCounter uint64

func nextEntityID() uint64 {
	entityIDCounter++
	return entityIDCounter
}

// Core is the base capability every entity embeds: identity, position,
// render priority, and the spawn/dispose lifecycle. The zero value is ready
// to use; an id is assigned lazily on first use.
type Core struct {
	id  uint64
	Pos Vec2

	priority       int
	dirty          bool
	loaded         bool
	visible        bool
	removed        bool
	pendingRemoval bool

	// OnLoad runs once, during the first Spawn call.
	OnLoad func()
	// OnDispose runs once, when the entity is first disposed.
	OnDispose func()

	// Injected by Registry.Register. Nil until then.
	reg  *Registry
	self Entity
}

func (c *Core) core() *Core { return c }

// ID returns the entity's unique id. Stable for the entity's lifetime and
// independent of any mutable field.
func (c *Core) ID() uint64 {
	if c.id == 0 {
		c.id = nextEntityID()
	}
	return c.id
}

// Priority returns the render priority. Lower priorities draw first and so
// appear underneath higher ones.
func (c *Core) Priority() int { return c.priority }

// SetPriority changes the render priority and marks the entity dirty so the
// registry re-sorts before its next tick pass.
func (c *Core) SetPriority(p int) {
	if c.priority == p {
		return
	}
	c.priority = p
	c.dirty = true
}

// Visible reports whether the entity wants to be drawn. Spawning sets it.
func (c *Core) Visible() bool { return c.visible }

// SetVisible toggles drawing without affecting the lifecycle.
func (c *Core) SetVisible(v bool) { c.visible = v }

// Loaded reports whether Spawn has run. Never reverts to false.
func (c *Core) Loaded() bool { return c.loaded }

// Removed reports whether the registry has dropped the entity.
// Never reverts to true.
func (c *Core) Removed() bool { return c.removed }

// PendingRemoval reports whether Dispose has been called but the registry
// has not yet removed the entity.
func (c *Core) PendingRemoval() bool { return c.pendingRemoval }

// ShouldDraw reports whether the entity is drawn this frame:
// visible, loaded, and not removed.
func (c *Core) ShouldDraw() bool {
	return c.visible && c.loaded && !c.removed
}

// shouldRemove reports removal eligibility: loaded, flagged, not yet removed.
func (c *Core) shouldRemove() bool {
	return c.loaded && c.pendingRemoval && !c.removed
}

// Spawn runs the one-time load hook and makes the entity live and visible.
// Idempotent.
func (c *Core) Spawn() {
	if c.loaded {
		return
	}
	if c.OnLoad != nil {
		c.OnLoad()
	}
	c.loaded = true
	c.visible = true
}

// Dispose flags the entity for removal and runs the one-time teardown hook.
// The registry drops the entity on its next tick pass, not synchronously.
// Idempotent; disposing an already-removed entity is a no-op.
func (c *Core) Dispose() {
	if c.pendingRemoval || c.removed {
		return
	}
	c.pendingRemoval = true
	if c.OnDispose != nil {
		c.OnDispose()
	}
}

// Registry returns the registry this entity is registered with, or nil.
func (c *Core) Registry() *Registry { return c.reg }

// ClickedOn reports whether the given point lies inside the entity's bounds.
// Always false before registration.
func (c *Core) ClickedOn(pt Vec2) bool {
	return c.self != nil && c.self.Bounds().Contains(pt.X, pt.Y)
}

// CollidesWith reports whether the two entities' bounds overlap.
func (c *Core) CollidesWith(other Entity) bool {
	return c.self != nil && other != nil && c.self.Bounds().Intersects(other.Bounds())
}

// --- Spatial and type queries ---
//
// All queries are linear scans in registry iteration order; that order is an
// observable contract (nearest-of-type ties resolve to the first entity
// encountered). T may be a concrete pointer type or an interface.

// EntitiesOf returns every live entity assignable to T, in registry order.
func EntitiesOf[T any](r *Registry) []T {
	var out []T
	for _, e := range r.entities {
		if e.core().removed {
			continue
		}
		if t, ok := any(e).(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// NearbyOf returns every live entity assignable to T whose position lies
// within radius of from, boundary inclusive, in registry order.
func NearbyOf[T any](r *Registry, from Vec2, radius float64) []T {
	var out []T
	for _, e := range r.entities {
		c := e.core()
		if c.removed {
			continue
		}
		if c.Pos.Dist(from) > radius {
			continue
		}
		if t, ok := any(e).(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// NearestOf returns the live entity assignable to T closest to from.
// Ties keep the first entity encountered in registry order. The second
// result is false when no such entity exists.
func NearestOf[T any](r *Registry, from Vec2) (T, bool) {
	var best T
	bestDist := 0.0
	found := false
	for _, e := range r.entities {
		c := e.core()
		if c.removed {
			continue
		}
		t, ok := any(e).(T)
		if !ok {
			continue
		}
		d := c.Pos.DistSqr(from)
		if !found || d < bestDist {
			best, bestDist, found = t, d, true
		}
	}
	return best, found
}

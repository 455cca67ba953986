package bastion

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Registry owns every live entity in a session: it drives the per-frame
// tick and draw passes, keeps entities sorted by render priority, performs
// deferred removal, and answers spatial and type queries.
//
// The registry is confined to a single simulation goroutine. Register,
// Tick, Draw, and every entity mutation must happen on that goroutine; the
// one safe entry point from elsewhere is Defer.
type Registry struct {
	entities []Entity
	added    []Entity
	ticking  bool

	viewport Size

	scheduler *Scheduler

	cullEnabled bool
	cullMargin  float64

	deferredMu sync.Mutex
	deferred   []func()

	debug bool
}

// NewRegistry creates an empty registry for a session with the given
// viewport. One registry is constructed per session and torn down with it;
// there is no ambient global instance.
func NewRegistry(viewport Size) *Registry {
	return &Registry{
		viewport:  viewport,
		scheduler: NewScheduler(),
	}
}

// Viewport returns the viewport size the registry was constructed with.
func (r *Registry) Viewport() Size { return r.viewport }

// Scheduler returns the registry's tick-driven task scheduler. It is
// advanced once at the top of every Tick.
func (r *Registry) Scheduler() *Scheduler { return r.scheduler }

// SetDebugMode enables per-frame stats on stderr.
func (r *Registry) SetDebugMode(enabled bool) { r.debug = enabled }

// Register adds an entity to the live set and injects the registry
// context. Entities registered during a tick pass join the set after the
// pass completes. Registering an already-removed entity is a no-op.
// A Living entity with ShowHealthBar set gets a HealthBar companion
// registered alongside it.
func (r *Registry) Register(e Entity) {
	c := e.core()
	if c.removed {
		return
	}
	if c.id == 0 {
		c.id = nextEntityID()
	}
	c.reg = r
	c.self = e
	if r.ticking {
		r.added = append(r.added, e)
	} else {
		r.entities = append(r.entities, e)
	}
	if v, ok := e.(living); ok && v.vitals().ShowHealthBar {
		r.Register(NewHealthBar(e, v.vitals()))
	}
}

// RegisterAll registers each entity in order.
func (r *Registry) RegisterAll(entities ...Entity) {
	for _, e := range entities {
		r.Register(e)
	}
}

// Defer queues fn to run at the top of the next Tick, on the simulation
// goroutine. This is the hand-off point for input callbacks, timers, and
// anything else living outside the tick loop: queue the intent here instead
// of mutating entities directly.
func (r *Registry) Defer(fn func()) {
	if fn == nil {
		return
	}
	r.deferredMu.Lock()
	r.deferred = append(r.deferred, fn)
	r.deferredMu.Unlock()
}

// DisposeOffscreen enables or disables offscreen culling. While enabled,
// any loaded entity whose bounds no longer intersect the viewport expanded
// by margin on all sides is disposed during the tick pass.
func (r *Registry) DisposeOffscreen(enabled bool, margin float64) {
	r.cullEnabled = enabled
	r.cullMargin = margin
}

// Tick advances the session by one frame: deferred intents run first, then
// the scheduler, then every live entity in priority order. Entities flagged
// for removal are dropped without being ticked; removing one never skips or
// double-processes a neighbor.
func (r *Registry) Tick(frame int64) {
	start := time.Now()

	for _, fn := range r.takeDeferred() {
		fn()
	}
	r.scheduler.Tick()

	sorted := false
	if r.checkDirty() {
		sort.SliceStable(r.entities, func(i, j int) bool {
			return r.entities[i].core().priority < r.entities[j].core().priority
		})
		for _, e := range r.entities {
			e.core().dirty = false
		}
		sorted = true
	}

	safe := Rect{
		X:      -r.cullMargin,
		Y:      -r.cullMargin,
		Width:  r.viewport.Width + 2*r.cullMargin,
		Height: r.viewport.Height + 2*r.cullMargin,
	}

	// Tick in place first, compact after: queries issued by entities
	// mid-pass see a stable slice with removed entries flagged, never
	// duplicates or gaps.
	r.ticking = true
	removals := 0
	for _, e := range r.entities {
		c := e.core()
		if c.removed {
			continue
		}
		if r.cullEnabled && c.loaded && !e.Bounds().Intersects(safe) {
			c.Dispose()
		}
		if c.shouldRemove() {
			c.removed = true
			removals++
			continue
		}
		e.Tick(frame)
	}
	r.ticking = false

	if removals > 0 {
		kept := r.entities[:0]
		for _, e := range r.entities {
			if e.core().removed {
				continue
			}
			kept = append(kept, e)
		}
		// Nil out the tail so dropped entities don't linger in the
		// backing array.
		for i := len(kept); i < len(r.entities); i++ {
			r.entities[i] = nil
		}
		r.entities = kept
	}

	if len(r.added) > 0 {
		r.entities = append(r.entities, r.added...)
		r.added = r.added[:0]
	}

	if r.debug {
		_, _ = fmt.Fprintf(os.Stderr,
			"[bastion] frame %d: entities: %d | removed: %d | sorted: %v | tick: %v\n",
			frame, len(r.entities), removals, sorted, time.Since(start))
	}
}

// Draw renders every drawable entity in ascending priority order; entities
// drawn later visually occlude those drawn earlier.
func (r *Registry) Draw(screen *ebiten.Image) {
	for _, e := range r.entities {
		if e.core().ShouldDraw() {
			e.Draw(screen)
		}
	}
}

// ClickedAt returns the highest-priority visible entity whose bounds
// contain pt, so the topmost-rendered entity wins. Nil when nothing is hit.
func (r *Registry) ClickedAt(pt Vec2) Entity {
	for i := len(r.entities) - 1; i >= 0; i-- {
		e := r.entities[i]
		c := e.core()
		if !c.visible || c.removed {
			continue
		}
		if e.Bounds().Contains(pt.X, pt.Y) {
			return e
		}
	}
	return nil
}

// SpawnAll spawns every registered entity. Already-spawned entities are
// unaffected.
func (r *Registry) SpawnAll() {
	for _, e := range r.entities {
		e.Spawn()
	}
}

// DisposeAll flags every registered entity for removal on the next tick.
func (r *Registry) DisposeAll() {
	for _, e := range r.entities {
		e.core().Dispose()
	}
}

// Clear disposes every entity, then drops the whole live set immediately.
func (r *Registry) Clear() {
	for i, e := range r.entities {
		e.core().Dispose()
		r.entities[i] = nil
	}
	r.entities = r.entities[:0]
	r.added = r.added[:0]
}

// Len returns the number of registered entities.
func (r *Registry) Len() int { return len(r.entities) }

// Entities returns the live set in current iteration order.
// The returned slice MUST NOT be mutated by the caller.
func (r *Registry) Entities() []Entity { return r.entities }

func (r *Registry) takeDeferred() []func() {
	r.deferredMu.Lock()
	defer r.deferredMu.Unlock()
	if len(r.deferred) == 0 {
		return nil
	}
	out := r.deferred
	r.deferred = nil
	return out
}

func (r *Registry) checkDirty() bool {
	for _, e := range r.entities {
		if e.core().dirty {
			return true
		}
	}
	return false
}

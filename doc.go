// Package bastion is the entity-simulation core for a fixed-tick 2D
// tower-defense game built on [Ebitengine].
//
// Bastion provides the object model, scheduler, and spatial primitives
// needed to run one game session deterministically per tick: a priority-
// ordered entity [Registry], composable entity capabilities ([Core],
// [Living], [Sprite]), tick-based cooldowns and deferred tasks, and linear
// proximity queries.
//
// # Quick start
//
// Implement [ebiten.Game] yourself and drive the registry once per frame:
//
//	type Game struct {
//		reg   *bastion.Registry
//		frame int64
//	}
//
//	func (g *Game) Update() error {
//		g.frame++
//		g.reg.Tick(g.frame)
//		return nil
//	}
//	func (g *Game) Draw(s *ebiten.Image)       { g.reg.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Entities
//
// Every simulated object embeds [Core], which supplies identity, position,
// render priority, and the spawn/dispose lifecycle. [Living] adds health,
// velocity, and invincibility frames; [Sprite] adds named-state frame
// animation. Concrete types embed only the capabilities they need and
// implement [Entity].
//
// Entities are created, then registered, then spawned:
//
//	e := game.NewEnemy(bastion.Vec2{X: 40, Y: 40})
//	reg.Register(e)
//	e.Spawn()
//
// Disposal is deferred: [Core.Dispose] flags the entity and the registry
// removes it on its next tick pass. Double disposal and operations on
// removed entities are no-ops.
//
// # Concurrency
//
// The whole simulation is confined to a single goroutine, the one calling
// [Registry.Tick] and [Registry.Draw]. Anything arriving from outside that
// context (input callbacks, timers) must be handed off with
// [Registry.Defer], which queues the effect until the top of the next tick.
//
// [Ebitengine]: https://ebitengine.org
package bastion

package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/bastion"
)

const (
	playerSize      = 24
	playerMaxHealth = 500
	playerSpeed     = 4.0
)

const playerStateIdle bastion.StateKey = "idle"

// Player is the controllable avatar: screen-bound, with a health bar, and a
// valid tower target type. Input stays outside the package; whoever owns
// the window feeds a direction into SetMove (through Registry.Defer when
// off the simulation goroutine).
type Player struct {
	bastion.Sprite
}

// NewPlayer creates the player at the given position.
func NewPlayer(pos bastion.Vec2) *Player {
	p := &Player{Sprite: bastion.NewSprite(playerStateIdle, 8)}
	p.Pos = pos
	p.Health = playerMaxHealth
	p.MaxHealth = playerMaxHealth
	p.ScreenBound = true
	p.ShowHealthBar = true
	p.SetPriority(50)
	p.AddState(playerStateIdle, []*ebiten.Image{
		solidFrame(playerSize, color.RGBA{R: 0xf0, G: 0xf0, B: 0x40, A: 0xff}),
	})
	return p
}

// SetMove sets the movement direction. Each axis is clamped to [-1, 1] and
// scaled to the player's speed; the zero vector stops the player.
func (p *Player) SetMove(dir bastion.Vec2) {
	dir.X = clampAxis(dir.X)
	dir.Y = clampAxis(dir.Y)
	p.Velocity = dir.Mul(playerSpeed)
}

func clampAxis(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

package bastion

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	healthBarWidth  = 50.0
	healthBarHeight = 6.0
	healthBarGap    = 5.0
	// healthBarEase is how long the displayed fill takes to settle on the
	// owner's true health fraction, in seconds.
	healthBarEase = 0.2
)

var (
	healthBarBackground = color.RGBA{R: 0xcc, G: 0x22, B: 0x22, A: 0xff}
	healthBarFill       = color.RGBA{R: 0x22, G: 0xcc, B: 0x22, A: 0xff}
)

// HealthBar is the companion entity a Living with ShowHealthBar set gets at
// registration: a two-color bar tracking the owner's bounds each tick,
// positioned above-and-centered on it. The fill eases toward the true
// health fraction instead of snapping. The bar disposes itself once its
// owner is removed.
type HealthBar struct {
	Core

	owner Entity
	hp    *Living

	fill   float64
	target float64
	tween  *gween.Tween
}

// NewHealthBar creates a bar for the given owner. It draws one priority
// level above the owner so it is never occluded by it.
func NewHealthBar(owner Entity, hp *Living) *HealthBar {
	h := &HealthBar{
		owner:  owner,
		hp:     hp,
		fill:   hp.HealthFraction(),
		target: hp.HealthFraction(),
	}
	h.SetPriority(owner.core().Priority() + 1)
	return h
}

// Tick follows the owner and eases the displayed fill toward the owner's
// current health fraction.
func (h *HealthBar) Tick(frame int64) {
	if h.owner.core().Removed() {
		h.Dispose()
		return
	}
	// Owners are usually spawned individually after registration; the bar
	// follows the owner's load state rather than waiting for SpawnAll.
	if !h.Loaded() && h.owner.core().Loaded() {
		h.Spawn()
	}
	h.Pos = AboveCentered(h.Bounds(), h.owner.Bounds())
	h.Pos.Y -= healthBarGap

	if target := h.hp.HealthFraction(); target != h.target {
		h.target = target
		h.tween = gween.New(float32(h.fill), float32(target), healthBarEase, ease.OutQuad)
	}
	if h.tween != nil {
		v, done := h.tween.Update(float32(1.0 / float64(ebiten.TPS())))
		h.fill = float64(v)
		if done {
			h.tween = nil
		}
	}
}

// Draw renders the background bar, then the remaining-fraction bar at an
// integer pixel width.
func (h *HealthBar) Draw(screen *ebiten.Image) {
	FillRect(screen, h.Pos.AsRect(healthBarWidth, healthBarHeight), healthBarBackground)
	w := math.Floor(h.fill * healthBarWidth)
	FillRect(screen, h.Pos.AsRect(w, healthBarHeight), healthBarFill)
}

// Bounds returns the bar's fixed-size box at its current position.
func (h *HealthBar) Bounds() Rect {
	return h.Pos.AsRect(healthBarWidth, healthBarHeight)
}

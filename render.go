package bastion

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// WhitePixel is a 1x1 white image used for solid color fills.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(color.White)
}

// FillRect fills the given rectangle on screen with a solid color by
// scaling and tinting WhitePixel. Degenerate rectangles draw nothing.
func FillRect(screen *ebiten.Image, r Rect, c color.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width, r.Height)
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleWithColor(c)
	screen.DrawImage(WhitePixel, op)
}

package bastion

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	fpsWidgetWidth  = 100
	fpsWidgetHeight = 32
)

// FPSWidget is an overlay entity showing the measured FPS and TPS.
// The readout refreshes about twice a second.
type FPSWidget struct {
	Core
	img *ebiten.Image
}

// NewFPSWidget creates the widget at the top-left of the screen, drawn on
// top of everything else.
func NewFPSWidget() *FPSWidget {
	w := &FPSWidget{img: ebiten.NewImage(fpsWidgetWidth, fpsWidgetHeight)}
	w.SetPriority(255)
	return w
}

// Tick refreshes the readout every 30 frames.
func (w *FPSWidget) Tick(frame int64) {
	if frame%30 != 0 {
		return
	}
	w.img.Clear()
	// Semi-transparent background for readability.
	w.img.Fill(color.RGBA{A: 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// Draw blits the readout at the widget's position.
func (w *FPSWidget) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(w.Pos.X, w.Pos.Y)
	screen.DrawImage(w.img, op)
}

// Bounds returns the widget's fixed-size box.
func (w *FPSWidget) Bounds() Rect {
	return w.Pos.AsRect(fpsWidgetWidth, fpsWidgetHeight)
}

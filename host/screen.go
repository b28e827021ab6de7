package host

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/holeio/hole"
)

// Screen paints onto an Ebiten image.
type Screen struct {
	Image *ebiten.Image
}

var _ hole.Renderer = Screen{}

func (s Screen) Clear(c color.Color) {
	s.Image.Fill(c)
}

func (s Screen) DrawCircle(x, y, radius float64, c color.Color) {
	vector.DrawFilledCircle(s.Image, float32(x), float32(y), float32(radius), c, true)
}

func (s Screen) DrawRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.Image, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s Screen) DrawText(text string, x, y float64) {
	ebitenutil.DebugPrintAt(s.Image, text, int(x), int(y))
}

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Screen adapts an ebiten image to Surface.
type Screen struct {
	Image *ebiten.Image
}

func (s Screen) Clear(c color.Color) {
	s.Image.Fill(c)
}

func (s Screen) FillRect(x, y, w, h float64, c color.Color) {
	vector.FillRect(s.Image, float32(x), float32(y), float32(w), float32(h), c, false)
}

// Package render paints a session onto any surface that can clear itself and
// fill rectangles.
package render

import (
	"fmt"
	"image/color"

	"github.com/milk9111/skyhop/common"
	"github.com/milk9111/skyhop/obj"
	"github.com/milk9111/skyhop/prefabs"
)

// Surface is the minimal 2-D drawing context the game needs.
type Surface interface {
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
}

type Palette struct {
	Background color.Color
	Player     color.Color
	Platform   color.Color
}

func NewPalette(spec prefabs.ColorSpec) (Palette, error) {
	bg, err := common.ParseColor(spec.Background)
	if err != nil {
		return Palette{}, fmt.Errorf("render: background: %w", err)
	}
	player, err := common.ParseColor(spec.Player)
	if err != nil {
		return Palette{}, fmt.Errorf("render: player: %w", err)
	}
	platform, err := common.ParseColor(spec.Platform)
	if err != nil {
		return Palette{}, fmt.Errorf("render: platform: %w", err)
	}
	return Palette{Background: bg, Player: player, Platform: platform}, nil
}

// Draw clears dst and paints the player, then every platform.
func Draw(dst Surface, s *obj.Session, pal Palette) {
	dst.Clear(pal.Background)

	p := s.Player
	dst.FillRect(p.X, p.Y, p.Width, p.Height, pal.Player)

	for _, pl := range s.Platforms {
		dst.FillRect(pl.X, pl.Y, pl.Width, pl.Height, pal.Platform)
	}
}

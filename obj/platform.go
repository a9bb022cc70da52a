package obj

import (
	"math/rand"

	"github.com/milk9111/skyhop/prefabs"
)

// Platform is a static landing surface. Only its top edge is solid.
type Platform struct {
	Rect
}

// GeneratePlatforms places t.Platforms.Count platforms uniformly at random,
// fully inside the play area horizontally and above the bottom margin.
func GeneratePlatforms(rng *rand.Rand, t prefabs.Tuning) []Platform {
	spec := t.Platforms
	maxX := t.PlayArea.Width - spec.Width
	maxY := t.PlayArea.Height - spec.BottomMargin

	platforms := make([]Platform, 0, spec.Count)
	for i := 0; i < spec.Count; i++ {
		platforms = append(platforms, Platform{Rect: Rect{
			X:      rng.Float64() * maxX,
			Y:      rng.Float64() * maxY,
			Width:  spec.Width,
			Height: spec.Height,
		}})
	}
	return platforms
}

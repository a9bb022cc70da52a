package obj

// Rect is an axis-aligned box in play-area coordinates; Y grows downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// OverlapsX reports whether the horizontal extents overlap. Touching edges do
// not count.
func (r Rect) OverlapsX(other Rect) bool {
	return r.X < other.X+other.Width && r.X+r.Width > other.X
}

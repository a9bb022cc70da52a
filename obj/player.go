package obj

import "github.com/milk9111/skyhop/prefabs"

// Player is the single controllable rectangle of a session.
type Player struct {
	Rect
	VelocityY float64
	// Airborne is set by a jump and cleared by a landing. Walking off a
	// platform does not set it.
	Airborne  bool
	MoveLeft  bool
	MoveRight bool
}

// NewPlayer spawns a player at the tuning's start position, at rest.
func NewPlayer(t prefabs.Tuning) Player {
	x, y := t.PlayerStart()
	return Player{
		Rect: Rect{
			X:      x,
			Y:      y,
			Width:  t.Player.Width,
			Height: t.Player.Height,
		},
	}
}

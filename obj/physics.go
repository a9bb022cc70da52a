package obj

import (
	"github.com/milk9111/skyhop/common"
	"github.com/milk9111/skyhop/prefabs"
)

// ApplyPhysics advances the player by one frame: horizontal movement from the
// movement flags, then gravity. Velocity is not capped.
func ApplyPhysics(p *Player, t prefabs.Tuning) {
	maxX := t.PlayArea.Width - p.Width
	if p.MoveLeft && p.X > 0 {
		p.X = common.Clamp(p.X-t.Player.Speed, 0, maxX)
	}
	if p.MoveRight && p.Right() < t.PlayArea.Width {
		p.X = common.Clamp(p.X+t.Player.Speed, 0, maxX)
	}

	p.VelocityY += t.Physics.Gravity
	p.Y += p.VelocityY
}

package obj

// ResolveLanding lands the player on at most one platform and returns its
// index, or -1.
//
// A platform qualifies when the player is not moving up, the x extents
// overlap, and the player's bottom edge lies within [top, top+band]. Every
// platform is tested against the same unresolved state; when several qualify
// the highest one (smallest Y) wins and list order breaks exact ties.
func ResolveLanding(p *Player, platforms []Platform, band float64) int {
	if p.VelocityY < 0 {
		return -1
	}

	bottom := p.Bottom()
	hit := -1
	for i := range platforms {
		pl := &platforms[i]
		if bottom < pl.Y || bottom > pl.Y+band {
			continue
		}
		if !p.OverlapsX(pl.Rect) {
			continue
		}
		if hit < 0 || pl.Y < platforms[hit].Y {
			hit = i
		}
	}

	if hit >= 0 {
		p.VelocityY = 0
		p.Airborne = false
		p.Y = platforms[hit].Y - p.Height
	}
	return hit
}

// Jump launches the player unless it is already airborne.
func Jump(p *Player, velocity float64) bool {
	if p.Airborne {
		return false
	}
	p.VelocityY = velocity
	p.Airborne = true
	return true
}

// FellOut reports whether the player's top edge has passed the bottom of the
// play area.
func FellOut(p *Player, height float64) bool {
	return p.Y > height
}

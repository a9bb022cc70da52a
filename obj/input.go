package obj

import "github.com/milk9111/skyhop/prefabs"

// Key is a logical key; hosts map their physical keys onto these.
type Key int

const (
	KeyLeft Key = iota + 1
	KeyRight
	KeyJump
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyJump:
		return "jump"
	default:
		return "unknown"
	}
}

// Input collects key events between frames. Events only change flags here;
// Apply hands them to the player at the start of the next frame.
type Input struct {
	left  bool
	right bool
	// jumpHeld suppresses auto-repeat key downs until the key is released.
	jumpHeld      bool
	jumpRequested bool
}

func (in *Input) KeyDown(k Key) {
	switch k {
	case KeyLeft:
		in.left = true
	case KeyRight:
		in.right = true
	case KeyJump:
		if !in.jumpHeld {
			in.jumpRequested = true
		}
		in.jumpHeld = true
	}
}

func (in *Input) KeyUp(k Key) {
	switch k {
	case KeyLeft:
		in.left = false
	case KeyRight:
		in.right = false
	case KeyJump:
		in.jumpHeld = false
	}
}

// Left and Right report the current movement flags.
func (in *Input) Left() bool  { return in.left }
func (in *Input) Right() bool { return in.right }

// JumpPending reports whether a jump request is waiting for the next frame.
func (in *Input) JumpPending() bool { return in.jumpRequested }

// Apply copies the movement flags onto p and consumes a pending jump request.
// It reports whether the jump was honoured.
func (in *Input) Apply(p *Player, t prefabs.Tuning) bool {
	p.MoveLeft = in.left
	p.MoveRight = in.right
	if !in.jumpRequested {
		return false
	}
	in.jumpRequested = false
	return Jump(p, t.Physics.JumpVelocity)
}

// Reset drops every flag and pending request.
func (in *Input) Reset() {
	*in = Input{}
}

// KeyEdges turns per-frame "is it down" samples into KeyDown/KeyUp calls.
// Hosts that poll key state (and scripted players) feed Input through it.
type KeyEdges struct {
	held map[Key]bool
}

// Set reports the current level of k, emitting an event only on change.
func (e *KeyEdges) Set(in *Input, k Key, down bool) {
	if e.held == nil {
		e.held = map[Key]bool{}
	}
	switch {
	case down && !e.held[k]:
		in.KeyDown(k)
	case !down && e.held[k]:
		in.KeyUp(k)
	}
	e.held[k] = down
}

// Hold records k's level without emitting anything. A key marked held here
// must be released before it can press again.
func (e *KeyEdges) Hold(k Key, down bool) {
	if e.held == nil {
		e.held = map[Key]bool{}
	}
	e.held[k] = down
}

func (e *KeyEdges) Reset() {
	e.held = nil
}

package system

import "github.com/milk9111/skyhop/obj"

// InputSystem hands the input collected since the last frame to the player.
type InputSystem struct{}

func (InputSystem) Update(s *obj.Session, events *EventQueue) {
	if s.Input.Apply(&s.Player, s.Tuning) {
		events.Push(Event{Kind: EventJumped, Frame: s.Frame})
	}
}

// PhysicsSystem applies horizontal movement and gravity.
type PhysicsSystem struct{}

func (PhysicsSystem) Update(s *obj.Session, _ *EventQueue) {
	obj.ApplyPhysics(&s.Player, s.Tuning)
}

// CollisionSystem lands the player on platforms. Standing still re-lands on
// the same platform every frame; only a change of support is reported.
type CollisionSystem struct{}

func (CollisionSystem) Update(s *obj.Session, events *EventQueue) {
	hit := obj.ResolveLanding(&s.Player, s.Platforms, s.Tuning.Physics.LandingBand)
	if hit >= 0 && hit != s.Support {
		events.Push(Event{Kind: EventLanded, Frame: s.Frame, Platform: hit})
	}
	s.Support = hit
}

// BoundarySystem ends the session once the player drops out of the play area.
type BoundarySystem struct{}

func (BoundarySystem) Update(s *obj.Session, events *EventQueue) {
	if obj.FellOut(&s.Player, s.Tuning.PlayArea.Height) {
		events.Push(Event{Kind: EventSessionEnded, Frame: s.Frame})
	}
}

package system

import "github.com/milk9111/skyhop/obj"

// System is one sub-step of a frame.
type System interface {
	Update(s *obj.Session, events *EventQueue)
}

// Scheduler runs its systems in insertion order.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(session *obj.Session, events *EventQueue) {
	for _, system := range s.systems {
		system.Update(session, events)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// DefaultScheduler wires the frame order: input, physics, collision, boundary.
func DefaultScheduler() *Scheduler {
	return NewScheduler(
		InputSystem{},
		PhysicsSystem{},
		CollisionSystem{},
		BoundarySystem{},
	)
}

package obj

import (
	"math/rand"

	"github.com/milk9111/skyhop/prefabs"
)

// Session owns all mutable game state. Nothing outside the frame driver and
// the host's input adapter writes to it.
type Session struct {
	Tuning    prefabs.Tuning
	Player    Player
	Platforms []Platform
	Input     Input

	Seed  int64
	Frame int
	// Resets counts how many times the session restarted after ending.
	Resets int
	// Support is the index of the platform the player rested on last frame,
	// or -1.
	Support int

	rng     *rand.Rand
	pending *prefabs.Tuning
}

// NewSession builds the initial state. The seed drives platform layout for
// this session and every reset after it.
func NewSession(t prefabs.Tuning, seed int64) *Session {
	s := &Session{
		Tuning: t,
		Seed:   seed,
		rng:    rand.New(rand.NewSource(seed)),
	}
	s.spawn()
	return s
}

// Reset starts over with a new player and a fresh platform layout, applying
// any tuning queued with QueueTuning.
func (s *Session) Reset() {
	if s.pending != nil {
		s.Tuning = *s.pending
		s.pending = nil
	}
	s.Resets++
	s.spawn()
}

// QueueTuning stores t until the next Reset; sizes never change mid-session.
func (s *Session) QueueTuning(t prefabs.Tuning) {
	s.pending = &t
}

// TuningPending reports whether a queued tuning is waiting for Reset.
func (s *Session) TuningPending() bool {
	return s.pending != nil
}

func (s *Session) spawn() {
	s.Player = NewPlayer(s.Tuning)
	s.Platforms = GeneratePlatforms(s.rng, s.Tuning)
	s.Input.Reset()
	s.Frame = 0
	s.Support = -1
}

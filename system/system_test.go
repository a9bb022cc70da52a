package system

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/skyhop/obj"
	"github.com/milk9111/skyhop/prefabs"
)

func newTestDriver(seed int64) *Driver {
	s := obj.NewSession(prefabs.DefaultTuning(), seed)
	return NewDriver(s, nil, log.New(io.Discard))
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}

func hasKind(events []Event, k EventKind) bool {
	for _, ev := range events {
		if ev.Kind == k {
			return true
		}
	}
	return false
}

type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Update(*obj.Session, *EventQueue) { *r.log = append(*r.log, r.name) }

func TestSchedulerRunsInOrder(t *testing.T) {
	var calls []string
	sched := NewScheduler(recorder{"a", &calls}, recorder{"b", &calls})
	sched.Add(nil)
	sched.Add(recorder{"c", &calls})

	sched.Update(obj.NewSession(prefabs.DefaultTuning(), 1), &EventQueue{})

	if len(calls) != 3 || calls[0] != "a" || calls[1] != "b" || calls[2] != "c" {
		t.Fatalf("unexpected call order %v", calls)
	}
	if len(sched.Systems()) != 3 {
		t.Fatalf("nil system should not be added")
	}
}

func TestDefaultSchedulerOrder(t *testing.T) {
	systems := DefaultScheduler().Systems()
	want := []System{InputSystem{}, PhysicsSystem{}, CollisionSystem{}, BoundarySystem{}}
	if len(systems) != len(want) {
		t.Fatalf("expected %d systems, got %d", len(want), len(systems))
	}
	for i := range want {
		if systems[i] != want[i] {
			t.Fatalf("system %d: expected %T, got %T", i, want[i], systems[i])
		}
	}
}

func TestStepConsumesJumpAtFrameStart(t *testing.T) {
	d := newTestDriver(3)
	s := d.Session()
	s.Platforms = nil

	s.Input.KeyDown(obj.KeyJump)
	events := d.Step()

	if !hasKind(events, EventJumped) {
		t.Fatalf("expected jump event, got %v", kinds(events))
	}
	// jump sets -10, then gravity runs in the same frame
	if s.Player.VelocityY != -9.5 || !s.Player.Airborne {
		t.Fatalf("unexpected player after jump frame: %+v", s.Player)
	}
	if s.Frame != 1 {
		t.Fatalf("expected frame 1, got %d", s.Frame)
	}

	s.Input.KeyUp(obj.KeyJump)
	s.Input.KeyDown(obj.KeyJump)
	events = d.Step()
	if hasKind(events, EventJumped) {
		t.Fatalf("airborne player must not jump again")
	}
	if s.Player.VelocityY != -9 {
		t.Fatalf("expected velocity -9, got %g", s.Player.VelocityY)
	}
}

func TestStepLandsOnceAndStays(t *testing.T) {
	d := newTestDriver(3)
	s := d.Session()
	s.Platforms = []obj.Platform{{Rect: obj.Rect{X: 100, Y: 300, Width: 80, Height: 10}}}
	s.Player.X = 120
	s.Player.Y = 247
	s.Player.VelocityY = 3
	s.Player.Airborne = true

	events := d.Step()
	if len(events) != 1 || events[0].Kind != EventLanded || events[0].Platform != 0 {
		t.Fatalf("expected a single landing on platform 0, got %v", events)
	}
	if s.Player.Bottom() != 300 || s.Player.VelocityY != 0 || s.Player.Airborne {
		t.Fatalf("unexpected player after landing: %+v", s.Player)
	}

	for i := 0; i < 30; i++ {
		if events := d.Step(); len(events) != 0 {
			t.Fatalf("frame %d: resting should be silent, got %v", i, events)
		}
		if s.Player.Bottom() != 300 {
			t.Fatalf("frame %d: player slipped off to %g", i, s.Player.Bottom())
		}
	}
}

func TestSessionEndWaitsForRestart(t *testing.T) {
	d := newTestDriver(9)
	s := d.Session()
	s.Platforms = nil
	before := append([]obj.Platform(nil), s.Platforms...)
	s.Player.Y = 600

	events := d.Step()
	if !hasKind(events, EventSessionEnded) || !d.Ended() {
		t.Fatalf("expected session end, got %v", kinds(events))
	}

	frame := s.Frame
	if events := d.Step(); events != nil || s.Frame != frame {
		t.Fatalf("ended session must not advance")
	}

	d.Restart()
	if d.Ended() {
		t.Fatalf("restart should resume the session")
	}
	if s.Player != obj.NewPlayer(s.Tuning) {
		t.Fatalf("player not respawned: %+v", s.Player)
	}
	if len(s.Platforms) != s.Tuning.Platforms.Count || len(before) != 0 {
		t.Fatalf("expected a fresh platform set, got %d", len(s.Platforms))
	}
	if s.Resets != 1 || s.Frame != 0 {
		t.Fatalf("unexpected counters: resets=%d frame=%d", s.Resets, s.Frame)
	}
}

func TestAutoRestart(t *testing.T) {
	d := newTestDriver(11)
	d.AutoRestart = true
	s := d.Session()
	first := append([]obj.Platform(nil), s.Platforms...)
	s.Player.Y = 650

	events := d.Step()
	if !hasKind(events, EventSessionEnded) {
		t.Fatalf("expected session end, got %v", kinds(events))
	}
	if d.Ended() {
		t.Fatalf("auto restart should not stay ended")
	}
	x, y := s.Tuning.PlayerStart()
	if s.Player.X != x || s.Player.Y != y {
		t.Fatalf("expected respawn at (%g, %g), got (%g, %g)", x, y, s.Player.X, s.Player.Y)
	}
	changed := false
	for i := range first {
		if first[i] != s.Platforms[i] {
			changed = true
		}
	}
	if !changed {
		t.Fatalf("expected a new platform layout after restart")
	}
}

func TestUntouchedPlayerEventuallyFallsOut(t *testing.T) {
	d := newTestDriver(5)
	d.Session().Platforms = nil

	for i := 0; i < 200; i++ {
		if hasKind(d.Step(), EventSessionEnded) {
			return
		}
	}
	t.Fatalf("player never left the play area")
}

func TestDeterministicRuns(t *testing.T) {
	run := func() *obj.Session {
		d := newTestDriver(12345)
		d.AutoRestart = true
		s := d.Session()
		for i := 0; i < 1000; i++ {
			switch i % 40 {
			case 0:
				s.Input.KeyDown(obj.KeyJump)
				s.Input.KeyDown(obj.KeyRight)
			case 5:
				s.Input.KeyUp(obj.KeyJump)
			case 20:
				s.Input.KeyUp(obj.KeyRight)
				s.Input.KeyDown(obj.KeyLeft)
			case 35:
				s.Input.KeyUp(obj.KeyLeft)
			}
			d.Step()
		}
		return s
	}

	a, b := run(), run()
	if a.Player != b.Player || a.Frame != b.Frame || a.Resets != b.Resets {
		t.Fatalf("runs diverged:\n a=%+v frame=%d resets=%d\n b=%+v frame=%d resets=%d",
			a.Player, a.Frame, a.Resets, b.Player, b.Frame, b.Resets)
	}
	for i := range a.Platforms {
		if a.Platforms[i] != b.Platforms[i] {
			t.Fatalf("platform %d diverged", i)
		}
	}
}

func TestRunStepsPerTick(t *testing.T) {
	d := newTestDriver(1)
	ticks := make(chan time.Time, 3)
	for i := 0; i < 3; i++ {
		ticks <- time.Now()
	}
	close(ticks)

	frames := 0
	err := d.Run(context.Background(), ticks, func([]Event) { frames++ })
	if err != nil {
		t.Fatalf("closed ticks should end Run cleanly: %v", err)
	}
	if frames != 3 || d.Session().Frame != 3 {
		t.Fatalf("expected 3 frames, got callbacks=%d frame=%d", frames, d.Session().Frame)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	d := newTestDriver(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Run(ctx, make(chan time.Time), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	if q.Drain() != nil {
		t.Fatalf("empty queue should drain to nil")
	}
	q.Push(Event{Kind: EventJumped, Frame: 1})
	q.Push(Event{Kind: EventLanded, Frame: 2, Platform: 3})
	got := q.Drain()
	if len(got) != 2 || got[1].String() != "landed(platform=3)@2" {
		t.Fatalf("unexpected drain %v", got)
	}
	if q.Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}

func writeTuning(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, prefabs.TuningFile)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReloadTuningAppliesOnRestart(t *testing.T) {
	d := newTestDriver(8)
	s := d.Session()
	path := writeTuning(t, t.TempDir(), "tick_rate: 30\nphysics:\n  gravity: 0.25\n")

	if err := d.ReloadTuning(path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !s.TuningPending() {
		t.Fatalf("valid tuning should be queued")
	}
	if s.Tuning.TickRate != 60 || s.Tuning.Physics.Gravity != 0.5 {
		t.Fatalf("running session must keep its tuning until restart: %+v", s.Tuning)
	}

	d.Restart()
	if s.TuningPending() {
		t.Fatalf("restart should consume the queued tuning")
	}
	if s.Tuning.TickRate != 30 || s.Tuning.Physics.Gravity != 0.25 {
		t.Fatalf("expected reloaded tuning after restart, got %+v", s.Tuning)
	}
}

func TestReloadTuningIgnoresInvalidFile(t *testing.T) {
	d := newTestDriver(8)
	s := d.Session()
	dir := t.TempDir()

	if err := d.ReloadTuning(writeTuning(t, dir, "tick_rate: 30\n")); err != nil {
		t.Fatalf("reload: %v", err)
	}

	cases := []struct {
		name string
		body string
	}{
		{"negative gravity", "physics:\n  gravity: -1\n"},
		{"not yaml", "tick_rate: [\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := d.ReloadTuning(writeTuning(t, dir, c.body)); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
	if err := d.ReloadTuning(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}

	d.Restart()
	if s.Tuning.TickRate != 30 || s.Tuning.Physics.Gravity != 0.5 {
		t.Fatalf("invalid reloads must not replace the last valid one, got %+v", s.Tuning)
	}
}

func TestRestartWithJumpStillHeld(t *testing.T) {
	d := newTestDriver(3)
	s := d.Session()
	var keys obj.KeyEdges

	keys.Set(&s.Input, obj.KeyJump, true)
	if !hasKind(d.Step(), EventJumped) {
		t.Fatalf("expected the first press to jump")
	}

	// the key that dismissed the game over is still down after the restart
	d.Restart()
	keys.Reset()
	keys.Hold(obj.KeyJump, true)

	keys.Set(&s.Input, obj.KeyJump, true)
	if hasKind(d.Step(), EventJumped) {
		t.Fatalf("a jump key held across the restart must not jump")
	}

	keys.Set(&s.Input, obj.KeyJump, false)
	d.Step()
	keys.Set(&s.Input, obj.KeyJump, true)
	if !hasKind(d.Step(), EventJumped) {
		t.Fatalf("expected a jump after release and press")
	}
}

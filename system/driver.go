package system

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/milk9111/skyhop/obj"
	"github.com/milk9111/skyhop/prefabs"
)

// Driver owns a session and advances it one frame per Step. It does not know
// how frames are scheduled: ebiten calls Step from Game.Update, the headless
// runner feeds Run from a ticker.
type Driver struct {
	// AutoRestart resets the session as soon as it ends instead of waiting
	// for Restart.
	AutoRestart bool

	session   *obj.Session
	scheduler *Scheduler
	events    EventQueue
	logger    *log.Logger
	ended     bool
}

func NewDriver(session *obj.Session, scheduler *Scheduler, logger *log.Logger) *Driver {
	if scheduler == nil {
		scheduler = DefaultScheduler()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Driver{
		session:   session,
		scheduler: scheduler,
		logger:    logger,
	}
}

func (d *Driver) Session() *obj.Session { return d.session }

// Ended reports whether the session is over and waiting for Restart.
func (d *Driver) Ended() bool { return d.ended }

// Step runs the scheduler once and returns the frame's events. It is a no-op
// while the session is ended.
func (d *Driver) Step() []Event {
	if d.ended {
		return nil
	}

	s := d.session
	d.scheduler.Update(s, &d.events)
	s.Frame++

	events := d.events.Drain()
	for _, ev := range events {
		switch ev.Kind {
		case EventJumped:
			d.logger.Debug("jump", "frame", ev.Frame, "x", s.Player.X, "y", s.Player.Y)
		case EventLanded:
			d.logger.Debug("landed", "frame", ev.Frame, "platform", ev.Platform, "y", s.Player.Y)
		case EventSessionEnded:
			d.logger.Info("session ended", "frame", ev.Frame, "resets", s.Resets, "seed", s.Seed)
			d.ended = true
		}
	}

	if d.ended && d.AutoRestart {
		d.Restart()
	}
	return events
}

// Restart resets the session and resumes stepping.
func (d *Driver) Restart() {
	d.session.Reset()
	d.events.Drain()
	d.ended = false
	d.logger.Debug("session restarted", "resets", d.session.Resets, "platforms", len(d.session.Platforms))
}

// ReloadTuning reads the tuning file at path and queues it for the next
// Restart. An unreadable or invalid file leaves the running session and any
// previously queued tuning untouched.
func (d *Driver) ReloadTuning(path string) error {
	t, err := prefabs.LoadTuningFile(path)
	if err != nil {
		return err
	}
	d.session.QueueTuning(t)
	d.logger.Info("tuning reloaded, applies on next session", "path", path, "tick_rate", t.TickRate)
	return nil
}

// Run steps once per value received on ticks until ctx is cancelled or ticks
// is closed. onFrame, if set, sees each frame's events.
func (d *Driver) Run(ctx context.Context, ticks <-chan time.Time, onFrame func([]Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			events := d.Step()
			if onFrame != nil {
				onFrame(events)
			}
		}
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/milk9111/skyhop/bot"
	"github.com/milk9111/skyhop/obj"
	"github.com/milk9111/skyhop/prefabs"
	"github.com/milk9111/skyhop/system"
)

type runConfig struct {
	index  int
	seed   int64
	frames int
	tuning prefabs.Tuning
	bot    *bot.Bot
}

type runStats struct {
	runIndex int
	seed     int64
	frames   int

	jumps       int
	landings    int
	sessionEnds int

	firstLandFrame  int
	sessionFrames   int
	longestSession  int
	highestLandingY float64

	finalPlayer obj.Player
}

func newRunStats(cfg runConfig) runStats {
	return runStats{
		runIndex:        cfg.index,
		seed:            cfg.seed,
		firstLandFrame:  -1,
		highestLandingY: -1,
	}
}

// simulate steps the driver cfg.frames times as fast as possible.
func simulate(driver *system.Driver, cfg runConfig) (runStats, error) {
	stats := newRunStats(cfg)
	var events []system.Event
	for stats.frames < cfg.frames {
		if err := feed(driver.Session(), cfg.bot, events); err != nil {
			return stats, err
		}
		events = driver.Step()
		stats.record(driver.Session(), events)
	}
	stats.finish(driver.Session())
	return stats, nil
}

// feed lets the bot press keys for the next frame. A session that just ended
// starts over with a fresh bot state.
func feed(s *obj.Session, b *bot.Bot, last []system.Event) error {
	if b == nil {
		return nil
	}
	for _, ev := range last {
		if ev.Kind == system.EventSessionEnded {
			b.Reset()
		}
	}
	return b.Drive(s)
}

func (r *runStats) record(s *obj.Session, events []system.Event) {
	r.frames++
	r.sessionFrames++
	for _, ev := range events {
		switch ev.Kind {
		case system.EventJumped:
			r.jumps++
		case system.EventLanded:
			r.landings++
			if r.firstLandFrame < 0 {
				r.firstLandFrame = r.frames - 1
			}
			if y := s.Platforms[ev.Platform].Y; r.highestLandingY < 0 || y < r.highestLandingY {
				r.highestLandingY = y
			}
		case system.EventSessionEnded:
			r.sessionEnds++
			r.closeSession()
		}
	}
}

func (r *runStats) closeSession() {
	if r.sessionFrames > r.longestSession {
		r.longestSession = r.sessionFrames
	}
	r.sessionFrames = 0
}

func (r *runStats) finish(s *obj.Session) {
	r.closeSession()
	r.finalPlayer = s.Player
}

func printRun(w io.Writer, r runStats) {
	fmt.Fprintf(w, "--- run %d (seed=%d) ---\n", r.runIndex, r.seed)
	fmt.Fprintf(w, "frames=%d jumps=%d landings=%d session_ends=%d\n", r.frames, r.jumps, r.landings, r.sessionEnds)
	fmt.Fprintf(w, "first_landing=%s longest_session=%d highest_landing_y=%s\n",
		frameOrNever(r.firstLandFrame), r.longestSession, yOrNone(r.highestLandingY))
	p := r.finalPlayer
	fmt.Fprintf(w, "final player x=%.1f y=%.1f vy=%.2f airborne=%v\n\n", p.X, p.Y, p.VelocityY, p.Airborne)
}

func printSummary(w io.Writer, all []runStats) {
	if len(all) == 0 {
		return
	}
	var frames, jumps, landings, ends int
	for _, r := range all {
		frames += r.frames
		jumps += r.jumps
		landings += r.landings
		ends += r.sessionEnds
	}
	fmt.Fprintf(w, "=== summary ===\n")
	fmt.Fprintf(w, "runs=%d frames=%d jumps=%d landings=%d session_ends=%d\n", len(all), frames, jumps, landings, ends)
	if ends > 0 {
		fmt.Fprintf(w, "mean_frames_per_session=%.1f\n", float64(frames)/float64(ends))
	}
}

func frameOrNever(f int) string {
	if f < 0 {
		return "never"
	}
	return fmt.Sprintf("%d", f)
}

func yOrNone(y float64) string {
	if y < 0 {
		return "none"
	}
	return fmt.Sprintf("%.1f", y)
}

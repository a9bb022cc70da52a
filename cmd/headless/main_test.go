package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/milk9111/skyhop/bot"
	"github.com/milk9111/skyhop/obj"
	"github.com/milk9111/skyhop/prefabs"
	"github.com/milk9111/skyhop/system"
)

func newDriver(cfg runConfig) *system.Driver {
	d := system.NewDriver(obj.NewSession(cfg.tuning, cfg.seed), nil, log.New(io.Discard))
	d.AutoRestart = true
	return d
}

func TestSimulateIdlePlayerKeepsFallingOut(t *testing.T) {
	cfg := runConfig{index: 1, seed: 7, frames: 600, tuning: prefabs.DefaultTuning()}
	stats, err := simulate(newDriver(cfg), cfg)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if stats.frames != 600 {
		t.Fatalf("expected 600 frames, got %d", stats.frames)
	}
	if stats.jumps != 0 || stats.landings != 0 {
		t.Fatalf("idle player should neither jump nor land: %+v", stats)
	}
	if stats.sessionEnds == 0 {
		t.Fatalf("idle player should fall out repeatedly")
	}
	if stats.longestSession == 0 || stats.longestSession > 600 {
		t.Fatalf("unexpected longest session %d", stats.longestSession)
	}
}

func TestSimulateWithBotIsDeterministic(t *testing.T) {
	run := func() runStats {
		b, err := bot.Load("")
		if err != nil {
			t.Fatalf("load bot: %v", err)
		}
		cfg := runConfig{index: 1, seed: 99, frames: 1200, tuning: prefabs.DefaultTuning(), bot: b}
		stats, err := simulate(newDriver(cfg), cfg)
		if err != nil {
			t.Fatalf("simulate: %v", err)
		}
		return stats
	}

	a, b := run(), run()
	if a != b {
		t.Fatalf("same seed and script diverged:\n a=%+v\n b=%+v", a, b)
	}
	if a.jumps == 0 {
		t.Fatalf("bot never jumped")
	}
}

func TestSimulateRealtimeStopsAfterFrames(t *testing.T) {
	tu := prefabs.DefaultTuning()
	tu.TickRate = 1000
	cfg := runConfig{index: 1, seed: 3, frames: 20, tuning: tu}

	stats, err := simulateRealtime(context.Background(), newDriver(cfg), cfg)
	if err != nil {
		t.Fatalf("simulateRealtime: %v", err)
	}
	if stats.frames != 20 {
		t.Fatalf("expected 20 frames, got %d", stats.frames)
	}
}

func TestRecordTracksLandings(t *testing.T) {
	s := obj.NewSession(prefabs.DefaultTuning(), 1)
	s.Platforms = []obj.Platform{
		{Rect: obj.Rect{X: 0, Y: 300, Width: 80, Height: 10}},
		{Rect: obj.Rect{X: 100, Y: 120, Width: 80, Height: 10}},
	}
	stats := newRunStats(runConfig{index: 2, seed: 5})

	stats.record(s, nil)
	stats.record(s, []system.Event{{Kind: system.EventLanded, Platform: 0}})
	stats.record(s, []system.Event{{Kind: system.EventJumped}})
	stats.record(s, []system.Event{{Kind: system.EventLanded, Platform: 1}})
	stats.record(s, []system.Event{{Kind: system.EventSessionEnded}})
	stats.record(s, nil)
	stats.finish(s)

	if stats.firstLandFrame != 1 {
		t.Fatalf("expected first landing at frame 1, got %d", stats.firstLandFrame)
	}
	if stats.highestLandingY != 120 {
		t.Fatalf("expected highest landing y=120, got %g", stats.highestLandingY)
	}
	if stats.landings != 2 || stats.jumps != 1 || stats.sessionEnds != 1 {
		t.Fatalf("unexpected counts %+v", stats)
	}
	if stats.longestSession != 5 {
		t.Fatalf("expected longest session 5, got %d", stats.longestSession)
	}
}

func TestPrintRun(t *testing.T) {
	var buf bytes.Buffer
	printRun(&buf, runStats{runIndex: 3, seed: 11, frames: 10, firstLandFrame: -1, highestLandingY: -1})
	out := buf.String()
	for _, want := range []string{"run 3", "seed=11", "first_landing=never", "highest_landing_y=none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	printSummary(&buf, []runStats{{frames: 100, sessionEnds: 4}, {frames: 100, sessionEnds: 0}})
	if !strings.Contains(buf.String(), "mean_frames_per_session=50.0") {
		t.Fatalf("unexpected summary:\n%s", buf.String())
	}
}

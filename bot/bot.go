// Package bot drives a session's input from a tengo script.
//
// The script runs once per frame with these globals:
//
//	player    map: x, y, w, h, vy, airborne, on_platform
//	platforms array of maps: x, y, w, h
//	frame, width, height
//	state     map that survives between frames
//
// and sets the booleans left, right and jump. The bot turns changes in those
// booleans into key presses and releases, so a script is subject to the same
// rules as a keyboard: holding jump fires once.
package bot

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/skyhop/obj"
	"github.com/milk9111/skyhop/prefabs"
)

type Bot struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	keys     obj.KeyEdges
}

// Load reads a script by path, falling back to the embedded scripts. An empty
// name loads the default script.
func Load(name string) (*Bot, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = prefabs.DefaultScript
	}
	return New(name, src)
}

func New(name string, src []byte) (*Bot, error) {
	script := tengo.NewScript(src)
	for _, global := range []string{"left", "right", "jump"} {
		if err := script.Add(global, false); err != nil {
			return nil, err
		}
	}
	for _, global := range []string{"player", "state"} {
		if err := script.Add(global, map[string]any{}); err != nil {
			return nil, err
		}
	}
	if err := script.Add("platforms", []any{}); err != nil {
		return nil, err
	}
	for _, global := range []string{"frame", "width", "height"} {
		if err := script.Add(global, 0); err != nil {
			return nil, err
		}
	}
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("bot: compile %s: %w", name, err)
	}

	return &Bot{
		name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (b *Bot) Name() string { return b.name }

// Drive runs the script against the current session and feeds the resulting
// key edges into s.Input.
func (b *Bot) Drive(s *obj.Session) error {
	if err := b.setGlobals(s); err != nil {
		return fmt.Errorf("bot: %s: %w", b.name, err)
	}
	// RunContext turns Go panics inside the VM (integer division by zero)
	// into errors; Run lets them crash the host.
	if err := b.compiled.RunContext(context.Background()); err != nil {
		return fmt.Errorf("bot: run %s: %w", b.name, err)
	}

	b.keys.Set(&s.Input, obj.KeyLeft, b.compiled.Get("left").Bool())
	b.keys.Set(&s.Input, obj.KeyRight, b.compiled.Get("right").Bool())
	b.keys.Set(&s.Input, obj.KeyJump, b.compiled.Get("jump").Bool())
	return nil
}

// Reset forgets held keys and the script's state map; call it after the
// session restarts.
func (b *Bot) Reset() {
	b.state = &tengo.Map{Value: map[string]tengo.Object{}}
	b.keys.Reset()
}

// State exposes the script's persistent map.
func (b *Bot) State() map[string]any {
	out := make(map[string]any, len(b.state.Value))
	for k, v := range b.state.Value {
		out[k] = tengo.ToInterface(v)
	}
	return out
}

func (b *Bot) setGlobals(s *obj.Session) error {
	p := s.Player
	platforms := make([]any, 0, len(s.Platforms))
	for _, pl := range s.Platforms {
		platforms = append(platforms, map[string]any{
			"x": pl.X,
			"y": pl.Y,
			"w": pl.Width,
			"h": pl.Height,
		})
	}

	values := map[string]any{
		"left":  false,
		"right": false,
		"jump":  false,
		"player": map[string]any{
			"x":           p.X,
			"y":           p.Y,
			"w":           p.Width,
			"h":           p.Height,
			"vy":          p.VelocityY,
			"airborne":    p.Airborne,
			"on_platform": s.Support >= 0,
		},
		"platforms": platforms,
		"frame":     s.Frame,
		"width":     s.Tuning.PlayArea.Width,
		"height":    s.Tuning.PlayArea.Height,
		"state":     b.state,
	}
	for name, v := range values {
		if err := b.compiled.Set(name, v); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}

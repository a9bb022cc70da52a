package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/skyhop/common"
	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant. Units are play-area pixels and frames.
type Tuning struct {
	PlayArea  PlayAreaSpec `yaml:"play_area"`
	Player    PlayerSpec   `yaml:"player"`
	Platforms PlatformSpec `yaml:"platforms"`
	Physics   PhysicsSpec  `yaml:"physics"`
	Colors    ColorSpec    `yaml:"colors"`
	TickRate  int          `yaml:"tick_rate"`
}

type PlayAreaSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PlayerSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	// StartGap is the distance between the player's bottom edge and the
	// bottom of the play area at spawn.
	StartGap float64 `yaml:"start_gap"`
}

type PlatformSpec struct {
	Count  int     `yaml:"count"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// BottomMargin keeps generated platforms out of the lowest strip of the
	// play area.
	BottomMargin float64 `yaml:"bottom_margin"`
}

type PhysicsSpec struct {
	Gravity      float64 `yaml:"gravity"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	LandingBand  float64 `yaml:"landing_band"`
}

type ColorSpec struct {
	Background string `yaml:"background"`
	Player     string `yaml:"player"`
	Platform   string `yaml:"platform"`
}

// DefaultTuning mirrors tuning.yaml and is used when no file can be read.
func DefaultTuning() Tuning {
	return Tuning{
		PlayArea: PlayAreaSpec{Width: 400, Height: 600},
		Player: PlayerSpec{
			Width:    50,
			Height:   50,
			Speed:    2,
			StartGap: 10,
		},
		Platforms: PlatformSpec{
			Count:        5,
			Width:        80,
			Height:       10,
			BottomMargin: 100,
		},
		Physics: PhysicsSpec{
			Gravity:      0.5,
			JumpVelocity: -10,
			LandingBand:  10,
		},
		Colors: ColorSpec{
			Background: "#FFFFFF",
			Player:     "#FF6464",
			Platform:   "#64C832",
		},
		TickRate: 60,
	}
}

// PlayerStart is the spawn position: horizontally centred, StartGap above the
// bottom edge.
func (t Tuning) PlayerStart() (x, y float64) {
	x = t.PlayArea.Width/2 - t.Player.Width/2
	y = t.PlayArea.Height - t.Player.Height - t.Player.StartGap
	return x, y
}

// Validate reports every problem found, joined.
func (t Tuning) Validate() error {
	var errs []error
	if t.PlayArea.Width <= 0 || t.PlayArea.Height <= 0 {
		errs = append(errs, fmt.Errorf("play_area must be positive, got %gx%g", t.PlayArea.Width, t.PlayArea.Height))
	}
	if t.Player.Width <= 0 || t.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %gx%g", t.Player.Width, t.Player.Height))
	}
	if t.Player.Speed < 0 {
		errs = append(errs, fmt.Errorf("player speed must not be negative, got %g", t.Player.Speed))
	}
	if t.Player.Width > t.PlayArea.Width || t.Player.Height+t.Player.StartGap > t.PlayArea.Height {
		errs = append(errs, errors.New("player does not fit in the play area"))
	}
	if t.Platforms.Count < 0 {
		errs = append(errs, fmt.Errorf("platform count must not be negative, got %d", t.Platforms.Count))
	}
	if t.Platforms.Width <= 0 || t.Platforms.Height <= 0 {
		errs = append(errs, fmt.Errorf("platform size must be positive, got %gx%g", t.Platforms.Width, t.Platforms.Height))
	}
	if t.Platforms.Width > t.PlayArea.Width {
		errs = append(errs, errors.New("platforms are wider than the play area"))
	}
	if t.Platforms.BottomMargin < 0 || t.Platforms.BottomMargin > t.PlayArea.Height {
		errs = append(errs, fmt.Errorf("platform bottom_margin out of range: %g", t.Platforms.BottomMargin))
	}
	if t.Physics.Gravity <= 0 {
		errs = append(errs, fmt.Errorf("gravity must be positive, got %g", t.Physics.Gravity))
	}
	if t.Physics.JumpVelocity >= 0 {
		errs = append(errs, fmt.Errorf("jump_velocity must be negative (upward), got %g", t.Physics.JumpVelocity))
	}
	if t.Physics.LandingBand < 0 {
		errs = append(errs, fmt.Errorf("landing_band must not be negative, got %g", t.Physics.LandingBand))
	}
	if t.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", t.TickRate))
	}
	for name, c := range map[string]string{
		"background": t.Colors.Background,
		"player":     t.Colors.Player,
		"platform":   t.Colors.Platform,
	} {
		if _, err := common.ParseColor(c); err != nil {
			errs = append(errs, fmt.Errorf("colors.%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// ParseTuning decodes YAML on top of DefaultTuning, so a file only needs the
// keys it overrides.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("prefabs: unmarshal tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("prefabs: invalid tuning: %w", err)
	}
	return t, nil
}

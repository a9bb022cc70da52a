// skyhop is a small platformer: jump between randomly placed platforms and
// don't fall out of the bottom of the screen.
//
// Usage:
//
//	skyhop [--seed N] [--config tuning.yaml] [--watch] [--bot [script.tengo]] [--debug]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"golang.design/x/clipboard"

	"github.com/milk9111/skyhop/bot"
	"github.com/milk9111/skyhop/common"
	"github.com/milk9111/skyhop/obj"
	"github.com/milk9111/skyhop/prefabs"
	"github.com/milk9111/skyhop/system"
)

var (
	flagConfig string
	flagSeed   int64
	flagDebug  bool
	flagWatch  bool
	flagBot    string
	flagScale  float64
)

var rootCmd = &cobra.Command{
	Use:   "skyhop",
	Short: "Jump between platforms without falling off the screen",
	Long: `skyhop drops you into a column of randomly placed platforms.
Land on them, jump between them, and don't fall out of the bottom.

Controls:
  Left/Right (A/D)   - Move
  Space (Up/W)       - Jump (only from a platform)
  Esc                - Pause
  F5                 - Restart with a new layout
  F9                 - Copy the seed to the clipboard

Examples:
  skyhop
  skyhop --seed 42
  skyhop --config ./my-tuning.yaml --watch
  skyhop --bot`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runGame,
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a tuning YAML file")
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Platform layout seed (0 = random based on time)")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the debug overlay and debug logs")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the tuning file when it changes")
	rootCmd.Flags().StringVar(&flagBot, "bot", "", "Let a tengo script play (embedded default when no path is given)")
	rootCmd.Flags().Lookup("bot").NoOptDefVal = prefabs.DefaultScript
	rootCmd.Flags().Float64Var(&flagScale, "scale", 1.5, "Window scale relative to the play area")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runGame(cmd *cobra.Command, args []string) error {
	logger := common.NewLogger(os.Stderr, "skyhop", flagDebug)

	tuning, source, err := prefabs.LoadTuning(flagConfig)
	if err != nil {
		return err
	}
	if source == "" {
		source = "embedded"
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting", "seed", seed, "tuning", source)

	opts := GameOptions{Debug: flagDebug}

	if flagWatch {
		if source == "embedded" {
			logger.Warn("--watch needs a tuning file on disk, reload disabled")
		} else {
			w, err := prefabs.NewWatcher(source)
			if err != nil {
				return fmt.Errorf("watch %s: %w", source, err)
			}
			defer w.Close()
			opts.Watcher = w
		}
	}

	if cmd.Flags().Changed("bot") {
		b, err := bot.Load(flagBot)
		if err != nil {
			return err
		}
		logger.Info("bot enabled", "script", b.Name())
		opts.Bot = b
	}

	if err := clipboard.Init(); err != nil {
		logger.Warn("clipboard unavailable", "err", err)
	} else {
		opts.Clipboard = true
	}

	driver := system.NewDriver(obj.NewSession(tuning, seed), nil, logger)
	game, err := NewGame(driver, logger, opts)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle("skyhop")
	ebiten.SetWindowSize(int(tuning.PlayArea.Width*flagScale), int(tuning.PlayArea.Height*flagScale))
	ebiten.SetTPS(tuning.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	return nil
}

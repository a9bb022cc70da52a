// headless runs skyhop sessions without a window and prints what happened.
// It is meant for soak-testing tuning files and bot scripts.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/milk9111/skyhop/bot"
	"github.com/milk9111/skyhop/common"
	"github.com/milk9111/skyhop/obj"
	"github.com/milk9111/skyhop/prefabs"
	"github.com/milk9111/skyhop/system"
)

var (
	flagRuns     int
	flagFrames   int
	flagSeedBase int64
	flagSeedStep int64
	flagConfig   string
	flagBot      string
	flagRealtime bool
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run skyhop sessions without a window",
	Long: `Runs one or more seeded simulations and reports jumps, landings and
session ends per run. Sessions restart immediately when the player falls out.

Examples:
  headless --frames 3600
  headless --runs 10 --seed-base 100 --bot
  headless --config ./my-tuning.yaml --bot ./scripts/climber.tengo --realtime`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runHeadless,
}

func init() {
	rootCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs")
	rootCmd.Flags().IntVar(&flagFrames, "frames", 3600, "Frames per run")
	rootCmd.Flags().Int64Var(&flagSeedBase, "seed-base", 42, "Seed for run 1")
	rootCmd.Flags().Int64Var(&flagSeedStep, "seed-step", 1, "Seed increment between runs")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a tuning YAML file")
	rootCmd.Flags().StringVar(&flagBot, "bot", "", "Tengo script that plays (embedded default when no path is given)")
	rootCmd.Flags().Lookup("bot").NoOptDefVal = prefabs.DefaultScript
	rootCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Step at the tuning's tick rate instead of as fast as possible")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log every jump and landing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if flagRuns <= 0 {
		return errors.New("--runs must be > 0")
	}
	if flagFrames <= 0 {
		return errors.New("--frames must be > 0")
	}

	logger := common.NewLogger(os.Stderr, "headless", flagDebug)
	tuning, source, err := prefabs.LoadTuning(flagConfig)
	if err != nil {
		return err
	}
	if source == "" {
		source = "embedded"
	}
	logger.Info("tuning loaded", "source", source)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== skyhop headless report ===\n")
	fmt.Fprintf(out, "runs=%d frames=%d seed_base=%d seed_step=%d bot=%q\n\n", flagRuns, flagFrames, flagSeedBase, flagSeedStep, flagBot)

	all := make([]runStats, 0, flagRuns)
	for i := 0; i < flagRuns; i++ {
		cfg := runConfig{
			index:  i + 1,
			seed:   flagSeedBase + int64(i)*flagSeedStep,
			frames: flagFrames,
			tuning: tuning,
		}
		if cmd.Flags().Changed("bot") {
			b, err := bot.Load(flagBot)
			if err != nil {
				return err
			}
			cfg.bot = b
		}

		driver := system.NewDriver(obj.NewSession(cfg.tuning, cfg.seed), nil, logger.With("run", cfg.index))
		driver.AutoRestart = true

		var stats runStats
		if flagRealtime {
			stats, err = simulateRealtime(ctx, driver, cfg)
		} else {
			stats, err = simulate(driver, cfg)
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		all = append(all, stats)
		printRun(out, stats)
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted")
			break
		}
	}

	printSummary(out, all)
	return nil
}

// simulateRealtime paces the driver with a ticker at the tuning's tick rate.
func simulateRealtime(ctx context.Context, driver *system.Driver, cfg runConfig) (runStats, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(time.Second / time.Duration(cfg.tuning.TickRate))
	defer ticker.Stop()

	stats := newRunStats(cfg)
	if err := feed(driver.Session(), cfg.bot, nil); err != nil {
		return stats, err
	}
	var botErr error
	err := driver.Run(ctx, ticker.C, func(events []system.Event) {
		stats.record(driver.Session(), events)
		if stats.frames >= cfg.frames {
			cancel()
			return
		}
		if err := feed(driver.Session(), cfg.bot, events); err != nil {
			botErr = err
			cancel()
		}
	})
	if botErr != nil {
		return stats, botErr
	}
	if stats.frames >= cfg.frames {
		err = nil
	}
	stats.finish(driver.Session())
	return stats, err
}

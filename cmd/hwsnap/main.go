package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/hwsnap/internal/collector"
	"github.com/Dicklesworthstone/hwsnap/internal/config"
	"github.com/Dicklesworthstone/hwsnap/internal/elevate"
	"github.com/Dicklesworthstone/hwsnap/internal/logging"
	"github.com/Dicklesworthstone/hwsnap/internal/runner"
	"github.com/Dicklesworthstone/hwsnap/internal/ui"
)

var (
	version    = "dev"
	commitHash = "unknown"
	buildDate  = "unknown"
)

var (
	cfgFile    string
	pretty     bool
	outputFile string
)

var rootCmd = &cobra.Command{
	Use:   "hwsnap",
	Short: "hwsnap - hardware inventory and live telemetry as JSON",
	Long: `hwsnap collects a hardware inventory (CPU, memory, disks, GPUs, network,
firmware and attached devices) plus live CPU, temperature and memory readings.

Missing tools, sensors or permissions never fail a run; the affected fields
keep their empty defaults.`,
	SilenceUsage: true,
}

var fullCmd = &cobra.Command{
	Use:   "full",
	Short: "Print a full hardware snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCollector(cmd, func(ctx context.Context, c *collector.Collector) (any, error) {
			return c.GetHardwareInfo(ctx)
		})
	},
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Print a live snapshot (CPU, temperature, memory, runtime)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withCollector(cmd, func(ctx context.Context, c *collector.Collector) (any, error) {
			return c.GetHardwareLive(ctx)
		})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a dashboard refreshed with live snapshots",
	RunE:  runWatch,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hwsnap %s (commit: %s, built: %s)\n", version, commitHash, buildDate)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./hwsnap.yaml)")
	config.RegisterFlags(rootCmd.PersistentFlags())

	for _, c := range []*cobra.Command{fullCmd, liveCmd} {
		c.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
		c.Flags().StringVarP(&outputFile, "output", "o", "", "write JSON output to file instead of stdout")
	}

	rootCmd.AddCommand(fullCmd)
	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, log, nil
}

func collectorOptions(cfg *config.Config) collector.Options {
	elevation := elevate.Disabled()
	if cfg.Elevation.Enabled {
		elevation = elevate.Policy{
			Enabled: true,
			Wrapper: cfg.Elevation.Wrapper,
			Runner:  runner.Exec{Timeout: cfg.Elevation.Timeout},
		}
	}
	return collector.Options{
		Settle:         cfg.SettleInterval,
		CommandTimeout: cfg.CommandTimeout,
		Elevation:      elevation,
		Parallel:       cfg.Parallel,
		Workers:        cfg.Workers,
		Version:        version,
	}
}

func withCollector(cmd *cobra.Command, collect func(context.Context, *collector.Collector) (any, error)) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, err := collect(ctx, collector.NewSystem(collectorOptions(cfg), log))
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := writeJSON(w, snap, pretty); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if outputFile != "" {
		log.Info().Str("path", outputFile).Msg("snapshot written")
	}
	return nil
}

func writeJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	// The dashboard owns the terminal.
	log = log.Level(zerolog.Disabled)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	return ui.Run(ctx, collector.NewSystem(collectorOptions(cfg), log), cfg.Watch.Interval)
}

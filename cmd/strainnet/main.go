// SPDX-License-Identifier: MIT

// Command strainnet clusters genomes into strains from pairwise distances.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/config"
	"github.com/katalvlaran/strainnet/engine"
	"github.com/katalvlaran/strainnet/logger"
)

const version = "0.1.0"

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	envFile     string
	metricsFile string

	cfg config.Config
	log *zap.Logger
	eng *engine.Engine
	met *metricsSink
}

func main() {
	if err := newRootCommand(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCommand wires every subcommand to a.
func newRootCommand(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "strainnet",
		Short: "Strain-level clustering of genome collections",
		Long: `strainnet builds a same-strain network from classified pairwise distances.

Subcommands:
  fit        cluster a collection from a mixture fit or a fixed boundary
  reference  cluster a collection from precomputed pair labels
  assign     fold new queries into an existing network
  mst        minimum spanning tree over all pairwise distances`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&a.envFile, "env", "", "Environment file (default .env)")
	rootCmd.PersistentFlags().StringVar(&a.metricsFile, "metrics", "", "Write run metrics to this file in text exposition format")
	rootCmd.PersistentFlags().IntP("threads", "t", 0, "Worker threads (overrides STRAINNET_THREADS)")

	rootCmd.AddCommand(fitCommand(a))
	rootCmd.AddCommand(referenceCommand(a))
	rootCmd.AddCommand(assignCommand(a))
	rootCmd.AddCommand(mstCommand(a))
	rootCmd.AddCommand(versionCommand())

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Name() == "version" {
		return nil
	}
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if t, _ := cmd.Flags().GetInt("threads"); t > 0 {
		cfg.Threads = t
	}
	if cmd.Flags().Changed("rank") {
		cfg.Rank, _ = cmd.Flags().GetInt("rank")
	} else if cmd.Name() == "mst" && !rankFromEnv() {
		cfg.Rank = defaultMSTRank
	}
	if b, _ := cmd.Flags().GetString("backend"); b != "" {
		cfg.Backend = b
	}
	a.cfg = cfg

	if a.log, err = logger.New(cfg.LogLevel); err != nil {
		return err
	}
	if !cfg.EnvFileLoaded {
		a.log.Warn("No .env found, using local environment")
	}
	a.log.Info("strainnet", zap.String("version", version), zap.String("command", cmd.Name()))

	a.met = newMetricsSink(a.metricsFile)
	a.eng, err = engine.New(engine.Config{
		Threads:             cfg.Threads,
		Rank:                cfg.Rank,
		Backend:             cfg.Backend,
		Component:           cfg.Component,
		MinRetainedFraction: cfg.MinRetainedFraction,
		Logger:              a.log,
		Metrics:             a.met.metrics(),
	})

	return err
}

func (a *app) teardown() error {
	if a.log == nil {
		return nil
	}
	defer a.log.Sync() //nolint:errcheck

	return a.met.flush()
}

func rankFromEnv() bool {
	v, ok := os.LookupEnv(config.EnvRank)
	return ok && v != ""
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("strainnet " + version)
		},
	}
}

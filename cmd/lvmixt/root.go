// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	cfg    *Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lvmixt",
	Short: "Mixture-model clustering of mixed-type data with missing values",
	Long: `lvmixt estimates a mixture model on categorical, count and continuous
variables with a stochastic EM algorithm, then refines the partition and
imputes the missing values with a Gibbs sampler.

Learning writes the estimated parameters, which prediction reads back to
classify new individuals.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = LoadConfig(cfgFile, cmd); err != nil {
			return err
		}

		zc := zap.NewProductionConfig()
		if verbose || cfg.Log.Level == "debug" {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
			zc.Level = zap.NewAtomicLevelAt(lvl)
		}
		if logger, err = zc.Build(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command. An interrupt cancels the running request.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default lvmixt.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output file, stdout when empty")
	rootCmd.PersistentFlags().String("format", "json", "output format: json or yaml")
	rootCmd.PersistentFlags().Uint64("seed", 0, "random seed, 0 keeps the request seed")
	rootCmd.PersistentFlags().Int("parallelism", 0, "concurrent learning trials, 0 means one per trial")

	rootCmd.AddCommand(learnCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(versionCmd)
}

// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmixt/jsonio"
	"github.com/katalvlaran/lvmixt/mixture"
	"github.com/katalvlaran/lvmixt/run"
)

// errRunStopped is returned after the output was written when the run
// stopped on a diagnostic.
var errRunStopped = errors.New("run stopped, see mixture.warnLog in the output")

var paramFile string

var learnCmd = &cobra.Command{
	Use:   "learn <request>",
	Short: "Estimate a mixture model",
	Long: `Reads a request (mode, nbClass, confidenceLevel, mcStrategy, resGetData_lm),
runs the SEM and Gibbs strategies and writes the criteria, the completed data
and the estimated parameters.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, args[0], mixture.Learning)
	},
}

var predictCmd = &cobra.Command{
	Use:   "predict <request>",
	Short: "Classify individuals with previously estimated parameters",
	Long: `Reads a request and the output of a learning run (--param, or the
param field of the request), then runs the Gibbs sampler with frozen
parameters.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, args[0], mixture.Prediction)
	},
}

func init() {
	predictCmd.Flags().StringVar(&paramFile, "param", "", "output of a learning run")
}

func runRequest(cmd *cobra.Command, path string, mode mixture.RunMode) error {
	raw, err := readInput(path)
	if err != nil {
		return err
	}
	req, err := jsonio.ReadRequest(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	req.Mode = mode.String()
	if mode == mixture.Prediction && paramFile != "" {
		if req.Param, err = readInput(paramFile); err != nil {
			return err
		}
	}
	cfg.Apply(req)

	opts := []run.Option{run.WithLogger(logger), run.WithParallelism(cfg.Parallelism)}
	if cfg.Seed != 0 {
		opts = append(opts, run.WithSeed(cfg.Seed))
	}
	resp, err := run.Execute(cmd.Context(), req, opts...)
	if err != nil {
		return err
	}

	data, err := encodeResponse(resp, cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), cfg.Output.Path, data); err != nil {
		return err
	}
	if resp.Mixture.WarnLog != "" {
		logger.Warn("run stopped", zap.String("run_id", resp.Mixture.RunID), zap.String("warnLog", resp.Mixture.WarnLog))
		return errRunStopped
	}

	return nil
}

// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/lvmixt/jsonio"
)

// Config holds the CLI settings.
type Config struct {
	Strategy    StrategyConfig `mapstructure:"strategy"`
	Seed        uint64         `mapstructure:"seed"`
	Parallelism int            `mapstructure:"parallelism"`
	Log         LogConfig      `mapstructure:"log"`
	Output      OutputConfig   `mapstructure:"output"`
}

// StrategyConfig fills the strategy fields a request leaves at zero.
type StrategyConfig struct {
	NbBurnInIter         int     `mapstructure:"nb_burn_in_iter"`
	NbIter               int     `mapstructure:"nb_iter"`
	NbGibbsBurnInIter    int     `mapstructure:"nb_gibbs_burn_in_iter"`
	NbGibbsIter          int     `mapstructure:"nb_gibbs_iter"`
	NInitPerClass        int     `mapstructure:"n_init_per_class"`
	NSemTry              int     `mapstructure:"n_sem_try"`
	NbTrialInInit        int     `mapstructure:"nb_trial_in_init"`
	RatioStableCriterion float64 `mapstructure:"ratio_stable_criterion"`
	NStableCriterion     int     `mapstructure:"n_stable_criterion"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// LoadConfig reads path, or lvmixt.yaml from the current directory and the
// user config directory when path is empty, then applies LVMIXT_*
// environment variables and the flags of cmd that were set.
func LoadConfig(path string, cmd *cobra.Command) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lvmixt")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(userConfigDir())
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("LVMIXT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key, flag := range map[string]string{
			"output.format": "format",
			"output.path":   "output",
			"seed":          "seed",
			"parallelism":   "parallelism",
		} {
			if f := cmd.Flags().Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", flag, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	switch cfg.Output.Format {
	case "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown output format %q, expected json or yaml", cfg.Output.Format)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("output.format", "json")
	v.SetDefault("output.path", "")
	v.SetDefault("seed", 0)
	v.SetDefault("parallelism", 0)
	for _, key := range []string{
		"nb_burn_in_iter", "nb_iter", "nb_gibbs_burn_in_iter", "nb_gibbs_iter",
		"n_init_per_class", "n_sem_try", "nb_trial_in_init", "n_stable_criterion",
	} {
		v.SetDefault("strategy."+key, 0)
	}
	v.SetDefault("strategy.ratio_stable_criterion", 0.0)
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "lvmixt")
	}

	return "."
}

// Apply fills the strategy fields req leaves at zero.
func (c *Config) Apply(req *jsonio.Request) {
	sp, s := &req.MCStrategy, c.Strategy
	fill(&sp.NbBurnInIter, s.NbBurnInIter)
	fill(&sp.NbIter, s.NbIter)
	fill(&sp.NbGibbsBurnInIter, s.NbGibbsBurnInIter)
	fill(&sp.NbGibbsIter, s.NbGibbsIter)
	fill(&sp.NInitPerClass, s.NInitPerClass)
	fill(&sp.NSemTry, s.NSemTry)
	fill(&sp.NbTrialInInit, s.NbTrialInInit)
	fill(&sp.NStableCriterion, s.NStableCriterion)
	if sp.RatioStableCriterion == 0 {
		sp.RatioStableCriterion = s.RatioStableCriterion
	}
}

func fill(dst *int, v int) {
	if *dst == 0 {
		*dst = v
	}
}

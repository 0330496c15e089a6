// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/lvsolve/config"
	"github.com/katalvlaran/lvsolve/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	configPath  string
	showMetrics bool

	cfg      config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	recorder metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "lvsolve",
		Short:         "Distributed sparse format and preconditioner adapters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd, args)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if !a.showMetrics {
				return nil
			}
			return a.dumpMetrics(cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.Int("ranks", 1, "number of in-process ranks")
	pf.String("map", config.MapUniform, "row distribution: uniform or roundrobin")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.BoolVar(&a.showMetrics, "metrics", false, "print Prometheus metrics after the run")

	root.AddCommand(newExtractCmd(a), newPrecondCmd(a))

	return root
}

// setup loads the configuration, lets explicitly set flags override it, and
// builds the logger and metrics registry.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("ranks") {
		cfg.Ranks, _ = flags.GetInt("ranks")
	}
	if flags.Changed("map") {
		cfg.Map, _ = flags.GetString("map")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("format") {
		cfg.Extract.Format, _ = flags.GetString("format")
	}
	if flags.Changed("root") {
		cfg.Extract.Root, _ = flags.GetInt("root")
	}
	if flags.Changed("replicated") {
		cfg.Extract.Replicated, _ = flags.GetBool("replicated")
	}
	if flags.Changed("damping") {
		cfg.Precond.Damping, _ = flags.GetFloat64("damping")
	}
	if len(args) > 0 {
		cfg.Matrix = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Matrix == "" {
		return fmt.Errorf("no matrix file: pass a path or set matrix in the config: %w", config.ErrInvalidConfig)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.registry = prometheus.NewRegistry()
	rec, err := metrics.NewPrometheus(a.registry, "lvsolve")
	if err != nil {
		return err
	}
	a.recorder = rec

	return nil
}

func (a *app) dumpMetrics(w io.Writer) error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}

	return nil
}

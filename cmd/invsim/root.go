package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cgfgestion/investment-simulator/internal/cache"
	"github.com/cgfgestion/investment-simulator/internal/calculation"
	"github.com/cgfgestion/investment-simulator/internal/config"
	"github.com/cgfgestion/investment-simulator/internal/logging"
)

// app is the wiring shared by every subcommand, built once the persistent
// flags are parsed.
type app struct {
	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.CalculationEngine
	closer   func() error
}

type rootOptions struct {
	configPath string
	logLevel   string
	cache      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	root := &cobra.Command{
		Use:          "invsim",
		Short:        "Investment simulator for monthly-compounded savings plans",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init(opts)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "settings file (YAML)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.cache, "cache", "", "result cache: none, memory, redis")

	root.AddCommand(
		newSolveCmd(a),
		newRunCmd(a),
		newSweepCmd(a),
		newServeCmd(a),
		newInitCmd(a),
	)
	return root
}

func (a *app) init(opts *rootOptions) error {
	settings, err := config.LoadSettings(opts.configPath)
	if err != nil {
		return err
	}
	if opts.cache != "" {
		settings.Cache.Backend = opts.cache
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(settings.Logging, opts.logLevel)
	if err != nil {
		return err
	}

	store, err := cache.New(cache.Options{
		Backend:   settings.Cache.Backend,
		RedisAddr: settings.Cache.RedisAddr,
		TTL:       settings.Cache.TTL,
	})
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(logging.NewEngineLogger(logger))
	if store != nil {
		engine.SetCache(store)
		if rs, ok := store.(*cache.RedisStore); ok {
			a.closer = rs.Close
		}
		logger.Debug("result cache enabled", zap.String("backend", settings.Cache.Backend))
	}

	a.settings = settings
	a.logger = logger
	a.engine = engine
	return nil
}

func (a *app) close() error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.closer != nil {
		return a.closer()
	}
	return nil
}

func (a *app) reportOptions() calculation.ReportOptions {
	return calculation.ReportOptions{
		Company:  a.settings.Report.Company,
		Currency: a.settings.Report.Currency,
	}
}

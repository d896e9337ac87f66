package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/config"
	"github.com/rgehrsitz/finwise/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what the root command resolves before any subcommand runs.
type app struct {
	settings config.Settings
	logger   *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "finwise",
		Short: "Indian personal finance calculators",
		Long: `Loan, investment, retirement, tax, cloud cost, carbon footprint and
credit card calculators with Indian rates and rules.

Rates come from the built-in defaults or a YAML/JSON file passed with --config.
Every setting can also be given as a FINWISE_ environment variable, for example
FINWISE_LOG_LEVEL=debug or FINWISE_SERVER_ADDR=:9090.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Rates configuration file (YAML or JSON); built-in rates when empty")
	flags.String("settings", "", "Settings file for log, output and server options")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")

	rootCmd.AddCommand(
		a.calculateCmd(),
		a.validateCmd(),
		a.compareCmd(),
		a.defaultsCmd(),
		a.kindsCmd(),
		a.serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

// flagBindings maps setting keys to the flags that override them. Flags a
// command does not define are skipped.
var flagBindings = map[string]string{
	config.KeyConfigPath: "config",
	config.KeyLogLevel:   "log-level",
	config.KeyLogFormat:  "log-format",
	config.KeyOutput:     "format",
	config.KeyServerAddr: "addr",
}

// setup resolves settings from defaults, the settings file, FINWISE_
// variables and flags, in increasing priority, and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	settingsFile, _ := cmd.Flags().GetString("settings")
	v, err := config.NewViper(settingsFile)
	if err != nil {
		return err
	}
	for key, name := range flagBindings {
		if key == config.KeyOutput && cmd.Name() != "calculate" {
			continue
		}
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}
	a.settings = config.LoadSettings(v)

	logger, err := logging.New(a.settings.LogLevel, a.settings.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// engine builds the calculation engine from the configured rates file.
func (a *app) engine() (*calculation.CalculationEngine, error) {
	engine, err := config.NewInputParser().LoadEngine(a.settings.ConfigPath)
	if err != nil {
		return nil, err
	}
	engine.SetLogger(a.logger.Sugar())
	if a.settings.ConfigPath != "" {
		a.logger.Debug("loaded rates", zap.String("path", a.settings.ConfigPath))
	}
	return engine, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finwise %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

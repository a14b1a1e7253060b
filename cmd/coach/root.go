package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/config"
	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/observability"
	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/tool"
	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/tool/builtins"
)

// Global flags
var (
	cfgFile   string
	debugFlag bool
)

// Loaded by loadConfig before any command runs.
var (
	appConfig *config.Config
	appLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "coach",
	Short: "CS2 coaching assistant tool runtime",
	Long: `Coach hosts the assistant's tool execution framework: a registry of
named tools with per-tool locking, retry with exponential backoff, execution
statistics, and health probes.

Use the tool subcommands to inspect and invoke the built-in tools.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// Execute runs the root command with signal handling.
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// loadConfig is called before any command runs to load configuration.
func loadConfig(cmd *cobra.Command, args []string) error {
	// config init must work before a config file exists
	if cmd.Name() == "init" || cmd.Name() == "version" || cmd.Name() == "help" {
		return nil
	}

	path := cfgFile
	if path == "" {
		path = os.Getenv("COACH_CONFIG")
	}
	if path == "" {
		path = defaultConfigPath()
	}

	cfg, err := config.NewConfigLoader(config.NewValidator()).LoadWithDefaults(path)
	if err != nil {
		return err
	}

	if debugFlag {
		cfg.Core.Debug = true
		cfg.Logging.Level = "debug"
	}

	appConfig = cfg
	appLogger = observability.NewLogger(cfg.Logging, os.Stderr)
	return nil
}

// defaultConfigPath returns ~/.cs2-coach/config.yaml.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".cs2-coach", "config.yaml")
	}
	return filepath.Join(home, ".cs2-coach", "config.yaml")
}

// newFramework builds a framework from the loaded configuration and registers
// the built-in tools.
func newFramework() (*tool.Framework, error) {
	fw := tool.NewFramework(
		tool.WithLogger(appLogger),
		tool.WithEngineOptions(
			tool.WithDefaultTimeout(appConfig.Engine.DefaultTimeout),
			tool.WithBackoffPolicy(tool.BackoffPolicy{
				InitialDelay: appConfig.Engine.Backoff.InitialDelay,
				MaxDelay:     appConfig.Engine.Backoff.MaxDelay,
				Multiplier:   appConfig.Engine.Backoff.Multiplier,
			}),
		),
		tool.WithHealthOptions(
			tool.WithProbeTimeout(appConfig.Health.ProbeTimeout),
			tool.WithProbeConcurrency(appConfig.Health.Concurrency),
		),
	)

	if err := builtins.RegisterAll(fw); err != nil {
		fw.Close()
		return nil, err
	}

	return fw, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default ~/.cs2-coach/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(toolCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

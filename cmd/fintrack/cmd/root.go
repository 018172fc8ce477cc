// Package cmd provides the fintrack command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/session"
	"fintrack/internal/ui"
)

var (
	envFile string
	debug   bool

	cfg    *config.Config
	logger *log.Logger
)

// rootCmd starts the interactive ledger when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "fintrack",
	Short: "Track expenses, income and budgets from the command line",
	Long: `fintrack keeps a ledger of expenses and income and a set of budgets,
driven by one-line commands typed at the prompt.

Data is stored in the backend chosen by DATA_BACKEND (file, sqlite, sheets
or memory). Type 'help' at the prompt for the command list.

Example:
  fintrack
  fintrack exec addExp lunch '$/12.50' c/Food`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.LoadEnvFile(envFile); err != nil {
			return err
		}
		var err error
		if cfg, err = cli.LoadAndValidateConfig(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if logger, err = cli.SetupLogger(os.Stderr, cfg.LogLevel, debug); err != nil {
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return withSession(ctx, func(s *session.Session) error {
			return s.Run(ctx, cmd.InOrStdin())
		}, ui.NewConsole(cmd.OutOrStdout()))
	},
}

// errCommandFailed reports a ledger command whose error the session has
// already printed.
var errCommandFailed = errors.New("ledger command failed")

// Execute runs the root command. It is called once by main.main().
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, errCommandFailed) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is .env when present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(execCmd)
	rootCmd.AddCommand(backendsCmd)
}

// withSession opens the configured backend, runs fn and releases the backend.
func withSession(ctx context.Context, fn func(*session.Session) error, out ui.Printer) error {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	result, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := result.Close(); err != nil {
			logger.Warn("Failed to close backend", "error", err)
		}
	}()

	s, err := session.Open(ctx, result.Store, out, logger)
	if err != nil {
		return err
	}
	return fn(s)
}

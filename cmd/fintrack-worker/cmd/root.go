// Package cmd provides the fintrack-worker command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/backend"
	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/worker"
)

const shutdownTimeout = 30 * time.Second

var (
	envFile string
	debug   bool

	cfg    *config.Config
	logger *log.Logger
)

// rootCmd mirrors the primary ledger store into Google Sheets.
var rootCmd = &cobra.Command{
	Use:   "fintrack-worker",
	Short: "Mirror the fintrack ledger into Google Sheets",
	Long: `fintrack-worker consumes ledger change events from RabbitMQ and copies
the primary store (file or sqlite) into a Google Sheets spreadsheet. A full
mirror also runs at start-up and every MIRROR_INTERVAL.

Example:
  fintrack-worker --env-file worker.env`,
	Args:          cobra.NoArgs,
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
		if err := cfg.ValidateWorker(); err != nil {
			return fmt.Errorf("invalid worker configuration: %w", err)
		}
		if logger, err = cli.SetupLogger(os.Stdout, cfg.LogLevel, debug); err != nil {
			return err
		}
		logger = logger.WithComponent(log.ComponentWorker)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

// Execute runs the root command. It is called once by main.main().
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is .env when present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func run(parent context.Context) error {
	logger.Info("Starting fintrack-worker")

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}

	// The worker only reads the primary store, so it never publishes.
	sourceCfg := bcfg
	sourceCfg.AMQPURL = ""
	source, err := backend.NewFactory(logger).CreateBackend(parent, sourceCfg)
	if err != nil {
		return fmt.Errorf("open primary store: %w", err)
	}

	target, err := backend.NewMirrorTarget(parent, bcfg)
	if err != nil {
		source.Close()
		return fmt.Errorf("open mirror: %w", err)
	}
	logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		source.Close()
		return fmt.Errorf("initialize AMQP client: %w", err)
	}

	parent, stop := context.WithCancel(parent)
	ctx, done := cli.GracefulShutdown(parent, logger, shutdownTimeout, func() {
		if err := amqpClient.Close(); err != nil {
			logger.Warn("Failed to close AMQP client", "error", err)
		}
		if err := source.Close(); err != nil {
			logger.Warn("Failed to close primary store", "error", err)
		}
	})

	mirror := worker.NewMirrorWorker(source.Store, target)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeLedgerChanges(gctx, mirror.HandleChange)
	})
	g.Go(func() error {
		return mirror.Run(gctx, cfg.MirrorInterval)
	})

	logger.Info("Worker running",
		"interval", cfg.MirrorInterval.String(),
		"queue", cfg.AMQPQueue)

	err = g.Wait()
	stop()
	<-done
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("worker stopped: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"toolnav/internal/config"
	"toolnav/internal/logger"
	"toolnav/pkg/database"
)

type rootOptions struct {
	configPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := rootOptions{}

	root := &cobra.Command{
		Use:           "toolnav",
		Short:         "Localized AI tools directory API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "optional YAML config file; environment variables override it")

	root.AddCommand(
		newServeCmd(&opts),
		newCheckCmd(&opts),
	)

	return root
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			return serve(ctx, cfg, log)
		},
	}
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and probe the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			pool, err := database.NewPool(cmd.Context(), databaseConfig(cfg), log)
			if err != nil {
				return fmt.Errorf("database: %w", err)
			}
			defer pool.Close()

			if _, err := pool.Exec(cmd.Context(), "SELECT 1"); err != nil {
				return fmt.Errorf("database probe: %w", err)
			}
			log.Info("configuration ok",
				zap.String("schema", cfg.Schema.Generation),
				zap.String("media_backend", cfg.Media.Backend),
				zap.Bool("rate_limit", cfg.Redis.Addr != ""))
			return nil
		},
	}
}

func bootstrap(opts *rootOptions) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

func databaseConfig(cfg config.Config) database.Config {
	return database.Config{
		URL:            cfg.Database.URL,
		MaxConns:       cfg.Database.MaxConns,
		MinConns:       cfg.Database.MinConns,
		CommandTimeout: cfg.Database.CommandTimeout,
	}
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

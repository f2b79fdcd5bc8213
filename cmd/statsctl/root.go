package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/forgo/statline/api/internal/config"
	"github.com/forgo/statline/api/internal/search"
)

// storeOpener matches repository.OpenStore so tests can substitute a store
type storeOpener func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (search.RecordStore, func(), error)

type app struct {
	cfgFile  string
	logLevel string
	open     storeOpener
	logger   *slog.Logger
}

func newRootCmd(open storeOpener) *cobra.Command {
	a := &app{open: open, logger: slog.Default()}

	root := &cobra.Command{
		Use:   "statsctl",
		Short: "Statline: search and load league statistics",
		Long: `statsctl runs league statistics searches and loads records using the
same configuration as the API server.

Configuration comes from environment variables (STORE_BACKEND, DB_HOST,
PG_DSN, BADGER_DIR, ...) and optionally a config file given with --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level %q", a.logLevel)
			}
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}

	// Global flags
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML, TOML or .env); environment variables still win")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.searchCmd(),
		a.fieldsCmd(),
		a.seedCmd(),
		a.hashKeyCmd(),
	)
	return root
}

func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.LoadFile(a.cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// withStore opens the configured store for the duration of fn
func (a *app) withStore(ctx context.Context, fn func(cfg *config.Config, store search.RecordStore) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	store, closeStore, err := a.open(ctx, cfg, a.logger)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(cfg, store)
}

func printLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}

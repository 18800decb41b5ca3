package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aminethecode/agenda/internal/config"
	"github.com/aminethecode/agenda/internal/event"
	"github.com/aminethecode/agenda/internal/identity"
	"github.com/aminethecode/agenda/internal/storage"
)

// appEnv bundles the wired application: config, durable storage, the
// identity service, and the event store. Every command opens one, uses it,
// and closes it before returning.
type appEnv struct {
	cfg      *config.Config
	log      *slog.Logger
	storage  *storage.Store
	identity *identity.Service
	events   *event.Store
}

// openEnv loads configuration, opens the database, and rehydrates the
// identity service and event store.
func openEnv(ctx context.Context, opts *RootOptions) (*appEnv, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}

	log := newLogger(cfg.LogLevel, opts.Verbose)

	store, err := storage.Open(cfg.StoragePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}

	ident, err := identity.Open(ctx, store, log)
	if err != nil {
		store.Close()
		return nil, WrapExitError(ExitCommandError, "open identity store", err)
	}

	events, err := event.Open(ctx, ident, store)
	if err != nil {
		store.Close()
		return nil, WrapExitError(ExitCommandError, "open event store", err)
	}

	return &appEnv{cfg: cfg, log: log, storage: store, identity: ident, events: events}, nil
}

func (e *appEnv) Close() error {
	return e.storage.Close()
}

// formatter builds the output formatter for a command from the global flags.
func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
}

func newLogger(level string, verbose bool) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	if verbose {
		l = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

package database

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// BadgerConfig holds embedded store configuration
type BadgerConfig struct {
	Dir string
	// InMemory keeps everything in RAM; Dir is ignored
	InMemory bool
}

// OpenBadger opens an embedded Badger store
func OpenBadger(cfg BadgerConfig, logger *slog.Logger) (*badger.DB, error) {
	if !cfg.InMemory && cfg.Dir == "" {
		return nil, fmt.Errorf("%w: badger directory is required", ErrConnection)
	}

	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.WithLogger(badgerLogger{logger: logger.With(slog.String("component", "badger"))})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: open badger: %v", ErrConnection, err)
	}
	return db, nil
}

// badgerLogger routes Badger's printf logging through slog. Info and debug
// chatter is demoted one level.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(trimFormat(format, args))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(trimFormat(format, args))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(trimFormat(format, args))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(trimFormat(format, args))
}

func trimFormat(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}

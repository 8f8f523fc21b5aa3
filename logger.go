package gettranslated

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/pitabwire/util"
)

// newLogger builds the SDK logger from configuration. Unparseable
// levels fall back to warn, the level the other SDK ports default to.
func newLogger(ctx context.Context, cfg Config) *util.LogEntry {
	logLevel, err := util.ParseLevel(cfg.LoggingLevel())
	if err != nil {
		logLevel = slog.LevelWarn
	}

	opts := []util.Option{
		util.WithLogLevel(logLevel),
		util.WithLogNoColor(!cfg.LoggingColored()),
	}

	if cfg.LoggingColored() {
		opts = append(opts, util.WithLogHandler(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.TimeOnly,
		})))
	}

	log := util.NewLogger(ctx, opts...)
	return log.WithField("sdk", "gettranslated")
}

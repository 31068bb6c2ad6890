// logger.go - Structured logging for the pool daemon
//
// The daemon and the gnark library share one zerolog sink: the configured
// logger is installed as gnark's root logger, so constraint-system and
// prover logs land in the same stream as daemon events.
package main

import (
	"fmt"
	"io"
	"os"

	gnarklogger "github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// NewLogger builds the daemon logger: console output, optionally duplicated
// into a log file, at the configured level.
func NewLogger(level, logFile string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	var w io.Writer = console
	closeFn := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(console, f)
		closeFn = func() { f.Close() }
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	gnarklogger.Set(logger)
	return logger, closeFn, nil
}

// Command memlat prints a memory latency grid for the host.
//
// It takes no flags. The grid goes to stdout, progress logs to stderr.
// Interrupting it stops after the last complete row.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hupe1980/memlat"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := memlat.NewTextLogger(slog.LevelInfo)

	p, err := memlat.New(memlat.WithLogger(logger))
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	if err := p.Run(ctx, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted")
		}
		return 1
	}

	return 0
}

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/strikeback/internal/core/observability/log"
	"github.com/zeusync/strikeback/internal/injector"
)

func main() {
	level := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	output := flag.String("log-output", "stderr", "log destination: stderr or a file path")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := injector.InitializePilot(log.ParseLevel(*level), *output)
	logger := app.Logger
	defer func() { _ = logger.Sync() }()

	if err := app.Pilot.Run(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("pilot stopped", log.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

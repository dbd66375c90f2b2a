package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/strikeback/internal/arena"
	"github.com/zeusync/strikeback/internal/core/observability/log"
)

func main() {
	configPath := flag.String("config", "", "arena YAML config; built-in defaults when empty")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(log.ParseLevel(*level))
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal("load config", log.String("path", *configPath), log.Error(err))
	}

	report, err := arena.Run(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("arena run", log.Error(err))
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err = enc.Encode(report); err != nil {
		logger.Fatal("write report", log.Error(err))
	}
	_ = enc.Close()
}

func loadConfig(path string) (*arena.Config, error) {
	if path == "" {
		return arena.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return arena.LoadYAML(f)
}

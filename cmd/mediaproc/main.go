// Command mediaproc is the process entrypoint: load config, build the
// structured logger, open and migrate the catalogue store, and run the
// supervisor until a shutdown signal arrives (SPEC_FULL.md §4.8), grounded
// on the teacher's cmd/viewra/main.go signal-handling + context.WithCancel
// shutdown idiom.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rodrigomideac/fixmylib/internal/catalogue"
	"github.com/rodrigomideac/fixmylib/internal/config"
	"github.com/rodrigomideac/fixmylib/internal/logging"
	"github.com/rodrigomideac/fixmylib/internal/supervisor"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "mediaproc:", err)
		return 1
	}

	logger := logging.New("mediaproc", cfg.LogLevel, cfg.LogJSON)

	store, err := catalogue.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open catalogue store", "err", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	sup := supervisor.New(cfg, store, logger)
	if err := sup.Run(ctx); err != nil {
		logger.Error("supervisor exited with an error", "err", err)
		return 1
	}

	logger.Info("shutdown complete")
	return 0
}

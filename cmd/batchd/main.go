package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/five82/batchview/internal/fallback"
	"github.com/five82/batchview/internal/logging"
	"github.com/five82/batchview/internal/upstream"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", ":8080", "listen address")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logger, closer, err := logging.Init(logging.Options{Level: *logLevel, Console: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "batchd: %v\n", err)
		return 1
	}
	defer closer.Close()

	store, err := fallback.Default()
	if err != nil {
		logger.Error().Err(err).Msg("load dataset")
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := upstream.NewApp(store, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(*addr)
	}()
	logger.Info().Str("addr", *addr).Int("batches", store.Len()).Strs("ids", store.IDs()).Msg("batchd listening")

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("listen")
			return 1
		}
	case <-ctx.Done():
		if err := srv.ShutdownWithTimeout(5 * time.Second); err != nil {
			logger.Error().Err(err).Msg("shutdown")
			return 1
		}
	}
	logger.Info().Msg("batchd stopped")
	return 0
}

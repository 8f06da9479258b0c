package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/batchview/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: batchview [flags] [/batch/<id> | /?batch_id=<id> | <id>]\n\n")
		flag.PrintDefaults()
	}
	configPath := flag.String("config", "", "override config path (optional)")
	pollSeconds := flag.Int("poll", 0, "sync refresh interval in seconds (optional, overrides refresh_interval)")
	offline := flag.Bool("offline", false, "serve batches from the embedded dataset only")
	batchID := flag.String("batch", "", "batch id, as if taken from /batch/<id> (optional)")
	queryID := flag.String("query", "", "batch id, as if taken from ?batch_id=<id> (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		Location:   flag.Arg(0),
		BatchID:    *batchID,
		QueryID:    *queryID,
		Offline:    *offline,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "batchview: %v\n", err)
		return 1
	}
	return 0
}

package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/batchview/internal/batch"
	"github.com/five82/batchview/internal/config"
	"github.com/five82/batchview/internal/fallback"
	"github.com/five82/batchview/internal/ident"
	"github.com/five82/batchview/internal/logging"
	"github.com/five82/batchview/internal/state"
	"github.com/five82/batchview/internal/syncer"
	"github.com/five82/batchview/internal/ui"
)

// Options configure the batchview application.
type Options struct {
	ConfigPath string
	// Location is a route such as "/batch/<id>" or "/?batch_id=<id>", or a
	// bare id.
	Location string
	// BatchID and QueryID override the path and query values parsed from
	// Location.
	BatchID string
	QueryID string
	// PollEvery overrides the configured refresh interval, in seconds. Zero
	// keeps the configured value.
	PollEvery int
	// Offline serves records from the embedded dataset only, as does the
	// offline config key.
	Offline bool
}

// session holds everything Run wires before handing the terminal to the UI.
type session struct {
	cfg        config.Config
	logger     zerolog.Logger
	controller *syncer.Controller
	logCloser  io.Closer
}

// Run boots the batchview TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := start(ctx, opts)
	if err != nil {
		return err
	}
	defer s.Close()

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: s.controller,
		ThemeName:  s.cfg.Theme,
		LogPath:    s.cfg.LogPath(),
	})
}

// start loads configuration, opens the log, builds the sync controller and
// binds the resolved identifier.
func start(ctx context.Context, opts Options) (*session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.Init(logging.Options{Level: cfg.LogLevel, Dir: cfg.LogDir})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	if opts.Offline {
		cfg.Offline = true
	}

	syncOpts := syncer.Options{
		Store:    &state.Store{},
		Interval: cfg.RefreshInterval,
		Logger:   &logger,
	}
	if opts.PollEvery > 0 {
		syncOpts.Interval = time.Duration(opts.PollEvery) * time.Second
	}

	source := "offline dataset"
	if cfg.Offline || cfg.Fallback {
		dataset, err := fallback.Default()
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("load offline dataset: %w", err)
		}
		if cfg.Offline {
			syncOpts.Fetcher = fallback.NewFixedClient(dataset)
			syncOpts.FetchSource = state.SourceFallback
		} else {
			syncOpts.Fallback = dataset
		}
	}
	if !cfg.Offline {
		client, err := batch.NewClient(cfg.BaseURL, batch.WithTimeout(cfg.RequestTimeout))
		if err != nil {
			_ = closer.Close()
			return nil, fmt.Errorf("init batch client: %w", err)
		}
		syncOpts.Fetcher = client
		source = client.BaseURL()
	}

	controller, err := syncer.New(syncOpts)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init sync controller: %w", err)
	}

	// A missing identifier binds as blank; the controller reports it as failed.
	id, _ := resolveIdentifier(opts)
	logger.Info().
		Str("source", source).
		Str("identifier", id).
		Bool("offline", cfg.Offline).
		Bool("fallback", syncOpts.Fallback != nil).
		Dur("interval", controller.Interval()).
		Msg("batchview starting")

	controller.Bind(id)
	controller.Start(ctx)

	return &session{cfg: cfg, logger: logger, controller: controller, logCloser: closer}, nil
}

func resolveIdentifier(opts Options) (string, error) {
	pathValue, queryValue := ident.FromLocation(opts.Location)
	if opts.BatchID != "" {
		pathValue = opts.BatchID
	}
	if opts.QueryID != "" {
		queryValue = opts.QueryID
	}
	return ident.Resolve(pathValue, queryValue)
}

// Close stops the controller and flushes the log.
func (s *session) Close() error {
	s.controller.Stop()
	s.logger.Info().Msg("batchview stopped")
	return s.logCloser.Close()
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sphene/coda/internal/config"
	"github.com/sphene/coda/internal/cover"
	"github.com/sphene/coda/internal/logging"
	"github.com/sphene/coda/internal/mpd"
	"github.com/sphene/coda/internal/prefs"
	"github.com/sphene/coda/internal/rate"
	"github.com/sphene/coda/internal/reactor"
	"github.com/sphene/coda/internal/state"
	"github.com/sphene/coda/internal/ui"
)

// Options configure the Coda application.
type Options struct {
	ConfigPath string        // empty uses ~/.config/coda/config.toml
	Address    string        // overrides the configured daemon address
	PrefsPath  string        // empty uses ~/.config/coda/prefs.toml
	PollEvery  time.Duration // overrides the configured poll interval
}

// Run boots the Coda TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Address != "" {
		cfg.Address = opts.Address
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Path:   cfg.LogPath,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logCloser.Close()

	userPrefs := prefs.Load(opts.PrefsPath)

	client := mpd.NewClient(cfg.Address)
	defer client.Close()

	covers := cover.NewLoader(cover.NewCache(cfg.ArtCacheSize), client, cover.WithLogger(logger))

	var rateSwitch *reactor.RateSwitch
	if cfg.BitPerfect {
		if control, ok := rate.Detect(); ok {
			rateSwitch = reactor.NewRateSwitch(control, logger)
			defer rateSwitch.Restore()
			logger.Info("bit perfect output enabled")
		} else {
			logger.Warn("bit perfect configured but no output rate control found")
		}
	}

	store := &state.Store{}

	// Populate the store before the UI draws its first frame; the poller
	// takes over from here.
	_ = refresh(ctx, store, client, logger)
	StartPoller(ctx, store, client, cfg.PollInterval, logger)

	logger.Info("starting ui",
		"address", client.Address(),
		"poll_interval", cfg.PollInterval,
		"eager_library", cfg.EagerLibrary)

	return ui.Run(ui.Options{
		Context:     ctx,
		Client:      client,
		Store:       store,
		Covers:      covers,
		RateReactor: rateSwitch,
		Config:      cfg,
		ThemeName:   userPrefs.Theme,
		PrefsPath:   opts.PrefsPath,
		PollTick:    cfg.PollInterval,
		Logger:      logger,
	})
}

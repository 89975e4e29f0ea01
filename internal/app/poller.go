package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/sphene/coda/internal/mpd"
	"github.com/sphene/coda/internal/state"
)

const (
	defaultPollInterval = time.Second
	maxBackoff          = 30 * time.Second
)

// StartPoller launches a background goroutine that refreshes the store at
// a fixed cadence until the context is cancelled, backing off while the
// daemon stays unreachable. The caller is expected to have run one
// synchronous refresh already, so the loop waits first.
func StartPoller(ctx context.Context, store *state.Store, client *mpd.Client, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		failures := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if err := refresh(ctx, store, client, logger); err != nil {
				failures++
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

// calculateBackoff doubles the base interval per consecutive failure,
// capped at maxBackoff, so a stopped daemon is probed rather than
// hammered.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// refresh pulls one status, current song, and queue snapshot into the
// store. Any failure records the error and leaves the previous snapshot
// data standing, so the UI can label it stale instead of going blank.
func refresh(ctx context.Context, store *state.Store, client *mpd.Client, logger *slog.Logger) error {
	status, err := client.Status(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		logger.Debug("status poll failed", "error", err)
		return err
	}
	current, err := client.CurrentSong(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		logger.Debug("current song poll failed", "error", err)
		return err
	}
	queue, err := client.Queue(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		logger.Debug("queue poll failed", "error", err)
		return err
	}
	store.Update(&status, current, queue, nil)
	return nil
}

package reactor

import (
	"log/slog"

	"github.com/sphene/coda/internal/mpd"
	"github.com/sphene/coda/internal/rate"
)

// RateSwitch watches playback state across status snapshots and keeps the
// audio output's sample rate matched to the playing song. Switching is
// fire and forget: rate changes run on their own goroutine and failures
// are logged, never surfaced, because playback must not stall on an
// output device. Not safe for concurrent use; one goroutine owns it.
type RateSwitch struct {
	control rate.Control
	logger  *slog.Logger
	run     func(func()) // fire-and-forget executor

	lastState  mpd.PlayState
	lastRate   int
	lastRateOK bool
}

// NewRateSwitch returns a reactor driving the given output control. A nil
// logger falls back to slog.Default.
func NewRateSwitch(control rate.Control, logger *slog.Logger) *RateSwitch {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateSwitch{
		control: control,
		logger:  logger,
		run:     func(f func()) { go f() },
	}
}

// Observe reacts to one status snapshot. While playing, a state or song
// rate change resolves the best supported output rate and applies it;
// leaving playback, or starting up outside it, restores the output
// default. songRate is the playing song's sample rate; rateOK is false
// when no usable rate is known, which never triggers a switch.
func (r *RateSwitch) Observe(state mpd.PlayState, songRate int, rateOK bool) {
	switch state {
	case mpd.StatePlay:
		stateChanged := state != r.lastState
		rateChanged := rateOK != r.lastRateOK || songRate != r.lastRate
		if rateOK && (stateChanged || rateChanged) {
			r.run(func() { r.apply(songRate) })
		}
	default:
		if r.lastState == mpd.StatePlay || r.lastState == mpd.StateUnknown {
			r.run(func() { r.reset() })
		}
	}
	r.lastState = state
	r.lastRate, r.lastRateOK = songRate, rateOK
}

func (r *RateSwitch) apply(songRate int) {
	supported, err := r.control.SupportedRates()
	if err != nil {
		r.logger.Debug("query supported rates", "error", err)
		return
	}
	target := rate.Resolve(songRate, supported)
	if target == 0 {
		return
	}
	if err := r.control.SetRate(target); err != nil {
		r.logger.Debug("set output rate", "rate", target, "error", err)
		return
	}
	r.logger.Debug("output rate switched", "rate", target, "song_rate", songRate)
}

func (r *RateSwitch) reset() {
	if err := r.control.Reset(); err != nil {
		r.logger.Debug("reset output rate", "error", err)
	}
}

// Restore synchronously releases any forced output rate. Called once on
// shutdown, after the last Observe.
func (r *RateSwitch) Restore() {
	r.reset()
}

package reactor

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/sphene/coda/internal/mpd"
)

type fakeControl struct {
	supported []int
	supErr    error
	sets      []int
	setErr    error
	resets    int
}

func (f *fakeControl) SupportedRates() ([]int, error) { return f.supported, f.supErr }
func (f *fakeControl) SetRate(hz int) error {
	f.sets = append(f.sets, hz)
	return f.setErr
}
func (f *fakeControl) Reset() error {
	f.resets++
	return nil
}

// newDirectRateSwitch runs effects inline so tests observe them
// synchronously.
func newDirectRateSwitch(control *fakeControl) *RateSwitch {
	r := NewRateSwitch(control, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r.run = func(f func()) { f() }
	return r
}

func TestRateSwitchAppliesOnPlay(t *testing.T) {
	control := &fakeControl{supported: []int{44100, 48000, 96000}}
	r := newDirectRateSwitch(control)

	r.Observe(mpd.StatePlay, 44100, true)
	if len(control.sets) != 1 || control.sets[0] != 44100 {
		t.Errorf("sets = %v, want [44100]", control.sets)
	}
}

func TestRateSwitchSkipsUnknownSongRate(t *testing.T) {
	control := &fakeControl{supported: []int{44100, 48000}}
	r := newDirectRateSwitch(control)

	r.Observe(mpd.StatePlay, 0, false)
	if len(control.sets) != 0 {
		t.Errorf("sets = %v for unknown song rate, want none", control.sets)
	}
}

func TestRateSwitchDoesNotReapply(t *testing.T) {
	control := &fakeControl{supported: []int{44100, 48000}}
	r := newDirectRateSwitch(control)

	r.Observe(mpd.StatePlay, 44100, true)
	r.Observe(mpd.StatePlay, 44100, true)
	if len(control.sets) != 1 {
		t.Errorf("sets = %v after identical snapshots, want one switch", control.sets)
	}
}

func TestRateSwitchFollowsSongRateChanges(t *testing.T) {
	control := &fakeControl{supported: []int{44100, 96000}}
	r := newDirectRateSwitch(control)

	r.Observe(mpd.StatePlay, 44100, true)
	r.Observe(mpd.StatePlay, 96000, true)
	want := []int{44100, 96000}
	if len(control.sets) != len(want) {
		t.Fatalf("sets = %v, want %v", control.sets, want)
	}
	for i := range want {
		if control.sets[i] != want[i] {
			t.Errorf("set %d = %d, want %d", i, control.sets[i], want[i])
		}
	}
}

func TestRateSwitchResolvesToMultiple(t *testing.T) {
	control := &fakeControl{supported: []int{88200, 176400}}
	r := newDirectRateSwitch(control)

	r.Observe(mpd.StatePlay, 44100, true)
	if len(control.sets) != 1 || control.sets[0] != 88200 {
		t.Errorf("sets = %v, want smallest supported multiple 88200", control.sets)
	}
}

func TestRateSwitchResetsOnLeavingPlayback(t *testing.T) {
	control := &fakeControl{supported: []int{44100}}
	r := newDirectRateSwitch(control)

	r.Observe(mpd.StatePlay, 44100, true)
	r.Observe(mpd.StatePause, 44100, true)
	if control.resets != 1 {
		t.Fatalf("resets = %d after pause, want 1", control.resets)
	}

	// Already out of playback: no further resets.
	r.Observe(mpd.StateStop, 0, false)
	if control.resets != 1 {
		t.Errorf("resets = %d after pause then stop, want still 1", control.resets)
	}
}

func TestRateSwitchResetsOnStartupOutsidePlayback(t *testing.T) {
	control := &fakeControl{}
	r := newDirectRateSwitch(control)

	r.Observe(mpd.StatePause, 0, false)
	if control.resets != 1 {
		t.Errorf("resets = %d for first observation paused, want 1", control.resets)
	}
}

func TestRateSwitchReappliesAfterPause(t *testing.T) {
	control := &fakeControl{supported: []int{44100}}
	r := newDirectRateSwitch(control)

	r.Observe(mpd.StatePlay, 44100, true)
	r.Observe(mpd.StatePause, 44100, true)
	r.Observe(mpd.StatePlay, 44100, true)
	want := []int{44100, 44100}
	if len(control.sets) != len(want) {
		t.Errorf("sets = %v, want switch on each entry into playback", control.sets)
	}
	if control.resets != 1 {
		t.Errorf("resets = %d, want 1", control.resets)
	}
}

func TestRateSwitchSurvivesControlErrors(t *testing.T) {
	control := &fakeControl{supErr: errors.New("pipewire gone")}
	r := newDirectRateSwitch(control)

	r.Observe(mpd.StatePlay, 44100, true)
	if len(control.sets) != 0 {
		t.Errorf("sets = %v with failing rate query, want none", control.sets)
	}

	// The failure is not sticky: the next change tries again.
	control.supErr = nil
	control.supported = []int{44100}
	r.Observe(mpd.StatePlay, 48000, true)
	if len(control.sets) != 1 {
		t.Errorf("sets = %v after recovery, want one switch", control.sets)
	}
}

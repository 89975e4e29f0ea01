package reactor

import (
	"context"

	"github.com/sphene/coda/internal/cover"
	"github.com/sphene/coda/internal/library"
)

// CoverTrigger is the slice of the cover loader the song-change reactor
// drives.
type CoverTrigger interface {
	Load(ctx context.Context, key string)
	PrefetchAround(ctx context.Context, queue []library.Track, current int)
}

var _ CoverTrigger = (*cover.Loader)(nil)

// Outcome reports what one observation did.
type Outcome struct {
	// Changed is set when the playing song differs from the previous
	// observation, including transitions to and from nothing playing.
	Changed bool
	// ClearArt is set when nothing is playing anymore and displayed art
	// should be dropped.
	ClearArt bool
}

// SongChange watches the current song across status snapshots and drives
// cover loading when it changes: the new song's art is requested and the
// queue neighbors are prefetched. Observations with an unchanged song are
// free. Not safe for concurrent use; one goroutine owns it.
type SongChange struct {
	covers  CoverTrigger
	lastKey string
	lastOK  bool
}

// NewSongChange returns a reactor driving the given cover loader.
func NewSongChange(covers CoverTrigger) *SongChange {
	return &SongChange{covers: covers}
}

// Observe compares the current song against the last observation. A new
// song triggers an art load plus neighbor prefetches; a transition to
// nothing playing asks the caller to clear displayed art; anything else
// is a no-op.
func (r *SongChange) Observe(ctx context.Context, current *library.Track, queue []library.Track) Outcome {
	if current == nil {
		if !r.lastOK {
			return Outcome{}
		}
		r.lastOK = false
		r.lastKey = ""
		return Outcome{Changed: true, ClearArt: true}
	}
	if r.lastOK && r.lastKey == current.Key {
		return Outcome{}
	}
	r.lastOK = true
	r.lastKey = current.Key
	r.covers.Load(ctx, current.Key)
	r.covers.PrefetchAround(ctx, queue, cover.CurrentIndex(queue, current.Key))
	return Outcome{Changed: true}
}

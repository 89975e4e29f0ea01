// Package reactor turns status snapshots into side effects.
//
// SongChange notices when the playing song differs from the last
// observation and drives cover loading: request art for the new song,
// prefetch the queue neighbors, or signal that displayed art should be
// cleared when playback has no current song. RateSwitch keeps a
// bit-perfect audio output matched to the playing song's sample rate,
// applying and restoring the output configuration on playback
// transitions. Both are driven from the UI update loop, once per
// snapshot; effects that touch the daemon or the audio stack run fire
// and forget so the loop never blocks.
package reactor

// Package rate switches the audio output's sample rate to match the
// playing song, for bit-perfect playback without resampling. Resolve
// picks the target rate from what the output supports; the PipeWire
// implementation forces and releases the graph clock through
// pw-metadata. Platforms without a usable control report none from
// Detect and playback proceeds unswitched.
package rate

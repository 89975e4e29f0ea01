// Package mpd wraps the MPD protocol client behind the shapes the rest
// of the program consumes: library tracks, parsed player status, cover
// bytes, and playback commands. One persistent connection serves
// commands behind a mutex and heals itself by redialing once after a
// failure; cover art transfers run on short-lived connections so they
// never delay commands. Address resolution accepts host, host:port, and
// unix socket paths, and honors MPD_HOST/MPD_PORT.
package mpd

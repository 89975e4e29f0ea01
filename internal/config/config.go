package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything Coda reads from its config file.
type Config struct {
	Address      string        // daemon address: host, host:port, or unix socket path
	MusicDir     string        // local music root, used for lyrics sidecars
	PollInterval time.Duration // daemon poll cadence
	EagerLibrary bool          // fetch the whole catalog at startup
	BitPerfect   bool          // follow the playing song's sample rate on the output
	ArtCacheSize int           // covers kept in memory; 0 keeps the built-in default
	LogLevel     string
	LogFormat    string
	LogPath      string
}

const (
	defaultConfigPath   = "~/.config/coda/config.toml"
	defaultMusicDir     = "~/Music"
	defaultLogPath      = "~/.local/state/coda/coda.log"
	defaultPollInterval = time.Second
)

func defaults() Config {
	return Config{
		MusicDir:     mustExpand(defaultMusicDir),
		PollInterval: defaultPollInterval,
		LogLevel:     "info",
		LogFormat:    "text",
		LogPath:      mustExpand(defaultLogPath),
	}
}

// Load locates and parses the config, falling back to defaults when the
// file is missing. Address stays empty unless configured; the daemon
// client resolves the final target from the environment.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Address      string `toml:"address"`
		MusicDir     string `toml:"music_dir"`
		PollInterval string `toml:"poll_interval"`
		EagerLibrary bool   `toml:"eager_library"`
		BitPerfect   bool   `toml:"bit_perfect"`
		ArtCacheSize int    `toml:"art_cache_size"`
		Log          struct {
			Level  string `toml:"level"`
			Format string `toml:"format"`
			Path   string `toml:"path"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Address = strings.TrimSpace(raw.Address)

	if dir := strings.TrimSpace(raw.MusicDir); dir != "" {
		cfg.MusicDir = mustExpand(dir)
	}

	if interval := strings.TrimSpace(raw.PollInterval); interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return Config{}, fmt.Errorf("parse poll_interval: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("poll_interval %q is not positive", interval)
		}
		cfg.PollInterval = d
	}

	cfg.EagerLibrary = raw.EagerLibrary
	cfg.BitPerfect = raw.BitPerfect

	if raw.ArtCacheSize < 0 {
		return Config{}, fmt.Errorf("art_cache_size %d is negative", raw.ArtCacheSize)
	}
	cfg.ArtCacheSize = raw.ArtCacheSize

	if level := strings.TrimSpace(raw.Log.Level); level != "" {
		cfg.LogLevel = level
	}
	if format := strings.TrimSpace(raw.Log.Format); format != "" {
		cfg.LogFormat = format
	}
	if logPath := strings.TrimSpace(raw.Log.Path); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

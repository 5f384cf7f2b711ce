package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tiles.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		DefaultVariant: "classic",
		Difficulty:     DifficultyNormal,
		Log: LogConfig{
			Level: "info",
		},
		TUI: TUIConfig{
			TickRate:   60,
			SlideTicks: 8, // ~133ms at 60fps
			PopTicks:   6, // ~100ms at 60fps
		},
		Storage: StorageConfig{
			DBPath: "~/.tiles/results.db",
		},
		Server: ServerConfig{
			SSHAddress:  ":23234",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

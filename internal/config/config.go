// Package config loads the YAML configuration for the tile game: the
// default variant, difficulty, logging, terminal UI timing, storage, the
// SSH/spectator servers and user-defined board variants.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/grid"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root configuration document.
type Config struct {
	DefaultVariant string           `yaml:"default_variant"`
	Difficulty     DifficultyPreset `yaml:"difficulty"`
	Log            LogConfig        `yaml:"log"`
	TUI            TUIConfig        `yaml:"tui"`
	Storage        StorageConfig    `yaml:"storage"`
	Server         ServerConfig     `yaml:"server"`
	Variants       []VariantConfig  `yaml:"variants"`
}

// LogConfig controls the charm logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// TUIConfig controls terminal rendering and animation timing.
type TUIConfig struct {
	TickRate   int `yaml:"tick_rate"`   // Frames per second
	SlideTicks int `yaml:"slide_ticks"` // Frames a sliding tile takes
	PopTicks   int `yaml:"pop_ticks"`   // Frames a spawned tile takes to appear
}

// StorageConfig locates the results database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig configures `tiles serve`.
type ServerConfig struct {
	SSHAddress      string        `yaml:"ssh_address"`
	HostKeyPath     string        `yaml:"host_key_path"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	SpectateAddress string        `yaml:"spectate_address"` // Empty disables spectating
}

// VariantConfig declares an extra board variant. Omitted fields take the
// classic board's values.
type VariantConfig struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Rows        int      `yaml:"rows"`
	Cols        int      `yaml:"cols"`
	StartTiles  int      `yaml:"start_tiles"`
	Goal        int      `yaml:"goal"`
	SpawnFour   *float64 `yaml:"spawn_four_probability"` // nil means the default
}

// WithDefaults fills the omitted fields.
func (v VariantConfig) WithDefaults() VariantConfig {
	if v.Rows == 0 {
		v.Rows = grid.DefaultRows
	}
	if v.Cols == 0 {
		v.Cols = grid.DefaultCols
	}
	if v.StartTiles == 0 {
		v.StartTiles = grid.DefaultStartTiles
	}
	if v.Goal == 0 {
		v.Goal = grid.DefaultGoal
	}
	if v.SpawnFour == nil {
		p := grid.DefaultSpawnFourProbability
		v.SpawnFour = &p
	}
	return v
}

// SpawnFourProbability returns the configured probability or the default.
func (v VariantConfig) SpawnFourProbability() float64 {
	if v.SpawnFour == nil {
		return grid.DefaultSpawnFourProbability
	}
	return *v.SpawnFour
}

// Validate checks the fields the loader cannot default.
// Variant geometry is checked when the variant is registered.
func (c Config) Validate() error {
	if c.DefaultVariant == "" {
		return fmt.Errorf("config: default_variant is empty: %w", ErrInvalidConfig)
	}
	if _, err := ParseDifficulty(string(c.Difficulty)); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level %q: %w", c.Log.Level, ErrInvalidConfig)
	}
	if c.TUI.TickRate < 1 || c.TUI.TickRate > 240 {
		return fmt.Errorf("config: tui.tick_rate %d outside [1,240]: %w", c.TUI.TickRate, ErrInvalidConfig)
	}
	if c.TUI.SlideTicks < 0 || c.TUI.PopTicks < 0 {
		return fmt.Errorf("config: negative animation ticks: %w", ErrInvalidConfig)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("config: storage.db_path is empty: %w", ErrInvalidConfig)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout is negative: %w", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Variants))
	for i, v := range c.Variants {
		if v.ID == "" {
			return fmt.Errorf("config: variants[%d] has no id: %w", i, ErrInvalidConfig)
		}
		if seen[v.ID] {
			return fmt.Errorf("config: variant %q declared twice: %w", v.ID, ErrInvalidConfig)
		}
		seen[v.ID] = true
	}
	return nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the search directories.
const FileName = "tiles.yaml"

// Load reads the configuration.
// Search order: customPath -> ~/.tiles/config.yaml -> ./configs/tiles.yaml -> embedded default.
// Fields missing from the file keep their DefaultConfig values.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	cfg, err := parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	for i, v := range cfg.Variants {
		cfg.Variants[i] = v.WithDefaults()
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if dir := UserDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "config.yaml"))
	}
	return append(paths, filepath.Join("configs", FileName))
}

// UserDir returns ~/.tiles, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tiles")
}

// ExpandPaths expands a leading ~ in every file path of the config.
func (c *Config) ExpandPaths() error {
	var err error
	if c.Storage.DBPath, err = ExpandPath(c.Storage.DBPath); err != nil {
		return err
	}
	if c.Server.HostKeyPath, err = ExpandPath(c.Server.HostKeyPath); err != nil {
		return err
	}
	return nil
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

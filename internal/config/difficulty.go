package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset scales how often spawned tiles are 4s.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty accepts a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	}
	return "", fmt.Errorf("config: difficulty %q: %w", s, ErrInvalidConfig)
}

// SpawnFour returns the four-tile probability for a variant whose own
// probability is base. Normal keeps base; easy and hard override it.
func (p DifficultyPreset) SpawnFour(base float64) float64 {
	switch p {
	case DifficultyEasy:
		return 0.1
	case DifficultyHard:
		return 0.5
	default:
		return base
	}
}

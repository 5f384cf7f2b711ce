// Package registry holds the named board variants a player can choose from.
// Built-in variants register themselves in init(); variants from the config
// file are added at startup.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/grid"
)

// DefaultID is the variant used when none is requested.
const DefaultID = "classic"

// ErrUnknownVariant is returned for IDs that were never registered.
var ErrUnknownVariant = errors.New("unknown variant")

// Variant is a named board preset.
type Variant struct {
	ID          string
	Title       string
	Description string
	Rows        int
	Cols        int
	StartTiles  int
	Goal        int
	SpawnFour   float64 // Probability of spawning a 4 instead of a 2
}

// Options returns the engine options for this variant.
func (v Variant) Options() []grid.Option {
	return []grid.Option{
		grid.WithSize(v.Rows, v.Cols),
		grid.WithStartTiles(v.StartTiles),
		grid.WithGoal(v.Goal),
		grid.WithSpawnFourProbability(v.SpawnFour),
	}
}

// Validate checks that the variant has an ID and builds a valid engine.
func (v Variant) Validate() error {
	if v.ID == "" {
		return fmt.Errorf("registry: variant without id: %w", grid.ErrInvalidOption)
	}
	if v.StartTiles < 1 {
		return fmt.Errorf("registry: variant %q starts with no tiles: %w", v.ID, grid.ErrInvalidOption)
	}
	o := grid.DefaultOptions()
	for _, opt := range v.Options() {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return fmt.Errorf("registry: variant %q: %w", v.ID, err)
	}
	return nil
}

// NewEngine creates an idle engine for this variant. A zero seed seeds the
// engine from the clock.
func (v Variant) NewEngine(d grid.Display, seed int64) (*grid.Engine, error) {
	opts := v.Options()
	if seed != 0 {
		opts = append(opts, grid.WithSeed(seed))
	}
	e, err := grid.New(d, opts...)
	if err != nil {
		return nil, fmt.Errorf("registry: variant %q: %w", v.ID, err)
	}
	return e, nil
}

// Size returns the board size as "RxC".
func (v Variant) Size() string {
	return fmt.Sprintf("%dx%d", v.Rows, v.Cols)
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a built-in variant.
// Panics if the ID is taken or the variant is invalid.
func Register(v Variant) {
	if err := Add(v); err != nil {
		panic(err.Error())
	}
}

// Add registers a variant, returning an error if the ID is taken or the
// variant is invalid.
func Add(v Variant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if v.Title == "" {
		v.Title = v.ID
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[v.ID]; exists {
		return fmt.Errorf("registry: variant %q already registered", v.ID)
	}
	variants[v.ID] = v
	return nil
}

// List returns all registered variants, sorted by ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the variant with the given ID.
func Get(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("registry: %q: %w", id, ErrUnknownVariant)
	}
	return v, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}

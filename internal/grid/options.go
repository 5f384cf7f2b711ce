package grid

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Default engine parameters.
const (
	DefaultRows                 = 4
	DefaultCols                 = 4
	DefaultStartTiles           = 2
	DefaultGoal                 = 2048
	DefaultSpawnFourProbability = 0.3
)

var (
	// ErrInvalidDirection is returned for directions outside the closed set.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidOption is returned when engine options fail validation.
	ErrInvalidOption = errors.New("invalid option")
)

// Rand is the random source used for tile values and placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Options holds engine construction parameters.
type Options struct {
	Rows                 int
	Cols                 int
	StartTiles           int
	Goal                 int
	SpawnFourProbability float64
	Rand                 Rand
}

// Option configures an engine.
type Option func(*Options)

// DefaultOptions returns the standard 4x4 configuration.
func DefaultOptions() Options {
	return Options{
		Rows:                 DefaultRows,
		Cols:                 DefaultCols,
		StartTiles:           DefaultStartTiles,
		Goal:                 DefaultGoal,
		SpawnFourProbability: DefaultSpawnFourProbability,
	}
}

// WithSize sets the grid dimensions.
func WithSize(rows, cols int) Option {
	return func(o *Options) {
		o.Rows = rows
		o.Cols = cols
	}
}

// WithStartTiles sets how many tiles Start spawns.
func WithStartTiles(n int) Option {
	return func(o *Options) {
		o.StartTiles = n
	}
}

// WithGoal sets the base goal value.
func WithGoal(goal int) Option {
	return func(o *Options) {
		o.Goal = goal
	}
}

// WithSpawnFourProbability sets the chance that a spawned tile is a 4.
func WithSpawnFourProbability(p float64) Option {
	return func(o *Options) {
		o.SpawnFourProbability = p
	}
}

// WithRand injects the random source.
func WithRand(r Rand) Option {
	return func(o *Options) {
		o.Rand = r
	}
}

// WithSeed injects a math/rand source seeded with seed.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rand.New(rand.NewSource(seed))
	}
}

// Validate checks the options for consistency.
func (o Options) Validate() error {
	if o.Rows <= 0 || o.Cols <= 0 {
		return fmt.Errorf("grid: size %dx%d: %w", o.Rows, o.Cols, ErrInvalidOption)
	}
	if o.StartTiles < 0 || o.StartTiles > o.Rows*o.Cols {
		return fmt.Errorf("grid: start tiles %d on %dx%d grid: %w", o.StartTiles, o.Rows, o.Cols, ErrInvalidOption)
	}
	if o.Goal < 4 || !isPowerOfTwo(o.Goal) {
		return fmt.Errorf("grid: goal %d must be a power of two >= 4: %w", o.Goal, ErrInvalidOption)
	}
	if o.SpawnFourProbability < 0 || o.SpawnFourProbability > 1 {
		return fmt.Errorf("grid: spawn four probability %v outside [0,1]: %w", o.SpawnFourProbability, ErrInvalidOption)
	}
	return nil
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Validate(); err != nil {
		return o, err
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o, nil
}

package search

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
)

// How the heuristic values are scaled with the depth they were observed at
type DepthWeighting int

const (
	// Raw heuristic values
	NoWeighting DepthWeighting = iota

	// Scale contribution by (maxDepth - depth + 1) / maxDepth, depth 1 being
	// the root move, so deeper states count less
	LinearWeighting
)

func (w DepthWeighting) String() string {
	switch w {
	case NoWeighting:
		return "none"
	case LinearWeighting:
		return "linear"
	}
	return fmt.Sprintf("DepthWeighting(%d)", int(w))
}

func ParseDepthWeighting(s string) (DepthWeighting, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return NoWeighting, nil
	case "linear":
		return LinearWeighting, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWeighting, s)
}

// Creates the generator used for tie-breaking in a single engine call
type RandFactory func() *rand.Rand

// Engine configuration, treated as an immutable value: every With* method
// returns a modified copy, so a Config can be shared between engines
type Config struct {
	MaxDepth            int
	EvaluateAfterstates bool
	Weighting           DepthWeighting
	seed                int64
	hasSeed             bool
	randFactory         RandFactory
}

func DefaultConfig() Config {
	return Config{
		MaxDepth:            DefaultMaxDepth,
		EvaluateAfterstates: false,
		Weighting:           NoWeighting,
	}
}

// Set the maximum depth of the search, 0 means only the root moves are scored
func (c Config) WithMaxDepth(depth int) Config {
	c.MaxDepth = depth
	return c
}

// Score deterministic afterstates only, instead of enumerating the random insertions
func (c Config) WithAfterstates(afterstates bool) Config {
	c.EvaluateAfterstates = afterstates
	return c
}

func (c Config) WithWeighting(weighting DepthWeighting) Config {
	c.Weighting = weighting
	return c
}

// Every call gets a new generator with this seed, making the engine
// fully reproducible
func (c Config) WithSeed(seed int64) Config {
	c.seed = seed
	c.hasSeed = true
	c.randFactory = nil
	return c
}

// Use custom generator factory, called once per engine call
func (c Config) WithRandFactory(f RandFactory) Config {
	c.randFactory = f
	c.hasSeed = false
	return c
}

// Seed of the tie-break generator, if set
func (c Config) Seed() (int64, bool) {
	return c.seed, c.hasSeed
}

// New tie-break generator for a single call
func (c Config) newRand() *rand.Rand {
	switch {
	case c.randFactory != nil:
		return c.randFactory()
	case c.hasSeed:
		return rand.New(rand.NewSource(c.seed))
	default:
		return rand.New(rand.NewSource(SeedGeneratorFn()))
	}
}

// Check for configuration mistakes, before any search work begins
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidDepth, c.MaxDepth)
	}
	switch c.Weighting {
	case NoWeighting:
	case LinearWeighting:
		if c.MaxDepth < 1 {
			return fmt.Errorf("%w: linear weighting requires a positive max depth, got %d", ErrInvalidDepth, c.MaxDepth)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidWeighting, c.Weighting)
	}
	return nil
}

// Weight of a contribution observed at given depth
func (c Config) weight(depth int) float64 {
	if c.Weighting == LinearWeighting {
		return float64(c.MaxDepth-depth+1) / float64(c.MaxDepth)
	}
	return 1
}

func (c Config) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(struct {
		MaxDepth            int
		EvaluateAfterstates bool
		Weighting           string
		Seeded              bool
	}{c.MaxDepth, c.EvaluateAfterstates, c.Weighting.String(), c.hasSeed})
	return strings.TrimSpace(builder.String())
}

package search

import (
	"math"

	"lukechampine.com/frand"
)

type SeedGeneratorFnType func() int64

// Default maximum depth of the search
const DefaultMaxDepth = 4

// Seed source used when the config doesn't specify one, each call
// to the engine gets its own generator seeded with this function
var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return int64(frand.Uint64n(math.MaxInt64))
}

// Set custom seed generator function for the tie-break random number generators,
// by default uses a cryptographically secure random seed
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}

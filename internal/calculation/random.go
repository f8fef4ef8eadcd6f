package calculation

import (
	"math/rand/v2"
	"sync"
	"time"
)

// RandomSource is the entropy every bootstrap draw goes through.
// Implementations must be safe for concurrent use.
type RandomSource interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// lockedSource serializes access to a PCG generator.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (ls *lockedSource) IntN(n int) int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.rng.IntN(n)
}

// NewSeededSource returns a concurrency-safe source whose sequence is fully
// determined by seed.
func NewSeededSource(seed int64) RandomSource {
	s := uint64(seed)
	return &lockedSource{rng: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))}
}

// seedFunc returns a pseudo-random seed (override for deterministic tests).
var seedFunc = func() int64 { return time.Now().UnixNano() }

// SetSeedFunc overrides the seed provider (use only in tests).
func SetSeedFunc(f func() int64) { seedFunc = f }

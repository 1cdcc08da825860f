package bench

import (
	"hash/fnv"
	"math/rand"
)

// The process-wide RNG used by operators to materialize inputs. The runner
// reseeds it before each test so that a given test ID always sees the same
// input data. Tests execute strictly sequentially; running them in parallel
// would break this reseeding contract.
var rng = rand.New(rand.NewSource(1))

// RNG returns the process-wide benchmark RNG.
func RNG() *rand.Rand {
	return rng
}

// Reseed resets the process-wide RNG to a fixed seed.
func Reseed(seed uint32) {
	rng = rand.New(rand.NewSource(int64(seed)))
}

// SeedFor reduces a full test ID to a 32-bit seed. It is a pure function:
// identical IDs always produce identical seeds.
func SeedFor(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}

package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// Source implements Random with a PCG generator.
// A Source is not safe for concurrent use; each game owns its own.
type Source struct {
	rng  *rand.Rand
	seed uint64
}

// New creates a Source seeded from crypto/rand
func New() *Source {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(err)
	}
	return NewSeeded(binary.LittleEndian.Uint64(buf[:]))
}

// NewSeeded creates a Source that replays the same sequence for the same seed
func NewSeeded(seed uint64) *Source {
	return &Source{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Seed returns the seed the Source was created with
func (r *Source) Seed() uint64 {
	return r.seed
}

// Intn returns a uniformly distributed int in [0, n)
func (r *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rng.IntN(n)
}

// String generates a random string of the given length from the given alphabet
func (r *Source) String(length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}
	result := make([]byte, length)
	for i := range result {
		result[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(result)
}

// Package testutil provides deterministic fixtures for tests and
// benchmarks.
package testutil

import (
	"math/rand"

	"github.com/hupe1980/packmat/matrix"
)

// RNG encapsulates a seeded random number generator so fixtures are
// reproducible.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// RandomCSC generates a sparse matrix with roughly density*rows entries
// per column, rows strictly ascending within each column, and nonzero
// values. It panics on invalid construction, which would be a bug in the
// generator itself.
func (r *RNG) RandomCSC(rows, cols uint32, density float64) *matrix.CSC[uint32] {
	columns := make([][]matrix.Entry[uint32], cols)
	for c := range columns {
		for row := uint32(0); row < rows; row++ {
			if r.rand.Float64() < density {
				columns[c] = append(columns[c], matrix.Entry[uint32]{
					Row: row,
					Val: uint32(r.rand.Intn(1000)) + 1,
				})
			}
		}
	}
	m, err := matrix.FromColumns(rows, columns)
	if err != nil {
		panic(err)
	}
	return m
}

// RandomValues fills a slice with n random values below limit.
func (r *RNG) RandomValues(n int, limit uint32) []uint32 {
	values := make([]uint32, n)
	for i := range values {
		values[i] = uint32(r.rand.Int63n(int64(limit)))
	}
	return values
}

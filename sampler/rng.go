// SPDX-License-Identifier: MIT

package sampler

import (
	"math/rand"

	"github.com/katalvlaran/ltlsample/alphabet"
)

// DefaultSeed is used when callers pass seed == 0.
const DefaultSeed int64 = 1

// NewRand returns a deterministic *rand.Rand; seed 0 means DefaultSeed.
// A *rand.Rand is not safe for concurrent use; give each job its own.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed mixes a parent seed and a stream id (SplitMix64 finalizer) so
// that jobs of one run get decorrelated, reproducible streams.
func DeriveSeed(parent int64, stream uint64) int64 {
	if parent == 0 {
		parent = DefaultSeed
	}
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		return DefaultSeed
	}
	return int64(x)
}

// randomPath draws length valuations uniformly over width literals.
func randomPath(r *rand.Rand, length, width int) alphabet.Path {
	out := make(alphabet.Path, length)
	span := 1 << uint(width)
	for i := range out {
		out[i] = alphabet.Valuation(r.Intn(span))
	}
	return out
}

// perturb copies p and flips one random literal at one random step.
func perturb(r *rand.Rand, p alphabet.Path, width int) alphabet.Path {
	out := p.Append()
	i := r.Intn(len(out))
	out[i] = out[i].Flip(r.Intn(width))
	return out
}

package everybit

import (
	"math/rand"
	"time"
)

// MaxTier is the largest tier run by TimedRotation.
const MaxTier = 30

// Preset time limits for the performance tiers.
const (
	SmallLimit  = 10 * time.Millisecond
	MediumLimit = 100 * time.Millisecond
	LargeLimit  = time.Second
)

// An Engine rotates a range of a BitArray with the same
// contract as (*BitArray).Rotate.
type Engine func(b *BitArray, offset, length, rightAmount int)

var (
	NaiveEngine    Engine = (*BitArray).Rotate
	ReversalEngine Engine = (*BitArray).RotateReversal
)

// TierBits returns the size of the bit array rotated in the
// given tier. Each tier is 1.5x larger than the last.
func TierBits(tier int) int {
	n := 1000.0
	for i := 0; i < tier; i++ {
		n *= 1.5
	}
	return int(n)
}

// TimedRotation runs tiers of increasing size until a
// single rotation takes longer than limit, and returns the
// last tier that finished in time (or -1 if none did).
//
// Every tier rotates the middle half of a random array by
// roughly a third of its size.
func TimedRotation(rng *rand.Rand, engine Engine, limit time.Duration) int {
	completed := -1
	for tier := 0; tier <= MaxTier; tier++ {
		n := TierBits(tier)
		arr := NewBitArray(n)
		arr.RandomFill(rng)
		offset, length := n/4, n/2
		amount := n/3 + rng.Intn(8)

		start := time.Now()
		engine(arr, offset, length, amount)
		if time.Since(start) > limit {
			break
		}
		completed = tier
	}
	return completed
}

package everybit

import (
	"math/rand"
	"strings"
)

// A BitArray is a fixed-size array of bits packed eight per
// byte.
//
// Bit i is stored in byte i/8 at position i%8, where
// position 0 is the least-significant bit.
type BitArray struct {
	numBits int
	data    []byte
}

// NewBitArray creates a bit array of numBits 0's.
func NewBitArray(numBits int) *BitArray {
	if numBits < 0 {
		panic("negative bit count")
	}
	return &BitArray{
		numBits: numBits,
		data:    make([]byte, (numBits+7)/8),
	}
}

// BitArrayFromByte creates an 8-bit array whose bit 0 is
// the least-significant bit of b.
func BitArrayFromByte(b byte) *BitArray {
	return &BitArray{numBits: 8, data: []byte{b}}
}

// ParseBitArray decodes a string of '0' and '1' characters.
// The leftmost character is the highest-indexed bit, so
// the result's String() is s.
func ParseBitArray(s string) (*BitArray, error) {
	b := NewBitArray(len(s))
	for i := 0; i < len(s); i++ {
		idx := len(s) - 1 - i
		switch s[i] {
		case '0':
		case '1':
			b.Set(idx, true)
		default:
			return nil, &InvalidCharacterError{Index: i, Char: s[i]}
		}
	}
	return b, nil
}

// Len returns the number of bits in the array.
func (b *BitArray) Len() int {
	return b.numBits
}

// Get returns the bit at the given index.
func (b *BitArray) Get(index int) bool {
	b.checkIndex("get", index)
	return b.data[index>>3]&(1<<uint(index&7)) != 0
}

// Set sets the bit at the given index.
func (b *BitArray) Set(index int, value bool) {
	b.checkIndex("set", index)
	byteIndex := index / 8
	mask := byte(1 << uint(index%8))
	b.data[byteIndex] &= ^mask
	if value {
		b.data[byteIndex] |= mask
	}
}

// RandomFill overwrites every storage byte with a byte
// drawn from rng.
//
// Padding bits past Len() may change as well.
func (b *BitArray) RandomFill(rng *rand.Rand) {
	rng.Read(b.data)
}

// Equal checks if two arrays have the same length and the
// same bit at every index.
func (b *BitArray) Equal(other *BitArray) bool {
	if b.numBits != other.numBits {
		return false
	}
	for i := 0; i < b.numBits; i++ {
		if b.Get(i) != other.Get(i) {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the array.
func (b *BitArray) Clone() *BitArray {
	return &BitArray{
		numBits: b.numBits,
		data:    append([]byte{}, b.data...),
	}
}

// String renders the bits as '0' and '1' characters with
// the highest index first.
func (b *BitArray) String() string {
	var res strings.Builder
	res.Grow(b.numBits)
	for i := b.numBits - 1; i >= 0; i-- {
		if b.Get(i) {
			res.WriteByte('1')
		} else {
			res.WriteByte('0')
		}
	}
	return res.String()
}

func (b *BitArray) checkIndex(op string, index int) {
	if index < 0 || index >= b.numBits {
		panic(&OutOfRangeError{Op: op, Index: index, Len: b.numBits})
	}
}

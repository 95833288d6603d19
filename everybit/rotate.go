package everybit

// Rotate rotates the bits in the half-open range
// [offset, offset+length) right by rightAmount places,
// moving each bit toward the high end of the range and
// wrapping around at the boundary.
//
// A negative rightAmount performs a left rotation.
//
// For example, if b holds the byte 0b10010110, then
// b.Rotate(0, b.Len(), -2) leaves b holding 0b10100101.
//
// This is the reference implementation: it performs k
// single-bit rotations, costing O(k*length) bit operations
// where k is the normalized left amount. See
// RotateReversal for an O(length) equivalent.
func (b *BitArray) Rotate(offset, length, rightAmount int) {
	b.checkRange("rotate", offset, length)
	if length == 0 {
		return
	}
	b.rotateLeft(offset, length, modulo(-rightAmount, length))
}

// RotateReversal is like Rotate, but it uses three
// in-place reversals so that the cost does not depend on
// the rotation amount.
func (b *BitArray) RotateReversal(offset, length, rightAmount int) {
	b.checkRange("rotate", offset, length)
	if length == 0 {
		return
	}
	k := modulo(-rightAmount, length)
	if k == 0 {
		return
	}
	b.reverse(offset, k)
	b.reverse(offset+k, length-k)
	b.reverse(offset, length)
}

func (b *BitArray) rotateLeft(offset, length, leftAmount int) {
	for i := 0; i < leftAmount; i++ {
		b.rotateLeftOne(offset, length)
	}
}

// rotateLeftOne moves every bit in the range one place
// toward offset and wraps the first bit to the end.
//
// Indices are visited in ascending order, so each bit is
// read before the position holding it is overwritten.
func (b *BitArray) rotateLeftOne(offset, length int) {
	first := b.Get(offset)
	end := offset + length - 1
	for i := offset; i < end; i++ {
		b.Set(i, b.Get(i+1))
	}
	b.Set(end, first)
}

func (b *BitArray) reverse(offset, length int) {
	for i, j := offset, offset+length-1; i < j; i, j = i+1, j-1 {
		x, y := b.Get(i), b.Get(j)
		b.Set(i, y)
		b.Set(j, x)
	}
}

func (b *BitArray) checkRange(op string, offset, length int) {
	if offset < 0 || offset > b.numBits {
		panic(&OutOfRangeError{Op: op, Index: offset, Len: b.numBits})
	}
	if length < 0 || length > b.numBits-offset {
		panic(&OutOfRangeError{Op: op, Index: offset + length, Len: b.numBits})
	}
}

// modulo computes n mod m in the range [0, m), regardless
// of the sign of n.
func modulo(n, m int) int {
	if m <= 0 {
		panic("modulus must be positive")
	}
	return ((n % m) + m) % m
}

package everybit

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulo(t *testing.T) {
	// Each row holds modulo(n, m) for m = 1, 2, 3, 4.
	expected := map[int][4]int{
		-5: {0, 1, 1, 3},
		-4: {0, 0, 2, 0},
		-3: {0, 1, 0, 1},
		-2: {0, 0, 1, 2},
		-1: {0, 1, 2, 3},
		0:  {0, 0, 0, 0},
		1:  {0, 1, 1, 1},
		2:  {0, 0, 2, 2},
		3:  {0, 1, 0, 3},
		4:  {0, 0, 1, 0},
	}
	for n, row := range expected {
		for i, x := range row {
			assert.Equal(t, x, modulo(n, i+1), "modulo(%d, %d)", n, i+1)
		}
	}

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 10000; i++ {
		n := rng.Intn(1<<20) - 1<<19
		m := rng.Intn(1000) + 1
		res := modulo(n, m)
		require.GreaterOrEqual(t, res, 0)
		require.Less(t, res, m)
		require.Zero(t, (res-n)%m)
	}

	assert.Panics(t, func() { modulo(3, 0) })
}

func TestRotateLeftOne(t *testing.T) {
	b := BitArrayFromByte(0b10010110)
	b.rotateLeftOne(0, 8)
	assert.Equal(t, []byte{0b01001011}, b.data)

	b, _ = ParseBitArray("111111101111111")
	b.rotateLeftOne(0, b.Len())
	assert.Equal(t, "111111110111111", b.String())
}

func TestRotateLiteral(t *testing.T) {
	testCases := []struct {
		Name     string
		Offset   int
		Length   int
		Right    int
		Expected byte
	}{
		{"LeftZero", 0, 8, 0, 0b10010110},
		{"LeftOne", 0, 8, -1, 0b01001011},
		{"LeftTwo", 0, 8, -2, 0b10100101},
		{"SubrangeLeftTwo", 1, 4, -2, 0b10011100},
		{"SubrangeFullPeriod", 1, 4, -4, 0b10010110},
		{"SubrangeRightTwo", 2, 5, 2, 0b11010010},
		{"EmptyRange", 3, 0, 5, 0b10010110},
		{"LargeAmount", 0, 8, -17, 0b01001011},
	}
	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			for _, engine := range []Engine{NaiveEngine, ReversalEngine} {
				b := BitArrayFromByte(0b10010110)
				engine(b, tc.Offset, tc.Length, tc.Right)
				assert.Equal(t, []byte{tc.Expected}, b.data)
			}
		})
	}
}

func TestRotateFullPeriod(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		b := NewBitArray(rng.Intn(100) + 1)
		b.RandomFill(rng)
		orig := b.Clone()
		offset := rng.Intn(b.Len())
		length := rng.Intn(b.Len()-offset) + 1
		multiple := rng.Intn(5) - 2
		b.Rotate(offset, length, multiple*length)
		require.True(t, orig.Equal(b))
	}
}

func TestRotateRightViaNegation(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		n := rng.Intn(64) + 1
		offset := rng.Intn(n)
		length := rng.Intn(n-offset) + 1
		r := rng.Intn(4*length) - 2*length

		a := NewBitArray(n)
		a.RandomFill(rng)
		b := a.Clone()
		a.Rotate(offset, length, r)
		b.Rotate(offset, length, -(length - modulo(r, length)))
		require.True(t, a.Equal(b), "offset=%d length=%d r=%d", offset, length, r)
	}
}

func TestRotateMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 200; i++ {
		n := rng.Intn(100) + 1
		offset := rng.Intn(n + 1)
		length := rng.Intn(n - offset + 1)
		r := rng.Intn(300) - 150

		b := NewBitArray(n)
		b.RandomFill(rng)
		expected := make([]bool, n)
		for j := range expected {
			expected[j] = b.Get(j)
		}
		if length > 0 {
			for j := 0; j < length; j++ {
				expected[offset+modulo(j+r, length)] = b.Get(offset + j)
			}
		}

		naive := b.Clone()
		naive.Rotate(offset, length, r)
		fast := b.Clone()
		fast.RotateReversal(offset, length, r)
		for j, x := range expected {
			require.Equal(t, x, naive.Get(j), "naive bit %d", j)
		}
		require.True(t, naive.Equal(fast))
	}
}

func TestRotateOutOfRange(t *testing.T) {
	for _, engine := range []Engine{NaiveEngine, ReversalEngine} {
		b := NewBitArray(10)
		requireOutOfRange(t, func() { engine(b, 5, 6, 1) })
		requireOutOfRange(t, func() { engine(b, 11, 0, 1) })
		requireOutOfRange(t, func() { engine(b, -1, 2, 1) })
		requireOutOfRange(t, func() { engine(b, 0, -1, 1) })

		empty := NewBitArray(0)
		engine(empty, 0, 0, 3)
		requireOutOfRange(t, func() { engine(empty, 0, 1, 1) })
	}
}

func BenchmarkRotate(b *testing.B) {
	for _, bench := range []struct {
		Name   string
		Engine Engine
	}{
		{"Naive", NaiveEngine},
		{"Reversal", ReversalEngine},
	} {
		b.Run(bench.Name, func(b *testing.B) {
			rng := rand.New(rand.NewSource(0))
			arr := NewBitArray(4096)
			arr.RandomFill(rng)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				bench.Engine(arr, 1024, 2048, 683)
			}
		})
	}
}

func BenchmarkRandomFill(b *testing.B) {
	rng := rand.New(rand.NewSource(0))
	arr := NewBitArray(40)
	for i := 0; i < b.N; i++ {
		arr.RandomFill(rng)
	}
}

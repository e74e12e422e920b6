package bitpack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomValues(rng *rand.Rand, n, width int) []uint32 {
	values := make([]uint32, n)
	if width == 0 {
		return values
	}
	for i := range values {
		v := rng.Uint32()
		if width < 32 {
			v &= uint32(1)<<width - 1
		}
		values[i] = v
	}

	return values
}

// === Scalar Pack/Unpack ===

func TestPack_RoundTripAllWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 7, 31, 32, 33, 100, 257} {
		for width := 0; width <= MaxWidth; width++ {
			src := randomValues(rng, n, width)
			packed := make([]uint32, PackedWords(n, width))

			written := Pack(packed, src, width)
			require.Equal(t, PackedWords(n, width), written, "n=%d width=%d", n, width)

			got := make([]uint32, n)
			consumed := Unpack(got, packed, width)
			require.Equal(t, written, consumed, "n=%d width=%d", n, width)
			require.Equal(t, src, got, "n=%d width=%d", n, width)
		}
	}
}

func TestPack_MasksHighBits(t *testing.T) {
	src := []uint32{0xFFFFFFFF, 0x12345678, 7}
	packed := make([]uint32, PackedWords(len(src), 3))
	Pack(packed, src, 3)

	got := make([]uint32, len(src))
	Unpack(got, packed, 3)
	require.Equal(t, []uint32{7, 0, 7}, got)
}

func TestPack_BitContinuousLayout(t *testing.T) {
	// Eleven 3-bit values cross the first word boundary at value 10.
	src := []uint32{1, 2, 3, 4, 5, 6, 7, 0, 1, 2, 3}
	packed := make([]uint32, 2)
	require.Equal(t, 2, Pack(packed, src, 3))

	var expected uint64
	for i, v := range src {
		expected |= uint64(v) << (3 * i)
	}
	require.Equal(t, uint32(expected), packed[0])
	require.Equal(t, uint32(expected>>32), packed[1])
}

func TestUnpack_WidthZeroClears(t *testing.T) {
	dst := []uint32{9, 9, 9}
	require.Equal(t, 0, Unpack(dst, nil, 0))
	require.Equal(t, []uint32{0, 0, 0}, dst)
}

func TestPack_InvalidWidthPanics(t *testing.T) {
	require.Panics(t, func() { Pack(make([]uint32, 4), []uint32{1}, 33) })
	require.Panics(t, func() { Unpack(make([]uint32, 1), []uint32{1}, -1) })
}

// === 32-value kernels ===

func TestBlock32_MatchesScalarLayout(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for width := 0; width <= MaxWidth; width++ {
		src := randomValues(rng, BlockSize32, width)

		fast := make([]uint32, width)
		require.Equal(t, width, PackBlock32(fast, src, width))

		scalar := make([]uint32, width)
		Pack(scalar, src, width)
		require.Equal(t, scalar, fast, "width=%d", width)

		got := make([]uint32, BlockSize32)
		require.Equal(t, width, UnpackBlock32(got, fast, width))
		require.Equal(t, src, got, "width=%d", width)
	}
}

func TestBlock32_ShortBlockPanics(t *testing.T) {
	require.Panics(t, func() { PackBlock32(make([]uint32, 32), make([]uint32, 31), 4) })
}

// === Interleaved kernels ===

func TestInterleaved128_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for width := 0; width <= MaxWidth; width++ {
		src := randomValues(rng, BlockSize128, width)
		packed := make([]uint32, Lanes*width)
		require.Equal(t, Lanes*width, PackInterleaved128(packed, src, width))

		got := make([]uint32, BlockSize128)
		for i := range got {
			got[i] = 0xDEADBEEF
		}
		require.Equal(t, Lanes*width, UnpackInterleaved128(got, packed, width))
		require.Equal(t, src, got, "width=%d", width)
	}
}

func TestInterleaved128_LaneLayout(t *testing.T) {
	src := make([]uint32, BlockSize128)
	for i := range src {
		src[i] = uint32(i % Lanes)
	}
	packed := make([]uint32, Lanes*2)
	PackInterleaved128(packed, src, 2)

	// Lane k holds only the value k, so every word of lane k repeats k in
	// each 2-bit slot.
	for j := range 2 {
		require.Equal(t, uint32(0x00000000), packed[4*j+0])
		require.Equal(t, uint32(0x55555555), packed[4*j+1])
		require.Equal(t, uint32(0xAAAAAAAA), packed[4*j+2])
		require.Equal(t, uint32(0xFFFFFFFF), packed[4*j+3])
	}
}

// === Helpers ===

func TestMaxBits(t *testing.T) {
	require.Equal(t, 0, MaxBits(nil))
	require.Equal(t, 0, MaxBits([]uint32{0, 0}))
	require.Equal(t, 4, MaxBits([]uint32{5, 12, 3, 15, 7}))
	require.Equal(t, 32, MaxBits([]uint32{1, 1 << 31}))
	require.Equal(t, 3, BitsNeeded(5))
}

func TestPackedWords(t *testing.T) {
	require.Equal(t, 0, PackedWords(0, 7))
	require.Equal(t, 0, PackedWords(10, 0))
	require.Equal(t, 1, PackedWords(8, 3))
	require.Equal(t, 3, PackedWords(32, 3))
	require.Equal(t, 32, PackedWords(33, 31))
	require.Equal(t, 33, PackedWords(33, 32))
}

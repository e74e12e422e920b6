package bitpack

import (
	"fmt"
	"math/bits"
)

// MaxWidth is the largest supported bit width.
const MaxWidth = 32

// BitsNeeded returns the number of bits required to represent v (0 for v == 0).
func BitsNeeded(v uint32) int {
	return bits.Len32(v)
}

// MaxBits returns the minimal width able to represent every value in src.
//
// The values are OR-reduced first so the loop carries no data-dependent branch.
//
// Example:
//
//	MaxBits([]uint32{5, 12, 3, 15, 7}) // 4
func MaxBits(src []uint32) int {
	var orAll uint32
	for _, v := range src {
		orAll |= v
	}

	return bits.Len32(orAll)
}

// PackedWords returns the number of 32-bit words needed to store n values of
// the given width.
func PackedWords(n, width int) int {
	return (n*width + 31) / 32
}

// Pack packs len(src) values of the given width into dst and returns the number
// of words written, which is always PackedWords(len(src), width).
//
// Only the low width bits of each value are stored. dst must hold at least
// PackedWords(len(src), width) words.
func Pack(dst, src []uint32, width int) int {
	checkWidth(width)
	if width == 0 || len(src) == 0 {
		return 0
	}
	if width == MaxWidth {
		return copy(dst[:len(src)], src)
	}

	mask := uint64(1)<<width - 1

	var acc uint64
	var bitsInAcc int
	out := 0
	for _, v := range src {
		acc |= (uint64(v) & mask) << bitsInAcc
		bitsInAcc += width
		if bitsInAcc >= 32 {
			dst[out] = uint32(acc)
			out++
			acc >>= 32
			bitsInAcc -= 32
		}
	}
	if bitsInAcc > 0 {
		dst[out] = uint32(acc)
		out++
	}

	return out
}

// Unpack fills dst with len(dst) values of the given width read from src and
// returns the number of words consumed, which is always
// PackedWords(len(dst), width). Width 0 zero-fills dst.
func Unpack(dst, src []uint32, width int) int {
	checkWidth(width)
	if width == 0 {
		clear(dst)
		return 0
	}
	if width == MaxWidth {
		return copy(dst, src[:len(dst)])
	}

	mask := uint32(1)<<width - 1

	var acc uint64
	var bitsInAcc int
	in := 0
	for i := range dst {
		if bitsInAcc < width {
			acc |= uint64(src[in]) << bitsInAcc
			in++
			bitsInAcc += 32
		}
		dst[i] = uint32(acc) & mask
		acc >>= width
		bitsInAcc -= width
	}

	return in
}

func checkWidth(width int) {
	if width < 0 || width > MaxWidth {
		panic(fmt.Sprintf("bitpack: invalid bit width %d", width))
	}
}

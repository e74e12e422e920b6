package codec

import (
	"math/bits"

	"github.com/arloliu/intpack/bitpack"
)

// maxBlockExceptions bounds the exception count of a block so it fits in the
// one-byte count of the block metadata.
const maxBlockExceptions = 255

// blockPlan is the encoding decision for one PFOR block.
type blockPlan struct {
	// Width is the base bit width used for the payload.
	Width int
	// MaxWidth is the bit width of the largest value in the block.
	MaxWidth int
	// Exceptions is the number of values wider than Width.
	Exceptions int
}

// highWidth returns the number of high bits kept per exception.
func (p blockPlan) highWidth() int {
	return p.MaxWidth - p.Width
}

// widthHistogram counts, for each bit length 0..32, the values of block that
// need exactly that many bits. It also returns the largest bit length seen.
func widthHistogram(block []uint32) (hist [bitpack.MaxWidth + 1]int, maxWidth int) {
	for _, v := range block {
		hist[bits.Len32(v)]++
	}
	for maxWidth = bitpack.MaxWidth; maxWidth > 0 && hist[maxWidth] == 0; maxWidth-- {
	}

	return hist, maxWidth
}

// planCostModel picks the base width that minimizes the estimated block size:
//
//	cost(b) = b*B + c*(8 + maxb-b) + 8
//
// where c is the number of values needing more than b bits. Each exception
// costs an 8-bit position plus its high bits; when maxb-b is 1 the high bit is
// implied and not stored. Widths are scanned from maxb downward and a tie keeps
// the smaller width.
func planCostModel(block []uint32) blockPlan {
	hist, maxWidth := widthHistogram(block)
	n := len(block)

	best := blockPlan{Width: maxWidth, MaxWidth: maxWidth}
	bestCost := maxWidth * n

	exceptions := 0
	for b := maxWidth - 1; b >= 0; b-- {
		exceptions += hist[b+1]
		if exceptions > maxBlockExceptions || exceptions == n {
			break
		}

		cost := b*n + exceptions*(8+maxWidth-b) + 8
		if maxWidth-b == 1 {
			cost -= exceptions
		}
		if cost <= bestCost {
			best = blockPlan{Width: b, MaxWidth: maxWidth, Exceptions: exceptions}
			bestCost = cost
		}
	}

	return best
}

// planExceptionBudget picks the smallest width that leaves at most budget
// exceptions.
func planExceptionBudget(block []uint32, budget int) blockPlan {
	hist, maxWidth := widthHistogram(block)

	plan := blockPlan{Width: maxWidth, MaxWidth: maxWidth}
	exceptions := 0
	for b := maxWidth - 1; b >= 0; b-- {
		exceptions += hist[b+1]
		if exceptions > budget || exceptions > maxBlockExceptions {
			break
		}
		plan = blockPlan{Width: b, MaxWidth: maxWidth, Exceptions: exceptions}
	}

	return plan
}

// packPayload packs the low width bits of a block whose length is a multiple
// of 32 (or 128 when interleaved) and returns the words written.
func packPayload(dst, block []uint32, width int, interleaved bool) int {
	pos := 0
	if interleaved {
		for lo := 0; lo < len(block); lo += bitpack.BlockSize128 {
			pos += bitpack.PackInterleaved128(dst[pos:], block[lo:lo+bitpack.BlockSize128], width)
		}

		return pos
	}

	for lo := 0; lo < len(block); lo += bitpack.BlockSize32 {
		pos += bitpack.PackBlock32(dst[pos:], block[lo:lo+bitpack.BlockSize32], width)
	}

	return pos
}

// unpackPayload is the inverse of packPayload.
func unpackPayload(dst, src []uint32, width int, interleaved bool) int {
	pos := 0
	if interleaved {
		for lo := 0; lo < len(dst); lo += bitpack.BlockSize128 {
			pos += bitpack.UnpackInterleaved128(dst[lo:lo+bitpack.BlockSize128], src[pos:], width)
		}

		return pos
	}

	for lo := 0; lo < len(dst); lo += bitpack.BlockSize32 {
		pos += bitpack.UnpackBlock32(dst[lo:lo+bitpack.BlockSize32], src[pos:], width)
	}

	return pos
}

// payloadWords returns the payload size of a block of n values at width.
func payloadWords(n, width int) int {
	return n * width / 32
}

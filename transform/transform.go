// Package transform provides the in-place integer transforms applied before and
// after intpack codecs: delta encoding and its inverse, prefix summation.
//
// Stride 1 differences each element against its predecessor. Stride 4
// differences against the element four positions earlier, which keeps four
// independent running sums and maps directly onto 4-lane vector arithmetic.
// Stride 4 usually produces slightly larger deltas than stride 1, but
// PrefixSum4 decodes faster.
//
// All arithmetic wraps modulo 2^32, so the transforms are lossless for every
// input, including sequences that are not monotonic:
//
//	values := []uint32{10, 12, 15, 15, 20}
//	transform.Delta1(values)     // [10, 2, 3, 0, 5]
//	transform.PrefixSum1(values) // [10, 12, 15, 15, 20]
package transform

import (
	"fmt"

	"github.com/arloliu/intpack/errs"
)

// Delta1 replaces every element except the first with its difference from the
// previous element.
func Delta1(values []uint32) {
	for i := len(values) - 1; i > 0; i-- {
		values[i] -= values[i-1]
	}
}

// PrefixSum1 reverses Delta1 by cumulative summation.
func PrefixSum1(values []uint32) {
	var carry uint32
	for i, v := range values {
		carry += v
		values[i] = carry
	}
}

// Delta4 replaces every element from index 4 onwards with its difference from
// the element four positions earlier. The first four elements are unchanged.
func Delta4(values []uint32) {
	n := len(values)
	i := n - 1
	// Whole 4-lane steps from the end, then the leftover head.
	for ; i >= 7; i -= 4 {
		cur := (*[4]uint32)(values[i-3 : i+1])
		prev := (*[4]uint32)(values[i-7 : i-3])
		cur[0] -= prev[0]
		cur[1] -= prev[1]
		cur[2] -= prev[2]
		cur[3] -= prev[3]
	}
	for ; i >= 4; i-- {
		values[i] -= values[i-4]
	}
}

// PrefixSum4 reverses Delta4.
func PrefixSum4(values []uint32) {
	n := len(values)
	if n <= 4 {
		return
	}

	var carry [4]uint32
	copy(carry[:], values[:4])

	i := 4
	for ; i+4 <= n; i += 4 {
		cur := (*[4]uint32)(values[i : i+4])
		carry[0] += cur[0]
		carry[1] += cur[1]
		carry[2] += cur[2]
		carry[3] += cur[3]
		*cur = carry
	}
	for ; i < n; i++ {
		values[i] += values[i-4]
	}
}

// Delta applies Delta1 or Delta4 depending on stride.
func Delta(values []uint32, stride int) error {
	switch stride {
	case 1:
		Delta1(values)
	case 4:
		Delta4(values)
	default:
		return fmt.Errorf("%w: delta stride %d (want 1 or 4)", errs.ErrInvalidArgument, stride)
	}

	return nil
}

// PrefixSum applies PrefixSum1 or PrefixSum4 depending on stride.
func PrefixSum(values []uint32, stride int) error {
	switch stride {
	case 1:
		PrefixSum1(values)
	case 4:
		PrefixSum4(values)
	default:
		return fmt.Errorf("%w: prefix sum stride %d (want 1 or 4)", errs.ErrInvalidArgument, stride)
	}

	return nil
}

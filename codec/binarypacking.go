package codec

import (
	"fmt"

	"github.com/arloliu/intpack/bitpack"
	"github.com/arloliu/intpack/errs"
)

const (
	miniBlockSize      = bitpack.BlockSize32
	miniBlocksPerGroup = 4
	groupSize          = miniBlockSize * miniBlocksPerGroup
)

// binaryPackingBody is the fixed-width codec. Values are processed in groups of
// 128 split into four 32-value miniblocks. Each group starts with one header
// word holding the four miniblock widths, 8 bits each (miniblock 0 in the low
// byte), followed by the miniblocks packed at their minimal widths.
//
// The final group may be partial: its miniblocks are packed for their exact
// value count and absent miniblocks have width 0. No fallback codec is needed.
type binaryPackingBody struct{}

var _ body = binaryPackingBody{}

// NewBinaryPacking returns the "binarypacking" codec.
//
// Example: eight copies of 5 fit in 3 bits, so the stream is the 2-word stream
// header, one group header word holding width 3, and a single payload word.
func NewBinaryPacking() Codec {
	return newStream("binarypacking", idBinaryPacking, binaryPackingBody{})
}

func (binaryPackingBody) maxWords(n int) int {
	groups := (n + groupSize - 1) / groupSize
	return groups + n
}

func (binaryPackingBody) encode(in, out []uint32) (int, error) {
	pos := 0
	for start := 0; start < len(in); start += groupSize {
		group := in[start:min(start+groupSize, len(in))]

		var widths [miniBlocksPerGroup]int
		need := 1
		for m := range miniBlocksPerGroup {
			lo := m * miniBlockSize
			if lo >= len(group) {
				break
			}
			mini := group[lo:min(lo+miniBlockSize, len(group))]
			widths[m] = bitpack.MaxBits(mini)
			need += bitpack.PackedWords(len(mini), widths[m])
		}
		if len(out)-pos < need {
			return 0, errCapacity(need, len(out)-pos)
		}

		out[pos] = uint32(widths[0]) | uint32(widths[1])<<8 | uint32(widths[2])<<16 | uint32(widths[3])<<24
		pos++
		for m := range miniBlocksPerGroup {
			lo := m * miniBlockSize
			if lo >= len(group) {
				break
			}
			mini := group[lo:min(lo+miniBlockSize, len(group))]
			if len(mini) == miniBlockSize {
				pos += bitpack.PackBlock32(out[pos:], mini, widths[m])
			} else {
				pos += bitpack.Pack(out[pos:], mini, widths[m])
			}
		}
	}

	return pos, nil
}

func (binaryPackingBody) decode(in, out []uint32) (int, error) {
	pos := 0
	for start := 0; start < len(out); start += groupSize {
		group := out[start:min(start+groupSize, len(out))]
		if pos >= len(in) {
			return 0, errTruncated("group header", pos+1, len(in))
		}

		header := in[pos]
		pos++

		var widths [miniBlocksPerGroup]int
		need := 0
		for m := range miniBlocksPerGroup {
			widths[m] = int(header >> (8 * m) & 0xFF)
			if widths[m] > bitpack.MaxWidth {
				return 0, fmt.Errorf("%w: miniblock width %d at value %d", errs.ErrCorruptStream, widths[m], start)
			}
			lo := m * miniBlockSize
			if lo < len(group) {
				need += bitpack.PackedWords(min(miniBlockSize, len(group)-lo), widths[m])
			}
		}
		if len(in)-pos < need {
			return 0, errTruncated("group payload", need, len(in)-pos)
		}

		for m := range miniBlocksPerGroup {
			lo := m * miniBlockSize
			if lo >= len(group) {
				break
			}
			mini := group[lo:min(lo+miniBlockSize, len(group))]
			if len(mini) == miniBlockSize {
				pos += bitpack.UnpackBlock32(mini, in[pos:], widths[m])
			} else {
				pos += bitpack.Unpack(mini, in[pos:], widths[m])
			}
		}
	}

	return pos, nil
}

// simdBinaryPackingBody packs whole 128-value blocks in the 4-lane interleaved
// layout at one width per block. Up to four consecutive blocks share a header
// word holding their widths, 8 bits each.
type simdBinaryPackingBody struct{}

var _ blockBody = simdBinaryPackingBody{}

// NewSIMDBinaryPacking returns the "simdbinarypacking" codec: interleaved
// 128-value blocks with a variable-byte tail.
func NewSIMDBinaryPacking() Codec {
	return newStream("simdbinarypacking", idSIMDBinaryPacking, newComposite(simdBinaryPackingBody{}, vbyteBody{}))
}

func (simdBinaryPackingBody) blockSize() int {
	return bitpack.BlockSize128
}

func (simdBinaryPackingBody) maxWords(n int) int {
	blocks := n / bitpack.BlockSize128
	return (blocks+miniBlocksPerGroup-1)/miniBlocksPerGroup + n
}

func (simdBinaryPackingBody) encode(in, out []uint32) (int, error) {
	const bs = bitpack.BlockSize128
	pos := 0
	blocks := len(in) / bs
	for first := 0; first < blocks; first += miniBlocksPerGroup {
		last := min(first+miniBlocksPerGroup, blocks)

		var header uint32
		need := 1
		for b := first; b < last; b++ {
			width := bitpack.MaxBits(in[b*bs : (b+1)*bs])
			header |= uint32(width) << (8 * (b - first))
			need += bitpack.Lanes * width
		}
		if len(out)-pos < need {
			return 0, errCapacity(need, len(out)-pos)
		}

		out[pos] = header
		pos++
		for b := first; b < last; b++ {
			width := int(header >> (8 * (b - first)) & 0xFF)
			pos += bitpack.PackInterleaved128(out[pos:], in[b*bs:(b+1)*bs], width)
		}
	}

	return pos, nil
}

func (simdBinaryPackingBody) decode(in, out []uint32) (int, error) {
	const bs = bitpack.BlockSize128
	pos := 0
	blocks := len(out) / bs
	for first := 0; first < blocks; first += miniBlocksPerGroup {
		last := min(first+miniBlocksPerGroup, blocks)
		if pos >= len(in) {
			return 0, errTruncated("block header", pos+1, len(in))
		}

		header := in[pos]
		pos++
		need := 0
		for b := first; b < last; b++ {
			width := int(header >> (8 * (b - first)) & 0xFF)
			if width > bitpack.MaxWidth {
				return 0, fmt.Errorf("%w: block width %d at block %d", errs.ErrCorruptStream, width, b)
			}
			need += bitpack.Lanes * width
		}
		if len(in)-pos < need {
			return 0, errTruncated("block payload", need, len(in)-pos)
		}

		for b := first; b < last; b++ {
			width := int(header >> (8 * (b - first)) & 0xFF)
			pos += bitpack.UnpackInterleaved128(out[b*bs:(b+1)*bs], in[pos:], width)
		}
	}

	return pos, nil
}

package codec

import (
	"fmt"

	"github.com/arloliu/intpack/bitpack"
	"github.com/arloliu/intpack/errs"
)

const (
	pforBlockSize = 128
	positionWidth = 8
)

// simplePFORBody keeps every exception inside its own block:
//
//	[header][payload][positions, 8 bits each][highs, maxb-b bits each]
//
// Header word: base width (bits 0-7) | max width (bits 8-15) | exception count
// (bits 16-23) | exception flag (bit 31). A block without exceptions is plain
// fixed-width and stores neither list. Single-bit highs are implied.
type simplePFORBody struct{}

var _ blockBody = simplePFORBody{}

const simplePFORFlag = 1 << 31

// NewSimplePFOR returns the "simplepfor" codec.
func NewSimplePFOR() Codec {
	return newStream("simplepfor", idSimplePFOR, newComposite(simplePFORBody{}, vbyteBody{}))
}

func (simplePFORBody) blockSize() int {
	return pforBlockSize
}

func (simplePFORBody) maxWords(n int) int {
	return n + n/pforBlockSize*8
}

func (simplePFORBody) encode(in, out []uint32) (int, error) {
	var positions, highs [pforBlockSize]uint32

	pos := 0
	for start := 0; start < len(in); start += pforBlockSize {
		block := in[start : start+pforBlockSize]
		plan := planCostModel(block)

		hw := plan.highWidth()
		need := 1 + payloadWords(pforBlockSize, plan.Width)
		if plan.Exceptions > 0 {
			need += bitpack.PackedWords(plan.Exceptions, positionWidth)
			if hw > 1 {
				need += bitpack.PackedWords(plan.Exceptions, hw)
			}
		}
		if len(out)-pos < need {
			return 0, errCapacity(need, len(out)-pos)
		}

		header := uint32(plan.Width) | uint32(plan.MaxWidth)<<8 | uint32(plan.Exceptions)<<16
		if plan.Exceptions > 0 {
			header |= simplePFORFlag
		}
		out[pos] = header
		pos++
		pos += packPayload(out[pos:], block, plan.Width, false)
		if plan.Exceptions == 0 {
			continue
		}

		c := 0
		for j, v := range block {
			if v>>plan.Width != 0 {
				positions[c] = uint32(j)
				highs[c] = v >> plan.Width
				c++
			}
		}
		pos += bitpack.Pack(out[pos:], positions[:c], positionWidth)
		if hw > 1 {
			pos += bitpack.Pack(out[pos:], highs[:c], hw)
		}
	}

	return pos, nil
}

func (simplePFORBody) decode(in, out []uint32) (int, error) {
	var positions, highs [pforBlockSize]uint32

	pos := 0
	for start := 0; start < len(out); start += pforBlockSize {
		block := out[start : start+pforBlockSize]
		if pos >= len(in) {
			return 0, errTruncated("block header", 1, 0)
		}

		header := in[pos]
		pos++
		width := int(header & 0xFF)
		maxWidth := int(header >> 8 & 0xFF)
		count := int(header >> 16 & 0xFF)
		flagged := header&simplePFORFlag != 0
		if width > bitpack.MaxWidth || count > pforBlockSize || flagged != (count > 0) ||
			header&0x7F000000 != 0 {
			return 0, fmt.Errorf("%w: bad block header %#08x at value %d", errs.ErrCorruptStream, header, start)
		}

		need := payloadWords(pforBlockSize, width)
		hw := 0
		if count > 0 {
			if maxWidth <= width || maxWidth > bitpack.MaxWidth {
				return 0, fmt.Errorf("%w: max width %d for base width %d at value %d",
					errs.ErrCorruptStream, maxWidth, width, start)
			}
			hw = maxWidth - width
			need += bitpack.PackedWords(count, positionWidth)
			if hw > 1 {
				need += bitpack.PackedWords(count, hw)
			}
		}
		if len(in)-pos < need {
			return 0, errTruncated("block", need, len(in)-pos)
		}

		pos += unpackPayload(block, in[pos:], width, false)
		if count == 0 {
			continue
		}

		pos += bitpack.Unpack(positions[:count], in[pos:], positionWidth)
		if hw > 1 {
			pos += bitpack.Unpack(highs[:count], in[pos:], hw)
		} else {
			for i := range highs[:count] {
				highs[i] = 1
			}
		}
		for i, p := range positions[:count] {
			if p >= pforBlockSize {
				return 0, fmt.Errorf("%w: exception position %d at value %d", errs.ErrCorruptStream, p, start)
			}
			block[p] |= highs[i] << width
		}
	}

	return pos, nil
}

package codec

import (
	"fmt"

	"github.com/arloliu/intpack/bitpack"
	"github.com/arloliu/intpack/errs"
)

// Block layout shared by NewPFOR and OptPFOR:
//
//	[header][payload][exception area, excWords words]
//
// Header word: base width (bits 0-5) | exception flag (bit 7) | exception count
// (bits 8-15) | exception area words (bits 16-31). The exception area holds,
// for each exception in position order, the gap to the previous exception
// minus one and then the high bits, both variable-byte coded and zero padded
// to a word.
const (
	newPFORFlag     = 1 << 7
	newPFORMaxExcWs = 0xFFFF
)

// planner chooses the base width of a 128-value block.
type planner func(block []uint32) blockPlan

type newPFORBody struct {
	plan planner
	// excBound is the worst-case exception area of one block, in words.
	excBound int
}

var _ blockBody = (*newPFORBody)(nil)

// NewNewPFOR returns the "newpfor" codec. Each block uses the smallest width
// that leaves at most a fixed share of its values as exceptions (10% unless
// WithExceptionRatio says otherwise).
func NewNewPFOR(opts ...Option) (Codec, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	budget := int(cfg.exceptionRatio * pforBlockSize)
	b := &newPFORBody{
		plan: func(block []uint32) blockPlan {
			return planExceptionBudget(block, budget)
		},
		excBound: exceptionAreaBound(budget),
	}

	return newStream("newpfor", idNewPFOR, newComposite(b, vbyteBody{})), nil
}

// NewOptPFOR returns the "optpfor" codec. Each block uses the width giving the
// smallest encoded block; ties keep the smaller width.
func NewOptPFOR() Codec {
	b := &newPFORBody{
		plan:     planSmallestBlock,
		excBound: 0,
	}

	return newStream("optpfor", idOptPFOR, newComposite(b, vbyteBody{}))
}

// exceptionAreaBound returns the largest exception area of a block holding at
// most count exceptions: a one-byte gap and a five-byte high each.
func exceptionAreaBound(count int) int {
	return (6*count + 3) / 4
}

// planSmallestBlock evaluates the exact encoded size for every width.
func planSmallestBlock(block []uint32) blockPlan {
	_, maxWidth := widthHistogram(block)

	best := blockPlan{Width: maxWidth, MaxWidth: maxWidth}
	bestWords := payloadWords(len(block), maxWidth)
	for b := maxWidth - 1; b >= 0; b-- {
		count, area := exceptionArea(block, b)
		if count > maxBlockExceptions || area > newPFORMaxExcWs {
			break
		}
		if words := payloadWords(len(block), b) + area; words <= bestWords {
			best = blockPlan{Width: b, MaxWidth: maxWidth, Exceptions: count}
			bestWords = words
		}
	}

	return best
}

// exceptionArea returns the exception count and the exception area size in
// words of block encoded at the given width.
func exceptionArea(block []uint32, width int) (count, words int) {
	bytes := 0
	prev := -1
	for j, v := range block {
		high := v >> width
		if high == 0 {
			continue
		}
		bytes += vbyteLen(uint32(j-prev-1)) + vbyteLen(high)
		prev = j
		count++
	}

	return count, (bytes + 3) / 4
}

func (b *newPFORBody) blockSize() int {
	return pforBlockSize
}

func (b *newPFORBody) maxWords(n int) int {
	blocks := n / pforBlockSize
	if b.excBound == 0 {
		// The chosen block is never larger than the plain fixed-width block.
		return n + blocks
	}

	return n + blocks*(1+b.excBound)
}

func (b *newPFORBody) encode(in, out []uint32) (int, error) {
	pos := 0
	for start := 0; start < len(in); start += pforBlockSize {
		block := in[start : start+pforBlockSize]
		plan := b.plan(block)
		count, area := exceptionArea(block, plan.Width)

		need := 1 + payloadWords(pforBlockSize, plan.Width) + area
		if len(out)-pos < need {
			return 0, errCapacity(need, len(out)-pos)
		}

		header := uint32(plan.Width) | uint32(count)<<8 | uint32(area)<<16
		if count > 0 {
			header |= newPFORFlag
		}
		out[pos] = header
		pos++
		pos += packPayload(out[pos:], block, plan.Width, false)

		w := newByteWriter(out[pos : pos+area])
		prev := -1
		for j, v := range block {
			if high := v >> plan.Width; high != 0 {
				putVByte(&w, uint32(j-prev-1))
				putVByte(&w, high)
				prev = j
			}
		}
		pos += area
	}

	return pos, nil
}

func (b *newPFORBody) decode(in, out []uint32) (int, error) {
	pos := 0
	for start := 0; start < len(out); start += pforBlockSize {
		block := out[start : start+pforBlockSize]
		if pos >= len(in) {
			return 0, errTruncated("block header", 1, 0)
		}

		header := in[pos]
		pos++
		width := int(header & 0x3F)
		count := int(header >> 8 & 0xFF)
		area := int(header >> 16)
		flagged := header&newPFORFlag != 0
		if width > bitpack.MaxWidth || count > pforBlockSize || flagged != (count > 0) || header&0x40 != 0 {
			return 0, fmt.Errorf("%w: bad block header %#08x at value %d", errs.ErrCorruptStream, header, start)
		}

		need := payloadWords(pforBlockSize, width) + area
		if len(in)-pos < need {
			return 0, errTruncated("block", need, len(in)-pos)
		}
		pos += unpackPayload(block, in[pos:], width, false)

		r := newByteReader(in[pos : pos+area])
		p := -1
		for range count {
			gap, err := getVByte(&r)
			if err != nil {
				return 0, fmt.Errorf("exception gap at value %d: %w", start, err)
			}
			high, err := getVByte(&r)
			if err != nil {
				return 0, fmt.Errorf("exception high at value %d: %w", start, err)
			}
			p += int(gap) + 1
			if p >= pforBlockSize || width == bitpack.MaxWidth {
				return 0, fmt.Errorf("%w: exception at offset %d of block at value %d",
					errs.ErrCorruptStream, p, start)
			}
			block[p] |= high << width
		}
		pos += area
	}

	return pos, nil
}

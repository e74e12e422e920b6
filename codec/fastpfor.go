package codec

import (
	"fmt"

	"github.com/arloliu/intpack/bitpack"
	"github.com/arloliu/intpack/errs"
	"github.com/arloliu/intpack/internal/pool"
)

// FastPFOR page layout (all fields are 32-bit words unless noted):
//
//	[value count]
//	[payload word count][payload of every block]
//	[metadata byte count][metadata bytes, zero padded to a word]
//	[exception bitmap]
//	for each set bit k-1 of the bitmap, k = 2..32:
//	    [high count][highs of width k, bit packed]
//
// Metadata per block: width, exception count, and when the count is non-zero
// the maximum width followed by one position byte per exception. Exceptions
// whose high part is a single bit store nothing beyond their position.
const (
	pageHeaderWords = 2
	pageTailWords   = 72
)

var metaPool = pool.NewByteBufferPool(4096, pool.FrameBufferMaxThreshold)

type fastPFORBody struct {
	block       int
	interleaved bool
	pageSize    int
}

var _ blockBody = (*fastPFORBody)(nil)

// NewFastPFOR returns a FastPFOR codec over blocks of blockSize values (128 or
// 256). With interleaved set, payloads use the 4-lane interleaved layout.
//
// Values past the last full block are stored with variable-byte coding.
func NewFastPFOR(name string, blockSize int, interleaved bool, opts ...Option) (Codec, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	id, ok := fastPFORIDs[fastPFORVariant{blockSize, interleaved}]
	if !ok {
		return nil, fmt.Errorf("%w: no FastPFOR variant with block size %d (interleaved=%t)",
			errs.ErrInvalidArgument, blockSize, interleaved)
	}

	b := &fastPFORBody{block: blockSize, interleaved: interleaved, pageSize: cfg.pageSize}

	return newStream(name, id, newComposite(b, vbyteBody{})), nil
}

type fastPFORVariant struct {
	block       int
	interleaved bool
}

var fastPFORIDs = map[fastPFORVariant]codecID{
	{128, false}: idFastPFOR128,
	{256, false}: idFastPFOR256,
	{128, true}:  idSIMDFastPFOR128,
	{256, true}:  idSIMDFastPFOR256,
}

func (f *fastPFORBody) blockSize() int {
	return f.block
}

func (f *fastPFORBody) maxWords(n int) int {
	blocks := n / f.block
	pages := (n + f.pageSize - 1) / f.pageSize

	return n + blocks + pages*pageTailWords
}

func (f *fastPFORBody) encode(in, out []uint32) (int, error) {
	pos := 0
	for start := 0; start < len(in); start += f.pageSize {
		page := in[start:min(start+f.pageSize, len(in))]
		written, err := f.encodePage(page, out[pos:])
		if err != nil {
			return 0, err
		}
		pos += written
	}

	return pos, nil
}

func (f *fastPFORBody) encodePage(page, out []uint32) (int, error) {
	blocks := len(page) / f.block

	scratch, release := pool.GetWordSlice(blocks + 3*len(page))
	defer release()
	widths := scratch[:blocks]
	highs := scratch[blocks : blocks+len(page)]
	diffs := scratch[blocks+len(page) : blocks+2*len(page)]
	sorted := scratch[blocks+2*len(page):]

	meta := metaPool.Get()
	defer metaPool.Put(meta)

	exceptions := 0
	payload := 0
	for i := range blocks {
		block := page[i*f.block : (i+1)*f.block]
		plan := planCostModel(block)
		widths[i] = uint32(plan.Width)
		payload += payloadWords(f.block, plan.Width)

		meta.AppendByte(byte(plan.Width))
		meta.AppendByte(byte(plan.Exceptions))
		if plan.Exceptions == 0 {
			continue
		}

		meta.AppendByte(byte(plan.MaxWidth))
		for j, v := range block {
			if v>>plan.Width == 0 {
				continue
			}
			meta.AppendByte(byte(j))
			highs[exceptions] = v >> plan.Width
			diffs[exceptions] = uint32(plan.highWidth())
			exceptions++
		}
	}

	// Group the stored highs by width, keeping their order within each width.
	var counts [bitpack.MaxWidth + 1]int
	for _, d := range diffs[:exceptions] {
		counts[d]++
	}
	var offsets [bitpack.MaxWidth + 1]int
	var bitmap uint32
	listWords := 0
	next := 0
	for k := 2; k <= bitpack.MaxWidth; k++ {
		offsets[k] = next
		next += counts[k]
		if counts[k] > 0 {
			bitmap |= 1 << (k - 1)
			listWords += 1 + bitpack.PackedWords(counts[k], k)
		}
	}
	for e, d := range diffs[:exceptions] {
		if d < 2 {
			continue
		}
		sorted[offsets[d]] = highs[e]
		offsets[d]++
	}

	metaWords := (meta.Len() + 3) / 4
	need := pageHeaderWords + payload + 1 + metaWords + 1 + listWords
	if len(out) < need {
		return 0, errCapacity(need, len(out))
	}

	out[0] = uint32(len(page))
	out[1] = uint32(payload)
	pos := pageHeaderWords
	for i := range blocks {
		pos += packPayload(out[pos:], page[i*f.block:(i+1)*f.block], int(widths[i]), f.interleaved)
	}

	out[pos] = uint32(meta.Len())
	pos++
	w := newByteWriter(out[pos : pos+metaWords])
	w.write(meta.Bytes())
	pos += metaWords

	out[pos] = bitmap
	pos++
	start := 0
	for k := 2; k <= bitpack.MaxWidth; k++ {
		if counts[k] == 0 {
			continue
		}
		out[pos] = uint32(counts[k])
		pos++
		pos += bitpack.Pack(out[pos:], sorted[start:start+counts[k]], k)
		start += counts[k]
	}

	return pos, nil
}

func (f *fastPFORBody) decode(in, out []uint32) (int, error) {
	pos := 0
	done := 0
	for done < len(out) {
		consumed, values, err := f.decodePage(in[pos:], out[done:])
		if err != nil {
			return 0, fmt.Errorf("page at value %d: %w", done, err)
		}
		pos += consumed
		done += values
	}

	return pos, nil
}

func (f *fastPFORBody) decodePage(in, out []uint32) (consumed, values int, err error) {
	if len(in) < pageHeaderWords {
		return 0, 0, errTruncated("page header", pageHeaderWords, len(in))
	}

	n := int(in[0])
	if n == 0 || n%f.block != 0 || n > len(out) {
		return 0, 0, fmt.Errorf("%w: page of %d values (block size %d, %d values left)",
			errs.ErrCorruptStream, n, f.block, len(out))
	}
	out = out[:n]

	payload := int(in[1])
	pos := pageHeaderWords
	if len(in)-pos < payload+1 {
		return 0, 0, errTruncated("page payload", payload+1, len(in)-pos)
	}
	payloadArea := in[pos : pos+payload]
	pos += payload

	metaLen := int(in[pos])
	pos++
	metaWords := (metaLen + 3) / 4
	if metaLen > 4*len(in) || len(in)-pos < metaWords+1 {
		return 0, 0, errTruncated("page metadata", metaWords+1, len(in)-pos)
	}
	meta := newByteReader(in[pos : pos+metaWords])
	meta.limit = metaLen
	pos += metaWords

	bitmap := in[pos]
	pos++
	if bitmap&1 != 0 {
		return 0, 0, fmt.Errorf("%w: exception bitmap %#08x marks width 1", errs.ErrCorruptStream, bitmap)
	}

	scratch, release := pool.GetWordSlice(n)
	defer release()

	var listStart, listLen, cursor [bitpack.MaxWidth + 1]int
	total := 0
	for k := 2; k <= bitpack.MaxWidth; k++ {
		if bitmap&(1<<(k-1)) == 0 {
			continue
		}
		if pos >= len(in) {
			return 0, 0, errTruncated("exception count", 1, 0)
		}
		count := int(in[pos])
		pos++
		if count == 0 || count > n-total {
			return 0, 0, fmt.Errorf("%w: %d exceptions of width %d in a page of %d values",
				errs.ErrCorruptStream, count, k, n)
		}
		words := bitpack.PackedWords(count, k)
		if len(in)-pos < words {
			return 0, 0, errTruncated("exception list", words, len(in)-pos)
		}
		listStart[k] = total
		listLen[k] = count
		pos += bitpack.Unpack(scratch[total:total+count], in[pos:], k)
		total += count
	}

	ppos := 0
	for i := range n / f.block {
		base := i * f.block
		block := out[base : base+f.block]

		width, ok1 := meta.readByte()
		count, ok2 := meta.readByte()
		if !ok1 || !ok2 {
			return 0, 0, fmt.Errorf("%w: metadata of block %d is truncated", errs.ErrCorruptStream, i)
		}
		if width > bitpack.MaxWidth || int(count) > f.block {
			return 0, 0, fmt.Errorf("%w: block %d has width %d and %d exceptions",
				errs.ErrCorruptStream, i, width, count)
		}
		need := payloadWords(f.block, int(width))
		if payload-ppos < need {
			return 0, 0, errTruncated("block payload", need, payload-ppos)
		}
		ppos += unpackPayload(block, payloadArea[ppos:], int(width), f.interleaved)

		if count == 0 {
			continue
		}

		maxWidth, ok := meta.readByte()
		if !ok || maxWidth <= width || maxWidth > bitpack.MaxWidth {
			return 0, 0, fmt.Errorf("%w: block %d has max width %d for base width %d",
				errs.ErrCorruptStream, i, maxWidth, width)
		}
		k := int(maxWidth - width)
		for range count {
			p, ok := meta.readByte()
			if !ok || int(p) >= f.block {
				return 0, 0, fmt.Errorf("%w: bad exception position in block %d", errs.ErrCorruptStream, i)
			}
			if k == 1 {
				block[p] |= 1 << width
				continue
			}
			if cursor[k] >= listLen[k] {
				return 0, 0, fmt.Errorf("%w: exception list of width %d exhausted", errs.ErrCorruptStream, k)
			}
			block[p] |= scratch[listStart[k]+cursor[k]] << width
			cursor[k]++
		}
	}

	if ppos != payload || meta.remaining() != 0 {
		return 0, 0, fmt.Errorf("%w: page has %d unused payload words and %d unused metadata bytes",
			errs.ErrCorruptStream, payload-ppos, meta.remaining())
	}
	if cursor != listLen {
		return 0, 0, fmt.Errorf("%w: page has unused exceptions", errs.ErrCorruptStream)
	}

	return pos, n, nil
}

package bitpack

// BlockSize32 is the value count handled by PackBlock32 and UnpackBlock32.
const BlockSize32 = 32

type (
	packFunc   func(dst, src []uint32)
	unpackFunc func(dst, src []uint32)
)

// Dispatch tables indexed by width. Built once in init and read-only afterwards.
var (
	packers32   [MaxWidth + 1]packFunc
	unpackers32 [MaxWidth + 1]unpackFunc
)

func init() {
	for w := 0; w <= MaxWidth; w++ {
		switch {
		case w == 0:
			packers32[w] = func(dst, src []uint32) {}
			unpackers32[w] = func(dst, src []uint32) { clear(dst[:BlockSize32]) }
		case w == MaxWidth:
			packers32[w] = func(dst, src []uint32) { copy(dst[:BlockSize32], src[:BlockSize32]) }
			unpackers32[w] = func(dst, src []uint32) { copy(dst[:BlockSize32], src[:BlockSize32]) }
		case 32%w == 0:
			packers32[w] = alignedPacker(w)
			unpackers32[w] = alignedUnpacker(w)
		default:
			packers32[w] = straddlingPacker(w)
			unpackers32[w] = straddlingUnpacker(w)
		}
	}
}

// PackBlock32 packs exactly 32 values at the given width into dst. The block
// always occupies exactly width words, which is also the return value.
func PackBlock32(dst, src []uint32, width int) int {
	checkWidth(width)
	_ = src[BlockSize32-1]
	packers32[width](dst, src)

	return width
}

// UnpackBlock32 unpacks exactly 32 values of the given width from src into dst
// and returns the number of words consumed (width).
func UnpackBlock32(dst, src []uint32, width int) int {
	checkWidth(width)
	_ = dst[BlockSize32-1]
	unpackers32[width](dst, src)

	return width
}

// alignedPacker builds the kernel for widths dividing 32: values never cross a
// word boundary, so each output word is an OR of perWord shifted values.
func alignedPacker(width int) packFunc {
	perWord := 32 / width
	mask := uint32(1)<<width - 1

	return func(dst, src []uint32) {
		_ = dst[width-1]
		for j := 0; j < width; j++ {
			in := src[j*perWord : (j+1)*perWord]
			var word uint32
			for t, v := range in {
				word |= (v & mask) << (t * width)
			}
			dst[j] = word
		}
	}
}

func alignedUnpacker(width int) unpackFunc {
	perWord := 32 / width
	mask := uint32(1)<<width - 1

	return func(dst, src []uint32) {
		_ = src[width-1]
		for j := 0; j < width; j++ {
			word := src[j]
			out := dst[j*perWord : (j+1)*perWord]
			for t := range out {
				out[t] = (word >> (t * width)) & mask
			}
		}
	}
}

// straddlingPacker builds the kernel for widths where some values span two
// words. A 64-bit accumulator is flushed every time it holds a full word.
func straddlingPacker(width int) packFunc {
	mask := uint64(1)<<width - 1

	return func(dst, src []uint32) {
		_ = dst[width-1]
		var acc uint64
		bitsInAcc := 0
		out := 0
		for _, v := range src[:BlockSize32] {
			acc |= (uint64(v) & mask) << bitsInAcc
			bitsInAcc += width
			if bitsInAcc >= 32 {
				dst[out] = uint32(acc)
				out++
				acc >>= 32
				bitsInAcc -= 32
			}
		}
	}
}

func straddlingUnpacker(width int) unpackFunc {
	mask := uint32(1)<<width - 1

	return func(dst, src []uint32) {
		_ = src[width-1]
		var acc uint64
		bitsInAcc := 0
		in := 0
		for i := range dst[:BlockSize32] {
			if bitsInAcc < width {
				acc |= uint64(src[in]) << bitsInAcc
				in++
				bitsInAcc += 32
			}
			dst[i] = uint32(acc) & mask
			acc >>= width
			bitsInAcc -= width
		}
	}
}

package codec

import (
	"fmt"

	"github.com/arloliu/intpack/errs"
)

// byteWriter writes a byte stream into 32-bit words, little-endian within each
// word. Unused bytes of the last word are zero.
type byteWriter struct {
	words []uint32
	n     int // bytes written
}

func newByteWriter(words []uint32) byteWriter {
	return byteWriter{words: words}
}

// room returns the number of bytes that still fit.
func (w *byteWriter) room() int {
	return 4*len(w.words) - w.n
}

func (w *byteWriter) writeByte(b byte) {
	i := w.n >> 2
	shift := uint(w.n&3) * 8
	if shift == 0 {
		w.words[i] = 0
	}
	w.words[i] |= uint32(b) << shift
	w.n++
}

func (w *byteWriter) write(p []byte) {
	for _, b := range p {
		w.writeByte(b)
	}
}

// wordsUsed returns the number of words touched so far.
func (w *byteWriter) wordsUsed() int {
	return (w.n + 3) / 4
}

// byteReader reads a byte stream stored by byteWriter.
type byteReader struct {
	words []uint32
	n     int // bytes read
	limit int
}

func newByteReader(words []uint32) byteReader {
	return byteReader{words: words, limit: 4 * len(words)}
}

func (r *byteReader) remaining() int {
	return r.limit - r.n
}

func (r *byteReader) readByte() (byte, bool) {
	if r.n >= r.limit {
		return 0, false
	}
	b := byte(r.words[r.n>>2] >> (uint(r.n&3) * 8))
	r.n++

	return b, true
}

func (r *byteReader) wordsUsed() int {
	return (r.n + 3) / 4
}

// vbyteLen returns the encoded length of v in the 7-bit group formats (1-5).
func vbyteLen(v uint32) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	default:
		return 5
	}
}

// putVByte writes v as 7-bit groups, low group first; the last byte carries
// the 0x80 terminator flag.
func putVByte(w *byteWriter, v uint32) {
	for v >= 0x80 {
		w.writeByte(byte(v & 0x7F))
		v >>= 7
	}
	w.writeByte(byte(v) | 0x80)
}

// getVByte reads one value written by putVByte.
func getVByte(r *byteReader) (uint32, error) {
	var v uint32
	for shift := uint(0); shift < 35; shift += 7 {
		b, ok := r.readByte()
		if !ok {
			return 0, fmt.Errorf("%w: variable-byte value runs past the end of the stream", errs.ErrCorruptStream)
		}
		if shift == 28 && b&0x7F > 0x0F {
			return 0, fmt.Errorf("%w: variable-byte value overflows 32 bits", errs.ErrCorruptStream)
		}
		v |= uint32(b&0x7F) << shift
		if b&0x80 != 0 {
			return v, nil
		}
	}

	return 0, fmt.Errorf("%w: variable-byte value longer than 5 bytes", errs.ErrCorruptStream)
}

// byteLen32 returns the number of bytes needed to store v (1-4).
func byteLen32(v uint32) int {
	switch {
	case v < 1<<8:
		return 1
	case v < 1<<16:
		return 2
	case v < 1<<24:
		return 3
	default:
		return 4
	}
}

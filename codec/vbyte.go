package codec

import (
	"fmt"

	"github.com/arloliu/intpack/errs"
)

// vbyteBody is the variable-byte format: 7 data bits per byte, low group
// first, with the top bit set on the last byte of each value. Zero padding
// bytes never terminate a value, so a padded final word is harmless.
type vbyteBody struct{}

var _ body = vbyteBody{}

// NewVByte returns the "vbyte" codec.
//
// Variable-byte is the robust baseline: any value is representable, values
// below 128 take one byte, and the worst case is 5 bytes per value.
func NewVByte() Codec {
	return newStream("vbyte", idVByte, vbyteBody{})
}

func (vbyteBody) maxWords(n int) int {
	return (5*n + 3) / 4
}

func (vbyteBody) encode(in, out []uint32) (int, error) {
	w := newByteWriter(out)
	for _, v := range in {
		if need := vbyteLen(v); w.room() < need {
			return 0, errCapacity((w.n+need+3)/4, len(out))
		}
		putVByte(&w, v)
	}

	return w.wordsUsed(), nil
}

func (vbyteBody) decode(in, out []uint32) (int, error) {
	r := newByteReader(in)
	for i := range out {
		v, err := getVByte(&r)
		if err != nil {
			return 0, fmt.Errorf("value %d of %d: %w", i, len(out), err)
		}
		out[i] = v
	}

	return r.wordsUsed(), nil
}

// varintBody is LEB128: 7 data bits per byte, low group first, with the top
// bit set on every byte except the last one of each value.
type varintBody struct{}

var _ body = varintBody{}

// NewVarint returns the "varint" codec (LEB128 layout, as used by protobuf and
// encoding/binary.PutUvarint).
func NewVarint() Codec {
	return newStream("varint", idVarint, varintBody{})
}

func (varintBody) maxWords(n int) int {
	return (5*n + 3) / 4
}

func (varintBody) encode(in, out []uint32) (int, error) {
	w := newByteWriter(out)
	for _, v := range in {
		if need := vbyteLen(v); w.room() < need {
			return 0, errCapacity((w.n+need+3)/4, len(out))
		}
		for v >= 0x80 {
			w.writeByte(byte(v) | 0x80)
			v >>= 7
		}
		w.writeByte(byte(v))
	}

	return w.wordsUsed(), nil
}

func (varintBody) decode(in, out []uint32) (int, error) {
	r := newByteReader(in)
	for i := range out {
		var v uint32
		done := false
		for shift := uint(0); shift < 35; shift += 7 {
			b, ok := r.readByte()
			if !ok {
				return 0, fmt.Errorf("%w: varint %d of %d runs past the end of the stream",
					errs.ErrCorruptStream, i, len(out))
			}
			if shift == 28 && b&0x7F > 0x0F {
				return 0, fmt.Errorf("%w: varint %d overflows 32 bits", errs.ErrCorruptStream, i)
			}
			v |= uint32(b&0x7F) << shift
			if b&0x80 == 0 {
				done = true
				break
			}
		}
		if !done {
			return 0, fmt.Errorf("%w: varint %d longer than 5 bytes", errs.ErrCorruptStream, i)
		}
		out[i] = v
	}

	return r.wordsUsed(), nil
}

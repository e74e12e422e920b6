package codec

import (
	"fmt"

	"github.com/arloliu/intpack/errs"
)

// varIntG8IUBody implements VarInt-G8IU: values are written little-endian with
// their minimal byte length (1-4) into 8-byte data units. Each unit is preceded
// by a descriptor byte whose bit i is set when data byte i is the last byte of
// a value. A value that does not fit in what is left of a unit starts the next
// unit; the remaining bytes are zero and their descriptor bits clear.
//
// Every unit holds at least two values except possibly the last one, because
// two values never need more than eight bytes.
type varIntG8IUBody struct{}

var _ body = varIntG8IUBody{}

const (
	g8iuDataBytes = 8
	g8iuUnitBytes = 1 + g8iuDataBytes
)

// g8iuLayout describes the values terminated inside one unit.
type g8iuLayout struct {
	count uint8
	// ends[i] is the index of the last data byte of value i.
	ends [g8iuDataBytes]uint8
}

var g8iuLayouts [256]g8iuLayout

func init() {
	for desc := range 256 {
		var l g8iuLayout
		for bit := range g8iuDataBytes {
			if desc&(1<<bit) != 0 {
				l.ends[l.count] = uint8(bit)
				l.count++
			}
		}
		g8iuLayouts[desc] = l
	}
}

// NewVarIntG8IU returns the "varintg8iu" codec.
func NewVarIntG8IU() Codec {
	return newStream("varintg8iu", idVarIntG8IU, varIntG8IUBody{})
}

func (varIntG8IUBody) maxWords(n int) int {
	units := (n + 1) / 2
	return (units*g8iuUnitBytes + 3) / 4
}

func (varIntG8IUBody) encode(in, out []uint32) (int, error) {
	w := newByteWriter(out)

	var unit [g8iuUnitBytes]byte
	used := 0
	flush := func() error {
		if w.room() < g8iuUnitBytes {
			return errCapacity((w.n+g8iuUnitBytes+3)/4, len(out))
		}
		w.write(unit[:])
		unit = [g8iuUnitBytes]byte{}
		used = 0

		return nil
	}

	for _, v := range in {
		l := byteLen32(v)
		if used+l > g8iuDataBytes {
			if err := flush(); err != nil {
				return 0, err
			}
		}
		for k := range l {
			unit[1+used+k] = byte(v >> (8 * k))
		}
		used += l
		unit[0] |= 1 << (used - 1)
	}
	if used > 0 {
		if err := flush(); err != nil {
			return 0, err
		}
	}

	return w.wordsUsed(), nil
}

func (varIntG8IUBody) decode(in, out []uint32) (int, error) {
	r := newByteReader(in)
	var unit [g8iuUnitBytes]byte

	i := 0
	for i < len(out) {
		if r.remaining() < g8iuUnitBytes {
			return 0, fmt.Errorf("%w: unit for value %d of %d is truncated", errs.ErrCorruptStream, i, len(out))
		}
		for k := range unit {
			unit[k], _ = r.readByte()
		}

		layout := &g8iuLayouts[unit[0]]
		if layout.count == 0 {
			return 0, fmt.Errorf("%w: empty unit descriptor before value %d", errs.ErrCorruptStream, i)
		}

		start := 0
		for _, end := range layout.ends[:layout.count] {
			if i == len(out) {
				break
			}
			e := int(end)
			if e-start >= 4 {
				return 0, fmt.Errorf("%w: value %d spans %d bytes", errs.ErrCorruptStream, i, e-start+1)
			}
			var v uint32
			for k := start; k <= e; k++ {
				v |= uint32(unit[1+k]) << (8 * (k - start))
			}
			out[i] = v
			i++
			start = e + 1
		}
	}

	return r.wordsUsed(), nil
}

package codec

import (
	"fmt"

	"github.com/arloliu/intpack/errs"
)

// groupVarintBody encodes four values per control byte:
//
//	[control][value0 bytes][value1 bytes][value2 bytes][value3 bytes]
//
// Bits 2i..2i+1 of the control byte hold the byte length of value i minus one.
// Values are little-endian. The final group may hold fewer than four values;
// the count comes from the stream header and the unused control bits are zero.
type groupVarintBody struct{}

var _ body = groupVarintBody{}

// groupVarintDataLen[control] is the number of data bytes of a full group.
var groupVarintDataLen [256]uint8

func init() {
	for control := range 256 {
		total := 0
		for i := range 4 {
			total += (control>>(2*i))&0x3 + 1
		}
		groupVarintDataLen[control] = uint8(total)
	}
}

// NewGroupVarint returns the "groupvarint" codec.
func NewGroupVarint() Codec {
	return newStream("groupvarint", idGroupVarint, groupVarintBody{})
}

func (groupVarintBody) maxWords(n int) int {
	groups := (n + 3) / 4
	return (groups + 4*n + 3) / 4
}

func (groupVarintBody) encode(in, out []uint32) (int, error) {
	w := newByteWriter(out)
	var buf [17]byte
	for start := 0; start < len(in); start += 4 {
		group := in[start:min(start+4, len(in))]

		var control byte
		pos := 1
		for i, v := range group {
			l := byteLen32(v)
			control |= byte(l-1) << (2 * i)
			for k := range l {
				buf[pos+k] = byte(v >> (8 * k))
			}
			pos += l
		}
		buf[0] = control

		if w.room() < pos {
			return 0, errCapacity((w.n+pos+3)/4, len(out))
		}
		w.write(buf[:pos])
	}

	return w.wordsUsed(), nil
}

func (groupVarintBody) decode(in, out []uint32) (int, error) {
	r := newByteReader(in)
	for start := 0; start < len(out); start += 4 {
		group := out[start:min(start+4, len(out))]

		control, ok := r.readByte()
		if !ok {
			return 0, fmt.Errorf("%w: missing control byte for group at value %d", errs.ErrCorruptStream, start)
		}
		if len(group) == 4 && r.remaining() < int(groupVarintDataLen[control]) {
			return 0, fmt.Errorf("%w: group at value %d needs %d data bytes, %d left",
				errs.ErrCorruptStream, start, groupVarintDataLen[control], r.remaining())
		}

		for i := range group {
			l := int(control>>(2*i))&0x3 + 1
			var v uint32
			for k := range l {
				b, ok := r.readByte()
				if !ok {
					return 0, fmt.Errorf("%w: value %d runs past the end of the stream", errs.ErrCorruptStream, start+i)
				}
				v |= uint32(b) << (8 * k)
			}
			group[i] = v
		}
	}

	return r.wordsUsed(), nil
}

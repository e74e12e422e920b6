package codec

import (
	"math"
	"testing"

	"github.com/arloliu/intpack/errs"
	"github.com/stretchr/testify/require"
)

func TestVByte_Layout(t *testing.T) {
	c := NewVByte()

	encoded := encode(t, c, []uint32{1, 300})
	// 1 -> 0x81, 300 -> 0x2C 0x82
	require.Equal(t, []uint32{headerWord(idVByte), 2, 0x00822C81}, encoded)
}

func TestVarint_Layout(t *testing.T) {
	c := NewVarint()

	encoded := encode(t, c, []uint32{1, 300})
	// 1 -> 0x01, 300 -> 0xAC 0x02
	require.Equal(t, []uint32{headerWord(idVarint), 2, 0x0002AC01}, encoded)
}

func TestVByte_Overflow(t *testing.T) {
	c := NewVByte()

	// Five bytes whose last group carries more than 4 bits.
	in := []uint32{headerWord(idVByte), 1, 0x7F7F7F7F, 0xFF}
	_, err := c.DecodeArray(in, make([]uint32, 1))
	require.ErrorIs(t, err, errs.ErrCorruptStream)

	in = []uint32{headerWord(idVByte), 1, 0x7F7F7F7F, 0x8F}
	out := make([]uint32, 1)
	_, err = c.DecodeArray(in, out)
	require.NoError(t, err)
	require.Equal(t, uint32(math.MaxUint32), out[0])
}

func TestGroupVarint_Layout(t *testing.T) {
	c := NewGroupVarint()

	encoded := encode(t, c, []uint32{1, 256, 1 << 16, 1 << 24, 7})
	require.Equal(t, uint32(5), encoded[1])

	// Control 0b11_10_01_00 then 1+2+3+4 data bytes, then the partial group.
	first := byte(encoded[2])
	require.Equal(t, byte(0xE4), first)
	require.Equal(t, []uint32{1, 256, 1 << 16, 1 << 24, 7}, decode(t, c, encoded, 5))
}

func TestVarIntG8IU_Units(t *testing.T) {
	c := NewVarIntG8IU()

	// Two 4-byte values fill one unit; the third starts the next unit.
	values := []uint32{math.MaxUint32, 1 << 30, 5}
	encoded := encode(t, c, values)
	require.Len(t, encoded, 2+5, "two 9-byte units")
	require.Equal(t, uint32(0x88), encoded[2]&0xFF, "first descriptor ends values at bytes 3 and 7")
	require.Equal(t, values, decode(t, c, encoded, len(values)))

	// An empty descriptor can never precede a value.
	bad := append([]uint32(nil), encoded...)
	bad[2] &^= 0xFF
	_, err := c.DecodeArray(bad, make([]uint32, len(values)))
	require.ErrorIs(t, err, errs.ErrCorruptStream)
}

func TestByteLengths(t *testing.T) {
	tests := []struct {
		v       uint32
		vbyte   int
		byteLen int
	}{
		{0, 1, 1},
		{127, 1, 1},
		{128, 2, 1},
		{255, 2, 1},
		{256, 2, 2},
		{1<<14 - 1, 2, 2},
		{1 << 14, 3, 2},
		{1 << 16, 3, 3},
		{1 << 21, 4, 3},
		{1 << 24, 4, 4},
		{1 << 28, 5, 4},
		{math.MaxUint32, 5, 4},
	}

	for _, tt := range tests {
		require.Equal(t, tt.vbyte, vbyteLen(tt.v), "vbyteLen(%d)", tt.v)
		require.Equal(t, tt.byteLen, byteLen32(tt.v), "byteLen32(%d)", tt.v)
	}
}

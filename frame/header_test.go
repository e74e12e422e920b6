package frame

import (
	"testing"

	"github.com/arloliu/intpack/errs"
	"github.com/arloliu/intpack/format"
	"github.com/stretchr/testify/require"
)

func TestNewFlag(t *testing.T) {
	flag := NewFlag()

	require.Equal(t, uint16(MagicFrameV1Opt), flag.GetMagicNumber())
	require.False(t, flag.IsBigEndian())
	require.Equal(t, format.TransformNone, flag.Transform())
	require.Equal(t, format.CompressionNone, flag.Compression())
	require.NoError(t, flag.Validate())

	flag.WithBigEndian()
	require.True(t, flag.IsBigEndian())
	require.NoError(t, flag.Validate())
	flag.WithLittleEndian()
	require.False(t, flag.IsBigEndian())
}

func TestFlag_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Flag)
	}{
		{"bad magic", func(f *Flag) { f.Options = 0x1230 }},
		{"reserved bit", func(f *Flag) { f.Options |= 0x0001 }},
		{"unknown transform", func(f *Flag) { f.TransformType = 0x09 }},
		{"zero transform", func(f *Flag) { f.TransformType = 0 }},
		{"unknown compression", func(f *Flag) { f.CompressionType = 0x7F }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := NewFlag()
			tt.mutate(&flag)
			require.ErrorIs(t, flag.Validate(), errs.ErrCorruptStream)
		})
	}
}

func TestHeader_RoundTrip(t *testing.T) {
	for _, bigEndian := range []bool{false, true} {
		original := Header{
			Flag:        NewFlag(),
			CodecID:     0x0102030405060708,
			Count:       1000,
			WordCount:   321,
			PayloadSize: 1284,
			Checksum:    0xA1B2C3D4E5F60718,
		}
		original.Flag.TransformType = uint8(format.TransformDelta4)
		original.Flag.CompressionType = uint8(format.CompressionS2)
		if bigEndian {
			original.Flag.WithBigEndian()
		}

		data := original.Bytes()
		require.Len(t, data, HeaderSize)

		parsed, err := ParseHeader(data)
		require.NoError(t, err)
		require.Equal(t, original, parsed)
		require.Equal(t, HeaderSize+1284, parsed.FrameSize())
	}
}

func TestHeader_ByteLayout(t *testing.T) {
	h := Header{Flag: NewFlag(), Count: 0x11223344}

	data := h.Bytes()
	require.Equal(t, byte(0xA0), data[0])
	require.Equal(t, byte(0xC1), data[1])
	require.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, data[12:16])

	h.Flag.WithBigEndian()
	data = h.Bytes()
	require.Equal(t, byte(0xA2), data[0], "options stay little-endian")
	require.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, data[12:16])
}

func TestParseHeader_Errors(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrCorruptStream)

	_, err = ParseHeader(make([]byte, HeaderSize))
	require.ErrorIs(t, err, errs.ErrCorruptStream)

	var h Header
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrCorruptStream)
}

func TestHeader_Stats(t *testing.T) {
	h := Header{Flag: NewFlag(), WordCount: 100, PayloadSize: 100}
	h.Flag.CompressionType = uint8(format.CompressionZstd)

	stats := h.Stats()
	require.Equal(t, format.CompressionZstd, stats.Algorithm)
	require.Equal(t, int64(400), stats.OriginalSize)
	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
}

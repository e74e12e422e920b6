package frame

import (
	"fmt"

	"github.com/arloliu/intpack/compress"
	"github.com/arloliu/intpack/errs"
)

// Header is the fixed 32-byte header at the start of every frame.
//
// The Options field is always little-endian; every other field uses the
// byte order selected by the endianness bit.
type Header struct {
	// Flag holds the magic number, endianness, transform and compression.
	Flag Flag // byte offset 0-3
	// CodecID is the xxHash64 of the codec name.
	CodecID uint64 // byte offset 4-11
	// Count is the number of values in the frame.
	Count uint32 // byte offset 12-15
	// WordCount is the length of the packed word stream.
	WordCount uint32 // byte offset 16-19
	// PayloadSize is the number of payload bytes following the header.
	PayloadSize uint32 // byte offset 20-23
	// Checksum is the xxHash64 of the payload bytes.
	Checksum uint64 // byte offset 24-31
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: wraps errs.ErrCorruptStream if data has the wrong size or invalid flags
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return fmt.Errorf("%w: frame header of %d bytes, want %d", errs.ErrCorruptStream, len(data), HeaderSize)
	}

	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.TransformType = data[2]
	h.Flag.CompressionType = data[3]

	engine := h.Flag.GetEndianEngine()

	h.CodecID = engine.Uint64(data[4:12])
	h.Count = engine.Uint32(data[12:16])
	h.WordCount = engine.Uint32(data[16:20])
	h.PayloadSize = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return h.Flag.Validate()
}

// Bytes serializes the header into a new byte slice.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	engine := h.Flag.GetEndianEngine()

	dst = append(dst, byte(h.Flag.Options), byte(h.Flag.Options>>8), h.Flag.TransformType, h.Flag.CompressionType)
	dst = engine.AppendUint64(dst, h.CodecID)
	dst = engine.AppendUint32(dst, h.Count)
	dst = engine.AppendUint32(dst, h.WordCount)
	dst = engine.AppendUint32(dst, h.PayloadSize)
	dst = engine.AppendUint64(dst, h.Checksum)

	return dst
}

// FrameSize returns the total size of the frame, header included.
func (h *Header) FrameSize() int {
	return HeaderSize + int(h.PayloadSize)
}

// Stats reports the effect of the byte compressor on the packed words.
func (h *Header) Stats() compress.CompressionStats {
	return compress.CompressionStats{
		Algorithm:      h.Flag.Compression(),
		OriginalSize:   4 * int64(h.WordCount),
		CompressedSize: int64(h.PayloadSize),
	}
}

// ParseHeader parses a Header from the start of data.
//
// Returns:
//   - Header: Parsed header struct
//   - error: wraps errs.ErrCorruptStream if data is too short or invalid
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes cannot hold a frame header", errs.ErrCorruptStream, len(data))
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}

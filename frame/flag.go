package frame

import (
	"fmt"

	"github.com/arloliu/intpack/endian"
	"github.com/arloliu/intpack/errs"
	"github.com/arloliu/intpack/format"
)

// Flag is the packed leading field of a frame header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 0, 2 and 3 are reserved and must be 0.
	// Bits 4-15 hold the magic number MagicFrameV1Opt.
	Options uint16

	// TransformType records the transform applied before encoding.
	TransformType uint8
	// CompressionType records the byte compressor applied after encoding.
	CompressionType uint8
}

// NewFlag creates a Flag for an untransformed, uncompressed little-endian frame.
func NewFlag() Flag {
	return Flag{
		Options:         MagicFrameV1Opt,
		TransformType:   uint8(format.TransformNone),
		CompressionType: uint8(format.CompressionNone),
	}
}

// IsBigEndian returns whether the frame is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the engine matching the endianness bit.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

func (f Flag) Transform() format.TransformType {
	return format.TransformType(f.TransformType)
}

func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// Validate checks the magic number, the reserved bits and both enums.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicFrameV1Opt {
		return fmt.Errorf("%w: bad frame magic %#04x", errs.ErrCorruptStream, f.GetMagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved frame option bits set (%#04x)", errs.ErrCorruptStream, f.Options)
	}
	if !validTransform(f.Transform()) {
		return fmt.Errorf("%w: unknown transform type %#02x", errs.ErrCorruptStream, f.TransformType)
	}
	if !validCompression(f.Compression()) {
		return fmt.Errorf("%w: unknown compression type %#02x", errs.ErrCorruptStream, f.CompressionType)
	}

	return nil
}

func validTransform(t format.TransformType) bool {
	switch t {
	case format.TransformNone, format.TransformDelta1, format.TransformDelta4:
		return true
	default:
		return false
	}
}

func validCompression(c format.CompressionType) bool {
	switch c {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return true
	default:
		return false
	}
}

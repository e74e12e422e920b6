// Package endian serializes packed word streams to bytes in a chosen byte
// order.
//
// EndianEngine combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary, so binary.LittleEndian and binary.BigEndian satisfy it
// directly. Frames are little-endian unless created with frame.WithBigEndian.
//
//	engine := endian.GetLittleEndianEngine()
//	buf = endian.AppendWords(engine, buf, packed)
//	...
//	endian.ReadWords(engine, packed, buf)
//
// All functions are safe for concurrent use; engines are immutable.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 stores 0x01 first on big-endian hosts.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeBigEndian reports whether the host is big-endian.
func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendWords appends the 4-byte encoding of every word to dst.
func AppendWords(engine EndianEngine, dst []byte, words []uint32) []byte {
	dst = growBytes(dst, 4*len(words))
	for _, w := range words {
		dst = engine.AppendUint32(dst, w)
	}

	return dst
}

// ReadWords decodes len(dst) words from src, which must hold at least
// 4*len(dst) bytes. Bytes in host order are copied without conversion.
func ReadWords(engine EndianEngine, dst []uint32, src []byte) {
	_ = src[:4*len(dst)]
	if len(dst) > 0 && CompareNativeEndian(engine) {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), 4*len(dst)), src)
		return
	}
	for i := range dst {
		dst[i] = engine.Uint32(src[4*i:])
	}
}

func growBytes(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)

	return grown
}

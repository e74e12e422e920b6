// Package frame stores encoded integer arrays as self-describing byte frames.
//
// A codec stream is a []uint32 whose layout only its codec understands. A
// frame wraps it for storage or transport:
//
//	[32-byte header][payload]
//
// The header records the codec (as an xxHash64 of its name), the transform
// applied before encoding, the byte compressor applied after it, the byte
// order, the value and word counts, and an xxHash64 checksum of the payload.
// The payload is the word stream serialized in that byte order and optionally
// compressed with zstd, s2 or lz4.
//
// Usage:
//
//	data, err := frame.Marshal(timestamps,
//		frame.WithCodec("simdfastpfor256"),
//		frame.WithTransform(format.TransformDelta1),
//		frame.WithCompression(format.CompressionZstd),
//	)
//	...
//	timestamps, err = frame.Unmarshal(data)
//
// Frames can be concatenated; Next walks them without decoding payloads.
package frame

// Package compress provides the byte compressors of the storage envelope.
//
// Codecs in package codec already remove most redundancy from integer arrays.
// A second, general-purpose pass still pays off for some streams: repeated
// block patterns, runs of identical widths, or the padding of byte-oriented
// formats. The frame package can run its serialized word stream through one
// of the compressors below. Compression is never part of a codec's own format.
//
// Supported algorithms:
//   - None (format.CompressionNone): passes data through unchanged
//   - Zstd (format.CompressionZstd): best ratio, moderate speed
//   - S2 (format.CompressionS2): balanced ratio and speed
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// Zstd uses github.com/klauspost/compress/zstd by default. Building with the
// gozstd tag and cgo enabled switches to github.com/valyala/gozstd.
//
// Usage:
//
//	c, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//		return err
//	}
//	packed, err := c.Compress(raw)
//	...
//	raw, err = c.Decompress(packed)
//
// All codecs are stateless values backed by pooled encoders and are safe for
// concurrent use.
package compress

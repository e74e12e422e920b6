package compress

// ZstdCompressor provides Zstandard compression. It gives the best ratio of
// the built-in compressors and suits archived frames that are decoded rarely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

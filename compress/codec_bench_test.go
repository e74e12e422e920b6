package compress

import (
	"math/rand/v2"
	"testing"

	"github.com/arloliu/intpack/format"
)

func BenchmarkCompress(b *testing.B) {
	rng := rand.New(rand.NewPCG(7, 7))
	words := make([]uint32, 16384)
	for i := range words {
		words[i] = rng.Uint32N(1 << 10)
	}
	data := wordBytes(words)

	for _, typ := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		c, _ := GetCodec(typ)
		compressed, _ := c.Compress(data)

		b.Run(typ.String()+"/compress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = c.Compress(data)
			}
		})
		b.Run(typ.String()+"/decompress", func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = c.Decompress(compressed)
			}
		})
	}
}

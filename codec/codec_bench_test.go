package codec

import (
	"math/rand/v2"
	"testing"
)

func benchmarkValues(n int) []uint32 {
	rng := rand.New(rand.NewPCG(42, 42))
	values := make([]uint32, n)
	for i := range values {
		values[i] = rng.Uint32N(1 << 10)
		if rng.IntN(50) == 0 {
			values[i] = rng.Uint32()
		}
	}

	return values
}

func BenchmarkEncodeArray(b *testing.B) {
	values := benchmarkValues(1 << 16)

	for _, name := range Names() {
		c, _ := Get(name)
		out := make([]uint32, c.MaxEncodedLen(len(values)))

		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(4 * len(values)))
			b.ReportAllocs()

			for b.Loop() {
				if _, err := c.EncodeArray(values, out); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecodeArray(b *testing.B) {
	values := benchmarkValues(1 << 16)

	for _, name := range Names() {
		c, _ := Get(name)
		encoded := make([]uint32, c.MaxEncodedLen(len(values)))
		n, err := c.EncodeArray(values, encoded)
		if err != nil {
			b.Fatal(err)
		}
		encoded = encoded[:n]
		out := make([]uint32, len(values))

		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(4 * len(values)))
			b.ReportMetric(32*float64(n)/float64(len(values)), "bits/int")

			for b.Loop() {
				if _, err := c.DecodeArray(encoded, out); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

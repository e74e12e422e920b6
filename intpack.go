// Package intpack compresses arrays of 32-bit unsigned integers.
//
// Intpack is optimized for integer sequences with small values or small
// differences: posting lists of inverted indexes, sorted ids of columnar
// stores, event timestamps. It provides a family of codecs with different
// speed/ratio trade-offs, all sharing one contract (see codec.Codec).
//
// # Core Features
//
//   - Bit packing in blocks of 32 and 128 values (binarypacking, simdbinarypacking)
//   - Patched frame-of-reference codecs with exceptions (fastpfor, simplepfor,
//     newpfor, optpfor and their 256-value and interleaved variants)
//   - Byte-oriented codecs (vbyte, varint, groupvarint, varintg8iu, copy)
//   - Delta transforms with stride 1 and 4 and their prefix-sum inverses
//   - A self-describing frame format with optional compression (see package frame)
//
// # Basic Usage
//
// Encoding and decoding with caller-owned buffers:
//
//	c, err := intpack.GetCodec("simdfastpfor256")
//	if err != nil {
//	    return err
//	}
//
//	intpack.Delta1(ids)
//	packed := make([]uint32, c.MaxEncodedLen(len(ids)))
//	n, err := intpack.EncodeArray(c, ids, packed)
//	if err != nil {
//	    return err
//	}
//	packed = packed[:n]
//
//	decoded := make([]uint32, len(ids))
//	if _, err := intpack.DecodeArray(c, packed, decoded); err != nil {
//	    return err
//	}
//	intpack.PrefixSum1(decoded)
//
// Encode and Decode allocate the buffers themselves, and EncodeMany and
// DecodeMany process many independent arrays in parallel.
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the codec and
// transform packages. For storage, use the frame package, and for
// append-only columns the encoding package.
package intpack

import (
	"context"
	"fmt"
	"runtime"

	"github.com/arloliu/intpack/codec"
	"github.com/arloliu/intpack/errs"
	"github.com/arloliu/intpack/transform"
	"golang.org/x/sync/errgroup"
)

// GetCodec returns the registered codec with the given name.
//
// Returns an error wrapping errs.ErrUnknownCodec if no codec has that name.
func GetCodec(name string) (codec.Codec, error) {
	return codec.Get(name)
}

// GetCodecList returns the names of all registered codecs in ascending order.
func GetCodecList() []string {
	return codec.Names()
}

// EncodeArray encodes in into out with c and returns the number of words written.
//
// An out of c.MaxEncodedLen(len(in)) words is always large enough.
func EncodeArray(c codec.Codec, in, out []uint32) (int, error) {
	return c.EncodeArray(in, out)
}

// DecodeArray decodes in into out with c and returns the number of values written.
func DecodeArray(c codec.Codec, in, out []uint32) (int, error) {
	return c.DecodeArray(in, out)
}

// Delta1 replaces values with the differences of consecutive elements, in place.
func Delta1(values []uint32) {
	transform.Delta1(values)
}

// Delta4 replaces values with the differences of elements four apart, in place.
func Delta4(values []uint32) {
	transform.Delta4(values)
}

// PrefixSum1 reverses Delta1 in place.
func PrefixSum1(values []uint32) {
	transform.PrefixSum1(values)
}

// PrefixSum4 reverses Delta4 in place.
func PrefixSum4(values []uint32) {
	transform.PrefixSum4(values)
}

// Encode encodes in with the named codec into a newly allocated slice trimmed
// to the encoded length.
func Encode(name string, in []uint32) ([]uint32, error) {
	c, err := codec.Get(name)
	if err != nil {
		return nil, err
	}

	return encodeWith(c, in)
}

// Decode decodes in with the named codec into a newly allocated slice. n is
// the number of values the stream is expected to hold.
//
// Returns an error wrapping errs.ErrInsufficientOutputCapacity if the stream
// holds more than n values.
func Decode(name string, in []uint32, n int) ([]uint32, error) {
	c, err := codec.Get(name)
	if err != nil {
		return nil, err
	}

	return decodeWith(c, in, n)
}

// EncodeMany encodes each input with the named codec in parallel. The result
// at index i is the encoding of inputs[i].
//
// The first error cancels the remaining work and is returned. Cancelling ctx
// stops the work early with ctx.Err().
func EncodeMany(ctx context.Context, name string, inputs [][]uint32) ([][]uint32, error) {
	c, err := codec.Get(name)
	if err != nil {
		return nil, err
	}

	results := make([][]uint32, len(inputs))
	err = forEach(ctx, len(inputs), func(i int) error {
		encoded, err := encodeWith(c, inputs[i])
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		results[i] = encoded

		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// DecodeMany decodes each input with the named codec in parallel. counts[i]
// is the number of values inputs[i] is expected to hold.
//
// Returns an error wrapping errs.ErrInvalidArgument if inputs and counts
// differ in length.
func DecodeMany(ctx context.Context, name string, inputs [][]uint32, counts []int) ([][]uint32, error) {
	if len(inputs) != len(counts) {
		return nil, fmt.Errorf("%w: %d inputs but %d counts", errs.ErrInvalidArgument, len(inputs), len(counts))
	}

	c, err := codec.Get(name)
	if err != nil {
		return nil, err
	}

	results := make([][]uint32, len(inputs))
	err = forEach(ctx, len(inputs), func(i int) error {
		decoded, err := decodeWith(c, inputs[i], counts[i])
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		results[i] = decoded

		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func encodeWith(c codec.Codec, in []uint32) ([]uint32, error) {
	out := make([]uint32, c.MaxEncodedLen(len(in)))
	n, err := c.EncodeArray(in, out)
	if err != nil {
		return nil, err
	}

	return out[:n:n], nil
}

func decodeWith(c codec.Codec, in []uint32, n int) ([]uint32, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative value count %d", errs.ErrInvalidArgument, n)
	}

	out := make([]uint32, n)
	got, err := c.DecodeArray(in, out)
	if err != nil {
		return nil, err
	}

	return out[:got], nil
}

// forEach runs fn for every index in [0, n) on at most GOMAXPROCS goroutines.
func forEach(ctx context.Context, n int, fn func(i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			return fn(i)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// gctx is always done after Wait; only the caller's cancellation counts.
	return ctx.Err()
}

package encoding

import (
	"fmt"
	"iter"

	"github.com/arloliu/intpack/errs"
	"github.com/arloliu/intpack/frame"
	"github.com/arloliu/intpack/internal/pool"
)

// DefaultChunkSize is the number of values per frame written by PackedEncoder.
const DefaultChunkSize = 8192

// PackedEncoder encodes a uint32 column as a sequence of frames of at most
// chunkSize values each. A frame is sealed when its chunk is full, when Reset
// is called, or when Bytes or Size is called.
type PackedEncoder struct {
	marshaler *frame.Marshaler
	buf       *pool.ByteBuffer
	pending   []uint32
	chunkSize int
	count     int
}

var _ ColumnarEncoder[uint32] = (*PackedEncoder)(nil)

// NewPackedEncoder creates an encoder writing frames of at most chunkSize
// values, configured by opts.
//
// Returns an error wrapping errs.ErrInvalidArgument if chunkSize is not
// positive, or the error of an invalid frame option.
func NewPackedEncoder(chunkSize int, opts ...frame.Option) (*PackedEncoder, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d", errs.ErrInvalidArgument, chunkSize)
	}

	m, err := frame.NewMarshaler(opts...)
	if err != nil {
		return nil, err
	}

	return &PackedEncoder{
		marshaler: m,
		buf:       pool.GetFrameBuffer(),
		pending:   make([]uint32, 0, min(chunkSize, DefaultChunkSize)),
		chunkSize: chunkSize,
	}, nil
}

// Write appends a single value.
func (e *PackedEncoder) Write(v uint32) {
	e.pending = append(e.pending, v)
	e.count++
	if len(e.pending) == e.chunkSize {
		e.seal()
	}
}

// WriteSlice appends all values.
func (e *PackedEncoder) WriteSlice(values []uint32) {
	for len(values) > 0 {
		take := min(e.chunkSize-len(e.pending), len(values))
		e.pending = append(e.pending, values[:take]...)
		e.count += take
		values = values[take:]
		if len(e.pending) == e.chunkSize {
			e.seal()
		}
	}
}

// Bytes seals buffered values and returns all frames written so far.
func (e *PackedEncoder) Bytes() []byte {
	e.seal()
	return e.buf.Bytes()
}

// Len returns the number of values written.
func (e *PackedEncoder) Len() int {
	return e.count
}

// Size seals buffered values and returns the encoded size in bytes.
func (e *PackedEncoder) Size() int {
	e.seal()
	return e.buf.Len()
}

// Reset seals buffered values so the next value starts a new frame.
func (e *PackedEncoder) Reset() {
	e.seal()
}

// Finish returns the buffer to the pool. The encoder must not be used afterwards.
func (e *PackedEncoder) Finish() {
	pool.PutFrameBuffer(e.buf)
	e.buf = nil
	e.pending = nil
}

func (e *PackedEncoder) seal() {
	if len(e.pending) == 0 {
		return
	}

	e.buf.Grow(frame.HeaderSize + 4*len(e.pending))
	out, err := e.marshaler.Append(e.buf.B, e.pending)
	if err != nil {
		// Options were validated and chunks are bounded, so this is a bug.
		panic(fmt.Sprintf("encoding: sealing %d values: %v", len(e.pending), err))
	}
	e.buf.B = out
	e.pending = e.pending[:0]
}

// PackedDecoder reads columns written by PackedEncoder. It is stateless and
// safe for concurrent use.
type PackedDecoder struct{}

var _ ColumnarDecoder[uint32] = PackedDecoder{}

// NewPackedDecoder creates a new PackedDecoder.
func NewPackedDecoder() PackedDecoder {
	return PackedDecoder{}
}

// All returns an iterator over the first count values stored in data.
// Iteration stops early at the first malformed frame.
func (d PackedDecoder) All(data []byte, count int) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		remaining := count
		for remaining > 0 && len(data) > 0 {
			_, rest, err := frame.Next(data)
			if err != nil {
				return
			}

			values, release, ok := decodeFrame(data)
			if !ok {
				return
			}
			for _, v := range values[:min(len(values), remaining)] {
				if !yield(v) {
					release()
					return
				}
				remaining--
			}
			release()
			data = rest
		}
	}
}

// At returns the value at index. Frames before the one holding index are
// skipped using their headers only.
func (d PackedDecoder) At(data []byte, index int, count int) (uint32, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	for len(data) > 0 {
		h, rest, err := frame.Next(data)
		if err != nil {
			return 0, false
		}
		if index >= int(h.Count) {
			index -= int(h.Count)
			data = rest

			continue
		}

		values, release, ok := decodeFrame(data)
		if !ok {
			return 0, false
		}
		defer release()

		return values[index], true
	}

	return 0, false
}

// DecodeAll decodes every frame of data, reporting the first error.
func (d PackedDecoder) DecodeAll(data []byte) ([]uint32, error) {
	var out []uint32
	for len(data) > 0 {
		_, rest, err := frame.Next(data)
		if err != nil {
			return nil, err
		}

		v, err := frame.Open(data)
		if err != nil {
			return nil, err
		}
		start := len(out)
		out = append(out, make([]uint32, v.Header.Count)...)
		_, err = v.DecodeTo(out[start:])
		v.Close()
		if err != nil {
			return nil, err
		}
		data = rest
	}

	return out, nil
}

// decodeFrame decodes the verified frame at the start of data into a pooled
// slice. The caller must call release once done with values.
func decodeFrame(data []byte) (values []uint32, release func(), ok bool) {
	v, err := frame.Open(data)
	if err != nil {
		return nil, nil, false
	}
	defer v.Close()

	values, release = pool.GetWordSlice(int(v.Header.Count))
	if _, err := v.DecodeTo(values); err != nil {
		release()
		return nil, nil, false
	}

	return values, release, true
}

package codec

import (
	"fmt"
	"math"

	"github.com/arloliu/intpack/errs"
)

// Codec compresses and decompresses arrays of uint32 values to and from packed
// 32-bit word streams.
//
// Implementations are stateless: they only hold configuration, never per-call
// state, so one instance may be shared by any number of goroutines working on
// disjoint buffers.
//
// Buffers are caller owned. A codec never grows or reallocates them; it writes
// within out[:len(out)] and reports how much it wrote, so len(out) is the
// output capacity.
type Codec interface {
	// Name returns the registry name of the codec, e.g. "simdfastpfor256".
	Name() string

	// MaxEncodedLen returns a conservative upper bound, in words, of the encoded
	// size of n values. An output buffer of this length never triggers
	// ErrInsufficientOutputCapacity.
	MaxEncodedLen(n int) int

	// EncodeArray encodes in into out and returns the number of words written.
	//
	// Capacity is verified before each block or unit is written. When out is too
	// small, EncodeArray returns an error wrapping ErrInsufficientOutputCapacity;
	// the content of out is then undefined but nothing past len(out) is touched.
	EncodeArray(in, out []uint32) (int, error)

	// DecodeArray decodes a stream produced by EncodeArray of the same codec and
	// returns the number of values written to out.
	//
	// Errors:
	//   - ErrInsufficientOutputCapacity if the stream holds more than len(out) values
	//   - ErrCorruptStream if the stream is truncated, inconsistent, or was written
	//     by another codec
	DecodeArray(in, out []uint32) (int, error)
}

type codecID uint8

// Stable per-format identifiers stored in the stream header. Never reuse a value.
const (
	idCopy codecID = iota + 1
	idVByte
	idVarint
	idVarIntG8IU
	idGroupVarint
	idBinaryPacking
	idSIMDBinaryPacking
	idFastPFOR128
	idFastPFOR256
	idSIMDFastPFOR128
	idSIMDFastPFOR256
	idSimplePFOR
	idNewPFOR
	idOptPFOR
)

// Stream header layout (2 words):
//
//	word 0: magic (bits 16-31) | codec id (bits 8-15) | format version (bits 0-7)
//	word 1: number of encoded values
const (
	headerWords   = 2
	streamMagic   = 0x1F9A
	streamVersion = 1
)

func headerWord(id codecID) uint32 {
	return streamMagic<<16 | uint32(id)<<8 | streamVersion
}

func writeHeader(out []uint32, id codecID, n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: %d values exceed the 32-bit stream length field", errs.ErrInvalidArgument, n)
	}
	if len(out) < headerWords {
		return fmt.Errorf("%w: need %d header words, have %d", errs.ErrInsufficientOutputCapacity, headerWords, len(out))
	}
	out[0] = headerWord(id)
	out[1] = uint32(n)

	return nil
}

// readHeader validates the stream header and returns the encoded value count.
func readHeader(in []uint32, id codecID, capacity int) (int, error) {
	if len(in) < headerWords {
		return 0, fmt.Errorf("%w: stream of %d words is shorter than the header", errs.ErrCorruptStream, len(in))
	}

	word := in[0]
	if word>>16 != streamMagic {
		return 0, fmt.Errorf("%w: bad stream magic %#04x", errs.ErrCorruptStream, word>>16)
	}
	if got := codecID(word >> 8); got != id {
		return 0, fmt.Errorf("%w: stream written by codec id %d, decoding as %d", errs.ErrCorruptStream, got, id)
	}
	if v := word & 0xFF; v != streamVersion {
		return 0, fmt.Errorf("%w: unsupported format version %d", errs.ErrCorruptStream, v)
	}

	n := int(in[1])
	if n > capacity {
		return 0, fmt.Errorf("%w: stream holds %d values, output capacity is %d",
			errs.ErrInsufficientOutputCapacity, n, capacity)
	}

	return n, nil
}

// EncodedCount returns the number of values recorded in the header of a
// stream written by any registered codec, without decoding it.
//
// Returns an error wrapping errs.ErrCorruptStream if in is shorter than the
// header or does not carry the stream magic.
func EncodedCount(in []uint32) (int, error) {
	if len(in) < headerWords {
		return 0, fmt.Errorf("%w: stream of %d words is shorter than the header", errs.ErrCorruptStream, len(in))
	}
	if magic := in[0] >> 16; magic != streamMagic {
		return 0, fmt.Errorf("%w: bad stream magic %#04x", errs.ErrCorruptStream, magic)
	}

	return int(in[1]), nil
}

// body encodes a value sequence without the stream header. Every registered
// codec is a body wrapped by stream.
type body interface {
	// maxWords returns the worst-case encoded size of n values.
	maxWords(n int) int
	// encode writes in to out and returns the number of words written.
	encode(in, out []uint32) (int, error)
	// decode fills all of out from in and returns the number of words consumed.
	decode(in, out []uint32) (int, error)
}

// blockBody is a body that only accepts whole blocks.
type blockBody interface {
	body
	blockSize() int
}

// stream adapts a body to the Codec interface by adding the stream header.
type stream struct {
	name string
	id   codecID
	body body
}

var _ Codec = (*stream)(nil)

func newStream(name string, id codecID, b body) *stream {
	return &stream{name: name, id: id, body: b}
}

func (s *stream) Name() string {
	return s.name
}

func (s *stream) MaxEncodedLen(n int) int {
	return headerWords + s.body.maxWords(n)
}

func (s *stream) EncodeArray(in, out []uint32) (int, error) {
	if err := writeHeader(out, s.id, len(in)); err != nil {
		return 0, fmt.Errorf("%s: %w", s.name, err)
	}

	written, err := s.body.encode(in, out[headerWords:])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.name, err)
	}

	return headerWords + written, nil
}

func (s *stream) DecodeArray(in, out []uint32) (int, error) {
	n, err := readHeader(in, s.id, len(out))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", s.name, err)
	}

	if _, err := s.body.decode(in[headerWords:], out[:n]); err != nil {
		return 0, fmt.Errorf("%s: %w", s.name, err)
	}

	return n, nil
}

func errCapacity(need, have int) error {
	return fmt.Errorf("%w: need %d words, %d left", errs.ErrInsufficientOutputCapacity, need, have)
}

func errTruncated(what string, need, have int) error {
	return fmt.Errorf("%w: truncated %s (need %d words, have %d)", errs.ErrCorruptStream, what, need, have)
}

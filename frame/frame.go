package frame

import (
	"fmt"
	"math"
	"sync"

	"github.com/arloliu/intpack/codec"
	"github.com/arloliu/intpack/compress"
	"github.com/arloliu/intpack/endian"
	"github.com/arloliu/intpack/errs"
	"github.com/arloliu/intpack/internal/collision"
	"github.com/arloliu/intpack/internal/hash"
	"github.com/arloliu/intpack/internal/pool"
	"github.com/arloliu/intpack/transform"
)

// Marshaler writes frames with a fixed configuration. It is safe for
// concurrent use.
type Marshaler struct {
	cfg *Config
}

// NewMarshaler validates opts and returns a Marshaler.
func NewMarshaler(opts ...Option) (*Marshaler, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Marshaler{cfg: cfg}, nil
}

// Codec returns the codec the Marshaler encodes with.
func (m *Marshaler) Codec() codec.Codec {
	return m.cfg.codec
}

// Marshal encodes values into a new frame.
func (m *Marshaler) Marshal(values []uint32) ([]byte, error) {
	return m.Append(nil, values)
}

// Append encodes values into a frame appended to dst. values is never
// modified; the transform works on a pooled copy.
func (m *Marshaler) Append(dst []byte, values []uint32) ([]byte, error) {
	if uint64(len(values)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d values exceed the frame count field", errs.ErrInvalidArgument, len(values))
	}

	src := values
	if stride := m.cfg.transform.Stride(); stride != 0 {
		scratch, release := pool.GetWordSlice(len(values))
		defer release()
		copy(scratch, values)
		if err := transform.Delta(scratch, stride); err != nil {
			return nil, err
		}
		src = scratch
	}

	c := m.cfg.codec
	words, release := pool.GetWordSlice(c.MaxEncodedLen(len(src)))
	defer release()
	n, err := c.EncodeArray(src, words)
	if err != nil {
		return nil, err
	}

	flag := NewFlag()
	flag.TransformType = uint8(m.cfg.transform)
	flag.CompressionType = uint8(m.cfg.compression)
	if m.cfg.bigEndian {
		flag.WithBigEndian()
	}

	raw := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(raw)
	raw.Grow(4 * n)
	raw.B = endian.AppendWords(flag.GetEndianEngine(), raw.B, words[:n])

	compressor, err := compress.GetCodec(m.cfg.compression)
	if err != nil {
		return nil, err
	}
	payload, err := compressor.Compress(raw.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress frame payload: %w", err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: frame payload of %d bytes", errs.ErrInvalidArgument, len(payload))
	}

	h := Header{
		Flag:        flag,
		CodecID:     hash.ID(c.Name()),
		Count:       uint32(len(values)),
		WordCount:   uint32(n),
		PayloadSize: uint32(len(payload)),
		Checksum:    hash.Checksum(payload),
	}

	if cap(dst)-len(dst) < h.FrameSize() {
		grown := make([]byte, len(dst), len(dst)+h.FrameSize())
		copy(grown, dst)
		dst = grown
	}
	dst = h.AppendTo(dst)

	return append(dst, payload...), nil
}

// Marshal encodes values into a new frame configured by opts.
func Marshal(values []uint32, opts ...Option) ([]byte, error) {
	m, err := NewMarshaler(opts...)
	if err != nil {
		return nil, err
	}

	return m.Marshal(values)
}

// Unmarshal decodes the frame at the start of data into a new slice.
func Unmarshal(data []byte) ([]uint32, error) {
	v, err := Open(data)
	if err != nil {
		return nil, err
	}
	defer v.Close()

	values := make([]uint32, v.Header.Count)
	if _, err := v.DecodeTo(values); err != nil {
		return nil, err
	}

	return values, nil
}

// DecodeTo decodes the frame at the start of data into dst and returns the
// number of values written and the frame size in bytes.
//
// Returns an error wrapping errs.ErrInsufficientOutputCapacity if the frame
// holds more than len(dst) values.
func DecodeTo(data []byte, dst []uint32) (values, size int, err error) {
	h, err := ParseHeader(data)
	if err != nil {
		return 0, 0, err
	}
	if int(h.Count) > len(dst) {
		return 0, 0, fmt.Errorf("%w: frame holds %d values, output capacity is %d",
			errs.ErrInsufficientOutputCapacity, h.Count, len(dst))
	}

	v, err := Open(data)
	if err != nil {
		return 0, 0, err
	}
	defer v.Close()

	n, err := v.DecodeTo(dst)
	if err != nil {
		return 0, 0, err
	}

	return n, h.FrameSize(), nil
}

// Next parses the header of the frame at the start of data and returns it
// with the remaining bytes after the frame, without decoding the payload.
func Next(data []byte) (Header, []byte, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Header{}, nil, err
	}
	if len(data) < h.FrameSize() {
		return Header{}, nil, fmt.Errorf("%w: frame of %d bytes truncated to %d",
			errs.ErrCorruptStream, h.FrameSize(), len(data))
	}

	return h, data[h.FrameSize():], nil
}

// View is a verified frame whose packed words are ready to decode. Open
// checks the checksum, the payload size and the value count of the codec
// stream, so Header.Count can be trusted for sizing output buffers.
//
// Close returns the words to the pool; the View must not be used afterwards.
type View struct {
	Header Header

	codec   codec.Codec
	words   []uint32
	release func()
}

// Open verifies the frame at the start of data and unpacks its words.
//
// Returns an error wrapping errs.ErrCorruptStream for truncated or
// inconsistent frames, or errs.ErrUnknownCodec for an unregistered codec id.
func Open(data []byte) (*View, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if len(data)-HeaderSize < int(h.PayloadSize) {
		return nil, fmt.Errorf("%w: frame payload of %d bytes truncated to %d",
			errs.ErrCorruptStream, h.PayloadSize, len(data)-HeaderSize)
	}
	if h.WordCount < 2 {
		return nil, fmt.Errorf("%w: frame holds %d words, a codec stream needs at least 2",
			errs.ErrCorruptStream, h.WordCount)
	}

	payload := data[HeaderSize:h.FrameSize()]
	if sum := hash.Checksum(payload); sum != h.Checksum {
		return nil, fmt.Errorf("%w: frame checksum %#016x, computed %#016x", errs.ErrCorruptStream, h.Checksum, sum)
	}

	c, err := codecByID(h.CodecID)
	if err != nil {
		return nil, err
	}

	decompressor, err := compress.GetCodec(h.Flag.Compression())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptStream, err)
	}
	raw, err := decompressor.Decompress(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptStream, err)
	}
	if len(raw) != 4*int(h.WordCount) {
		return nil, fmt.Errorf("%w: payload holds %d bytes, header says %d words",
			errs.ErrCorruptStream, len(raw), h.WordCount)
	}

	words, release := pool.GetWordSlice(int(h.WordCount))
	endian.ReadWords(h.Flag.GetEndianEngine(), words, raw)

	n, err := codec.EncodedCount(words)
	if err != nil {
		release()
		return nil, err
	}
	if n != int(h.Count) {
		release()
		return nil, fmt.Errorf("%w: codec stream holds %d values, frame header says %d",
			errs.ErrCorruptStream, n, h.Count)
	}

	return &View{Header: h, codec: c, words: words, release: release}, nil
}

// DecodeTo decodes the frame values into dst, which must hold at least
// Header.Count values, and applies the inverse transform.
func (v *View) DecodeTo(dst []uint32) (int, error) {
	if int(v.Header.Count) > len(dst) {
		return 0, fmt.Errorf("%w: frame holds %d values, output capacity is %d",
			errs.ErrInsufficientOutputCapacity, v.Header.Count, len(dst))
	}
	dst = dst[:v.Header.Count]

	n, err := v.codec.DecodeArray(v.words, dst)
	if err != nil {
		return 0, err
	}
	if n != len(dst) {
		return 0, fmt.Errorf("%w: codec stream holds %d values, frame header says %d",
			errs.ErrCorruptStream, n, len(dst))
	}

	if stride := v.Header.Flag.Transform().Stride(); stride != 0 {
		if err := transform.PrefixSum(dst, stride); err != nil {
			return 0, err
		}
	}

	return n, nil
}

// Close returns the unpacked words to the pool.
func (v *View) Close() {
	if v.release != nil {
		v.release()
		v.release = nil
		v.words = nil
	}
}

var (
	codecIDsOnce sync.Once
	codecIDs     *collision.Tracker
)

// codecByID resolves a codec name hash back to the registered codec.
func codecByID(id uint64) (codec.Codec, error) {
	codecIDsOnce.Do(func() {
		codecIDs = collision.NewTracker()
		for _, name := range codec.Names() {
			if err := codecIDs.Track(name, hash.ID(name)); err != nil {
				panic(fmt.Sprintf("frame: codec ids: %v", err))
			}
		}
	})

	name, ok := codecIDs.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: frame codec id %#016x matches none of the %d registered codecs",
			errs.ErrUnknownCodec, id, codecIDs.Count())
	}

	return codec.Get(name)
}

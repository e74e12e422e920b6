package encoding

import "iter"

// ColumnarEncoder accumulates a column of values into an encoded byte buffer.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded byte slice.
	// The returned slice is valid until the next call to Write, WriteSlice, Reset or Finish.
	// The caller should not modify the returned slice.
	Bytes() []byte

	// Len returns the number of values written since the encoder was created.
	Len() int

	// Size returns the size in bytes of the encoded data.
	Size() int

	// Reset ends the current sequence of values. Data encoded so far stays in
	// the buffer and Len, Size and Bytes keep reporting it; the next Write
	// starts a new sequence.
	Reset()

	// Finish finalizes the encoding process and returns buffer resources to the pool.
	//
	// After calling Finish(), the encoder is no longer usable. Any subsequent calls to
	// Write(), WriteSlice(), Bytes(), Len(), or Size() will panic due to nil buffer.
	//
	// Use defer to ensure it's called even in error paths:
	//
	//	encoder, err := NewPackedEncoder(DefaultChunkSize)
	//	if err != nil {
	//		return err
	//	}
	//	defer encoder.Finish()
	//
	//	encoder.WriteSlice(values)
	//	data := slices.Clone(encoder.Bytes())  // Copy before Finish
	Finish()

	// Write a single value.
	//
	// For bulk writes, use WriteSlice for better performance.
	Write(data T)

	// WriteSlice encodes a slice of values.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values back from data produced by a ColumnarEncoder.
type ColumnarDecoder[T comparable] interface {
	// All returns an iterator over the first count decoded values of data.
	//
	// If the data is malformed or does not contain enough values, the iterator
	// yields fewer values. The caller should handle this case appropriately.
	All(data []byte, count int) iter.Seq[T]

	// At retrieves the value at the zero-based index from the encoded data.
	//
	// The count parameter specifies the total number of values encoded in the
	// data. If the index is out of bounds (index < 0 or index >= count) or the
	// data is malformed, the second return value is false.
	At(data []byte, index int, count int) (T, bool)
}

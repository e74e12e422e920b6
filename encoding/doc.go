// Package encoding provides columnar encoder and decoder interfaces and their
// packed integer implementation.
//
// ColumnarEncoder and ColumnarDecoder describe append-only columns that are
// written once and read back by index or by iteration. PackedEncoder
// implements them for uint32 columns: values are buffered in chunks and each
// chunk is written as a frame (see package frame) using any registered codec.
//
//	enc, err := encoding.NewPackedEncoder(encoding.DefaultChunkSize,
//		frame.WithCodec("simdfastpfor256"),
//		frame.WithTransform(format.TransformDelta1),
//	)
//	if err != nil {
//		return err
//	}
//	defer enc.Finish()
//
//	enc.WriteSlice(ids)
//	column := slices.Clone(enc.Bytes())
//
//	dec := encoding.NewPackedDecoder()
//	for id := range dec.All(column, len(ids)) {
//		...
//	}
//
// Frames are independent, so At decodes only the frame holding the index.
package encoding

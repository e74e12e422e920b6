// Package codec implements the integer compression codecs.
//
// Every codec turns a []uint32 into a stream of 32-bit words and back. The
// stream starts with a two-word header naming the codec and the value count,
// so decoding a stream with the wrong codec fails with errs.ErrCorruptStream
// instead of producing garbage.
//
// Codec families:
//   - Fixed width: "binarypacking", "simdbinarypacking"
//   - Patched exceptions (PFOR): "fastpfor", "fastpfor256", "simdfastpfor128",
//     "simdfastpfor256", "simplepfor", "newpfor", "optpfor"
//   - Byte oriented: "vbyte", "varint", "varintg8iu", "groupvarint"
//   - Baseline: "copy"
//
// Block codecs encode as many whole blocks as the input holds and store the
// remaining values with variable-byte coding, so every codec accepts any
// length.
//
// Usage:
//
//	c, err := codec.Get("simdfastpfor256")
//	if err != nil {
//		return err
//	}
//	out := make([]uint32, c.MaxEncodedLen(len(values)))
//	n, err := c.EncodeArray(values, out)
//	if err != nil {
//		return err
//	}
//	packed := out[:n]
//
// Sorted inputs compress best after transform.Delta1 or transform.Delta4;
// apply the matching prefix sum after decoding.
package codec

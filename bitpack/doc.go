// Package bitpack provides the bit I/O kernels used by intpack codecs.
//
// Values are stored with exactly width bits each, concatenated LSB-first into a
// stream of 32-bit words with no padding between values. A value may straddle a
// word boundary. Width 0 stores nothing and width 32 is a plain copy.
//
// # Kernels
//
// Three families of kernels share the same bit layout:
//
//   - Pack / Unpack handle any value count and are used for partial blocks.
//   - PackBlock32 / UnpackBlock32 handle exactly 32 values. A block of 32 values
//     at width w always occupies exactly w words, so the kernels are selected
//     from a per-width dispatch table built once at init and never branch on the
//     width inside the hot loop.
//   - PackInterleaved128 / UnpackInterleaved128 handle 128 values split into four
//     lanes (value i goes to lane i%4). Word j of lane k is stored at index
//     4*j+k, which lets a 128-bit vector unit process all four lanes with one
//     load per step.
//
// # Preconditions
//
// The kernels do not return errors. Passing a width outside [0,32] or a block of
// the wrong length is a programming error and panics, as does a destination
// that is too small. Codecs validate stream contents before calling into this
// package.
package bitpack

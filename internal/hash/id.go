// Package hash wraps xxHash64 for codec identifiers and frame checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a codec name. Frames store it instead of the
// name itself.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of data.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

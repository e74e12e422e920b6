// Package errs defines the sentinel errors returned by intpack packages.
//
// Errors are wrapped with call-site context using fmt.Errorf and the %w verb,
// so callers should match them with errors.Is:
//
//	n, err := c.EncodeArray(in, out)
//	if errors.Is(err, errs.ErrInsufficientOutputCapacity) {
//	    out = make([]uint32, c.MaxEncodedLen(len(in)))
//	    n, err = c.EncodeArray(in, out)
//	}
package errs

import "errors"

var (
	// ErrInsufficientOutputCapacity is returned when the caller-provided output
	// buffer cannot hold the next block or unit of output. It is recoverable by
	// retrying with a larger buffer.
	ErrInsufficientOutputCapacity = errors.New("insufficient output capacity")

	// ErrUnknownCodec is returned when a codec name or identifier is not registered.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrCorruptStream is returned when a packed stream is truncated, was produced
	// by another codec, or has header fields that imply an inconsistent layout.
	ErrCorruptStream = errors.New("corrupt stream")

	// ErrInvalidArgument is returned for arguments outside the accepted domain,
	// e.g. an unsupported transform stride.
	ErrInvalidArgument = errors.New("invalid argument")
)

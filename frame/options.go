package frame

import (
	"fmt"

	"github.com/arloliu/intpack/codec"
	"github.com/arloliu/intpack/compress"
	"github.com/arloliu/intpack/endian"
	"github.com/arloliu/intpack/errs"
	"github.com/arloliu/intpack/format"
	"github.com/arloliu/intpack/internal/options"
)

// Config holds the settings of a Marshaler.
type Config struct {
	codec       codec.Codec
	transform   format.TransformType
	compression format.CompressionType
	bigEndian   bool
}

// Option configures how frames are written.
type Option = options.Option[*Config]

// WithCodec selects the codec by registry name.
func WithCodec(name string) Option {
	return options.New(func(c *Config) error {
		cd, err := codec.Get(name)
		if err != nil {
			return err
		}
		c.codec = cd

		return nil
	})
}

// WithTransform applies a delta transform to the values before encoding.
// Unmarshal applies the matching prefix sum.
func WithTransform(t format.TransformType) Option {
	return options.New(func(c *Config) error {
		if !validTransform(t) {
			return fmt.Errorf("%w: unknown transform type %s (%#x)", errs.ErrInvalidArgument, t, uint8(t))
		}
		c.transform = t

		return nil
	})
}

// WithCompression passes the serialized word stream through a byte compressor.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// WithBigEndian writes the header fields and the words big-endian.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = true
	})
}

// WithNativeEndian writes the words in the host byte order, which lets
// readers on the same architecture skip byte swapping.
func WithNativeEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = endian.IsNativeBigEndian()
	})
}

func newConfig(opts []Option) (*Config, error) {
	defaultCodec, err := codec.Get(DefaultCodec)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		codec:       defaultCodec,
		transform:   format.TransformNone,
		compression: format.CompressionNone,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

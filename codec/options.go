package codec

import (
	"fmt"

	"github.com/arloliu/intpack/errs"
	"github.com/arloliu/intpack/internal/options"
)

const (
	// DefaultPageSize is the number of values whose exceptions FastPFOR batches together.
	DefaultPageSize = 65536
	// DefaultExceptionRatio is the share of a block NewPFOR allows as exceptions.
	DefaultExceptionRatio = 0.1

	pageSizeUnit = 256
)

// config holds the tunables of the configurable codecs.
type config struct {
	pageSize       int
	exceptionRatio float64
}

func defaultConfig() *config {
	return &config{
		pageSize:       DefaultPageSize,
		exceptionRatio: DefaultExceptionRatio,
	}
}

// Option configures a codec constructed by NewFastPFOR or NewNewPFOR.
type Option = options.Option[*config]

// WithPageSize sets the FastPFOR page size in values. It must be a positive
// multiple of 256. The page size only affects the encoder; streams record the
// size of each page.
func WithPageSize(size int) Option {
	return options.New(func(c *config) error {
		if size <= 0 || size%pageSizeUnit != 0 {
			return fmt.Errorf("%w: page size %d is not a positive multiple of %d",
				errs.ErrInvalidArgument, size, pageSizeUnit)
		}
		c.pageSize = size

		return nil
	})
}

// WithExceptionRatio sets the largest share of a NewPFOR block, in [0, 1], that
// may be stored as exceptions.
func WithExceptionRatio(ratio float64) Option {
	return options.New(func(c *config) error {
		if !(ratio >= 0 && ratio <= 1) {
			return fmt.Errorf("%w: exception ratio %v outside [0, 1]", errs.ErrInvalidArgument, ratio)
		}
		c.exceptionRatio = ratio

		return nil
	})
}

func newConfig(opts []Option) (*config, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

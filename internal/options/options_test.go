package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errOddSize = errors.New("size must be even")

type packConfig struct {
	size    int
	name    string
	applied []string
}

func withSize(n int) Option[*packConfig] {
	return New(func(c *packConfig) error {
		if n%2 != 0 {
			return errOddSize
		}
		c.size = n
		c.applied = append(c.applied, "size")

		return nil
	})
}

func withName(name string) Option[*packConfig] {
	return NoError(func(c *packConfig) {
		c.name = name
		c.applied = append(c.applied, "name")
	})
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option[*packConfig]
		want    packConfig
		wantErr error
	}{
		{
			name: "no options",
			want: packConfig{},
		},
		{
			name: "in order",
			opts: []Option[*packConfig]{withName("a"), withSize(4), withName("b")},
			want: packConfig{size: 4, name: "b", applied: []string{"name", "size", "name"}},
		},
		{
			name: "nil skipped",
			opts: []Option[*packConfig]{nil, withSize(2), nil},
			want: packConfig{size: 2, applied: []string{"size"}},
		},
		{
			name:    "stops at first error",
			opts:    []Option[*packConfig]{withSize(8), withSize(3), withName("late")},
			want:    packConfig{size: 8, applied: []string{"size"}},
			wantErr: errOddSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg packConfig
			err := Apply(&cfg, tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, cfg)
		})
	}
}

func TestNew_PropagatesError(t *testing.T) {
	var cfg packConfig
	require.ErrorIs(t, withSize(1).apply(&cfg), errOddSize)
	require.Zero(t, cfg.size)
}

func TestNoError_NonPointerTarget(t *testing.T) {
	var n int
	opt := NoError(func(p *int) { *p = 42 })
	require.NoError(t, Apply(&n, Option[*int](opt)))
	require.Equal(t, 42, n)
}

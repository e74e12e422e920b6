package collision

import (
	"testing"

	"github.com/arloliu/intpack/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Track(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("fastpfor", 0x1234567890abcdef))
	require.NoError(t, tracker.Track("vbyte", 0xfedcba0987654321))
	require.Equal(t, 2, tracker.Count())

	name, ok := tracker.Lookup(0xfedcba0987654321)
	require.True(t, ok)
	require.Equal(t, "vbyte", name)

	_, ok = tracker.Lookup(42)
	require.False(t, ok)
}

func TestTracker_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		track   string
		id      uint64
		message string
	}{
		{"empty name", "", 1, "empty name"},
		{"duplicate name", "fastpfor", 0x1234567890abcdef, "tracked twice"},
		{"collision", "optpfor", 0x1234567890abcdef, `"fastpfor" and "optpfor"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker()
			require.NoError(t, tracker.Track("fastpfor", 0x1234567890abcdef))

			err := tracker.Track(tt.track, tt.id)
			require.ErrorIs(t, err, errs.ErrInvalidArgument)
			require.Contains(t, err.Error(), tt.message)
			require.Equal(t, 1, tracker.Count())
		})
	}
}

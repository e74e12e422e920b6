package encoding

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkColumnar writes values through enc in uneven batches and reads them
// back with dec.
func checkColumnar[T comparable](t *testing.T, enc ColumnarEncoder[T], dec ColumnarDecoder[T], values []T) {
	t.Helper()

	for i := 0; i < len(values); {
		switch {
		case i%3 == 0:
			enc.Write(values[i])
			i++
		default:
			end := min(i+i%17+1, len(values))
			enc.WriteSlice(values[i:end])
			i = end
		}
	}

	require.Equal(t, len(values), enc.Len())
	data := slices.Clone(enc.Bytes())
	require.Equal(t, len(data), enc.Size())

	got := slices.Collect(dec.All(data, len(values)))
	require.Equal(t, values, got)

	for _, i := range []int{0, len(values) / 2, len(values) - 1} {
		if i < 0 {
			continue
		}
		v, ok := dec.At(data, i, len(values))
		require.True(t, ok, "index %d", i)
		require.Equal(t, values[i], v, "index %d", i)
	}

	_, ok := dec.At(data, len(values), len(values))
	require.False(t, ok)
	_, ok = dec.At(data, -1, len(values))
	require.False(t, ok)
}

func TestColumnar_Packed(t *testing.T) {
	values := make([]uint32, 1000)
	for i := range values {
		values[i] = uint32(i * i)
	}

	for _, chunk := range []int{1, 7, 128, 999, 1000, DefaultChunkSize} {
		enc, err := NewPackedEncoder(chunk)
		require.NoError(t, err)

		checkColumnar[uint32](t, enc, NewPackedDecoder(), values)
		enc.Finish()
	}
}

func TestColumnar_AllStopsEarly(t *testing.T) {
	enc, err := NewPackedEncoder(4)
	require.NoError(t, err)
	defer enc.Finish()

	enc.WriteSlice([]uint32{1, 2, 3, 4, 5, 6, 7, 8, 9})

	var got []uint32
	for v := range NewPackedDecoder().All(enc.Bytes(), 9) {
		got = append(got, v)
		if len(got) == 5 {
			break
		}
	}
	require.Equal(t, []uint32{1, 2, 3, 4, 5}, got)

	// A smaller count limits the values yielded.
	got = slices.Collect(NewPackedDecoder().All(enc.Bytes(), 6))
	require.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, got)
}

package codec

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/arloliu/intpack/errs"
	"github.com/stretchr/testify/require"
)

func TestPlanCostModel(t *testing.T) {
	t.Run("all zeros", func(t *testing.T) {
		plan := planCostModel(make([]uint32, 128))
		require.Equal(t, blockPlan{}, plan)
	})

	t.Run("single outlier", func(t *testing.T) {
		block := make([]uint32, 128)
		block[40] = math.MaxUint32
		plan := planCostModel(block)
		require.Equal(t, blockPlan{Width: 0, MaxWidth: 32, Exceptions: 1}, plan)
	})

	t.Run("single bit highs", func(t *testing.T) {
		block := make([]uint32, 128)
		for i := range block {
			block[i] = 100
		}
		for _, i := range []int{3, 50, 90, 127} {
			block[i] = 200
		}
		plan := planCostModel(block)
		require.Equal(t, blockPlan{Width: 7, MaxWidth: 8, Exceptions: 4}, plan)
		require.Equal(t, 1, plan.highWidth())
	})

	t.Run("uniform width", func(t *testing.T) {
		block := make([]uint32, 128)
		for i := range block {
			block[i] = uint32(i%2 + 2)
		}
		require.Equal(t, blockPlan{Width: 2, MaxWidth: 2}, planCostModel(block))
	})

	t.Run("exception count fits a byte", func(t *testing.T) {
		block := make([]uint32, 256)
		for i := range block {
			block[i] = 1 << 30
		}
		block[0] = 0
		plan := planCostModel(block)
		require.LessOrEqual(t, plan.Exceptions, maxBlockExceptions)
		require.Equal(t, 31, plan.Width)
	})
}

func TestPlanExceptionBudget(t *testing.T) {
	block := make([]uint32, 128)
	for i := range block {
		block[i] = 1
	}
	for i := range 8 {
		block[i*16] = 255
	}

	require.Equal(t, blockPlan{Width: 1, MaxWidth: 8, Exceptions: 8}, planExceptionBudget(block, 12))
	require.Equal(t, blockPlan{Width: 8, MaxWidth: 8}, planExceptionBudget(block, 7))
	require.Equal(t, blockPlan{}, planExceptionBudget(make([]uint32, 128), 0))
}

func TestPlanSmallestBlock(t *testing.T) {
	block := make([]uint32, 128)
	block[127] = 1 << 20

	plan := planSmallestBlock(block)
	require.Equal(t, blockPlan{Width: 0, MaxWidth: 21, Exceptions: 1}, plan)

	require.Equal(t, blockPlan{}, planSmallestBlock(make([]uint32, 128)))
}

func TestFastPFOR_Pages(t *testing.T) {
	small, err := NewFastPFOR("fastpfor", 128, false, WithPageSize(256))
	require.NoError(t, err)
	regular, err := Get("fastpfor")
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(11, 12))
	values := testData(rng, 256*5+100)["outliers"]

	paged := encode(t, small, values)
	single := encode(t, regular, values)
	require.NotEqual(t, single, paged)

	// Pages record their own size, so any page size decodes.
	require.Equal(t, values, decode(t, regular, paged, len(values)))
	require.Equal(t, values, decode(t, small, single, len(values)))
}

func TestFastPFOR_Variants(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	values := testData(rng, 70000)["outliers"]

	for _, name := range []string{"fastpfor", "fastpfor256", "simdfastpfor128", "simdfastpfor256"} {
		c, err := Get(name)
		require.NoError(t, err)

		encoded := encode(t, c, values)
		require.Less(t, len(encoded), len(values)/2, "%s should compress small values with outliers", name)
		require.Equal(t, values, decode(t, c, encoded, len(values)), name)
	}
}

func TestFastPFOR_CorruptPage(t *testing.T) {
	c, err := Get("fastpfor")
	require.NoError(t, err)

	block := make([]uint32, 128)
	for i := range block {
		block[i] = uint32(i % 8)
	}
	block[9] = 1 << 25
	encoded := encode(t, c, block)

	// encoded[2] is the page value count.
	bad := append([]uint32(nil), encoded...)
	bad[2] = 100
	_, err = c.DecodeArray(bad, make([]uint32, 128))
	require.ErrorIs(t, err, errs.ErrCorruptStream)

	_, err = c.DecodeArray(encoded[:3], make([]uint32, 128))
	require.ErrorIs(t, err, errs.ErrCorruptStream)

	// Exception bitmap bit 0 never names a list.
	bad = append([]uint32(nil), encoded...)
	payload := int(bad[3])
	metaWords := (int(bad[4+payload]) + 3) / 4
	bad[5+payload+metaWords] |= 1
	_, err = c.DecodeArray(bad, make([]uint32, 128))
	require.ErrorIs(t, err, errs.ErrCorruptStream)
}

func TestNewPFOR_ExceptionRatio(t *testing.T) {
	strict, err := NewNewPFOR(WithExceptionRatio(0))
	require.NoError(t, err)
	loose, err := NewNewPFOR(WithExceptionRatio(0.5))
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(15, 16))
	values := testData(rng, 1024)["outliers"]

	for _, c := range []Codec{strict, loose} {
		require.Equal(t, values, decode(t, c, encode(t, c, values), len(values)))
	}
	require.Less(t, len(encode(t, loose, values)), len(encode(t, strict, values)))
}

func TestOptions_Validation(t *testing.T) {
	for _, size := range []int{-256, 0, 100, 257} {
		_, err := NewFastPFOR("fastpfor", 128, false, WithPageSize(size))
		require.ErrorIs(t, err, errs.ErrInvalidArgument, "page size %d", size)
	}

	for _, ratio := range []float64{-0.1, 1.5, math.NaN()} {
		_, err := NewNewPFOR(WithExceptionRatio(ratio))
		require.ErrorIs(t, err, errs.ErrInvalidArgument, "ratio %v", ratio)
	}

	_, err := NewFastPFOR("fastpfor64", 64, false)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestPFOR_ExceptionPositions(t *testing.T) {
	block := make([]uint32, 128)
	for i := range block {
		block[i] = 3
	}
	// First and last positions plus a run of neighbours.
	for _, i := range []int{0, 1, 2, 64, 127} {
		block[i] = uint32(1000 * (i + 1))
	}

	for _, name := range []string{"fastpfor", "simdfastpfor128", "simplepfor", "newpfor", "optpfor"} {
		c, err := Get(name)
		require.NoError(t, err)
		require.Equal(t, block, decode(t, c, encode(t, c, block), len(block)), name)
	}
}

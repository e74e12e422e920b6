package bitpack

const (
	// BlockSize128 is the value count handled by the interleaved kernels.
	BlockSize128 = 128
	// Lanes is the number of interleaved lanes in a 128-value block.
	Lanes = 4

	laneLength = BlockSize128 / Lanes
)

// PackInterleaved128 packs exactly 128 values at the given width into the
// 4-lane interleaved layout and returns the words written (4*width).
//
// Value i belongs to lane i%4. Each lane is packed independently, and word j of
// lane k is written to dst[4*j+k].
func PackInterleaved128(dst, src []uint32, width int) int {
	checkWidth(width)
	_ = src[BlockSize128-1]
	if width == 0 {
		return 0
	}
	_ = dst[Lanes*width-1]
	for lane := range Lanes {
		packLane(dst, src, lane, width)
	}

	return Lanes * width
}

// UnpackInterleaved128 is the inverse of PackInterleaved128. It fills dst with
// 128 values and returns the words consumed (4*width).
func UnpackInterleaved128(dst, src []uint32, width int) int {
	checkWidth(width)
	_ = dst[BlockSize128-1]
	if width == 0 {
		clear(dst[:BlockSize128])
		return 0
	}
	_ = src[Lanes*width-1]
	for lane := range Lanes {
		unpackLane(dst, src, lane, width)
	}

	return Lanes * width
}

func packLane(dst, src []uint32, lane, width int) {
	var mask uint64 = 1<<width - 1

	var acc uint64
	bitsInAcc := 0
	out := lane
	for i := range laneLength {
		acc |= (uint64(src[lane+i*Lanes]) & mask) << bitsInAcc
		bitsInAcc += width
		if bitsInAcc >= 32 {
			dst[out] = uint32(acc)
			out += Lanes
			acc >>= 32
			bitsInAcc -= 32
		}
	}
}

func unpackLane(dst, src []uint32, lane, width int) {
	var mask uint64 = 1<<width - 1

	var acc uint64
	bitsInAcc := 0
	in := lane
	for i := range laneLength {
		if bitsInAcc < width {
			acc |= uint64(src[in]) << bitsInAcc
			in += Lanes
			bitsInAcc += 32
		}
		dst[lane+i*Lanes] = uint32(acc & mask)
		acc >>= width
		bitsInAcc -= width
	}
}

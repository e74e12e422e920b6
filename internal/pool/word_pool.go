package pool

import "sync"

// wordSliceMaxCap bounds the capacity of pooled word slices. Larger slices are
// left to the garbage collector.
const wordSliceMaxCap = 1 << 22

var wordSlicePool = sync.Pool{
	New: func() any { return &[]uint32{} },
}

// GetWordSlice retrieves a uint32 slice of exactly size elements from the pool.
//
// The contents of the returned slice are unspecified. If the pooled slice has
// insufficient capacity, a new slice is allocated. The caller must call the
// returned cleanup function, typically with defer, to recycle the slice:
//
//	scratch, release := pool.GetWordSlice(n)
//	defer release()
func GetWordSlice(size int) ([]uint32, func()) {
	ptr, _ := wordSlicePool.Get().(*[]uint32)
	slice := *ptr

	if cap(slice) < size {
		slice = make([]uint32, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() {
		if cap(*ptr) > wordSliceMaxCap {
			return
		}
		wordSlicePool.Put(ptr)
	}
}

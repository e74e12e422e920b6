package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_AppendAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.B = append(bb.B, "hello"...)
	require.Equal(t, []byte("hello"), bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.AppendByte(1)
	bb.AppendByte(2)

	bb.Grow(10)
	require.Equal(t, 2, bb.Len())
	require.Equal(t, []byte{1, 2}, bb.Bytes(), "existing bytes must survive growth")
	require.GreaterOrEqual(t, cap(bb.B)-bb.Len(), 10)
}

func TestByteBuffer_GrowNoopWhenRoomLeft(t *testing.T) {
	bb := NewByteBuffer(64)
	before := cap(bb.B)
	bb.Grow(32)
	assert.Equal(t, before, cap(bb.B))
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool_GetPut(t *testing.T) {
	p := NewByteBufferPool(32, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.B = append(bb.B, "data"...)
	p.Put(bb)

	again := p.Get()
	require.Equal(t, 0, again.Len(), "pooled buffers must come back reset")
	p.Put(nil) // must not panic
}

func TestFrameBuffer_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bb := GetFrameBuffer()
			defer PutFrameBuffer(bb)
			bb.AppendByte(byte(i))
			assert.Equal(t, 1, bb.Len())
		}(i)
	}
	wg.Wait()
}

// =============================================================================
// Word slice pool Tests
// =============================================================================

func TestGetWordSlice(t *testing.T) {
	s, release := GetWordSlice(100)
	require.Len(t, s, 100)
	release()

	s, release = GetWordSlice(10)
	defer release()
	require.Len(t, s, 10)
}

package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/tracecore/config"
)

func TestAllocReturnsStableValue(t *testing.T) {
	a := New(config.DefaultRenderSettings())
	p := Alloc(a, 42)
	assert.Equal(t, 42, *p)
}

func TestAllocArrayInitializesAllElements(t *testing.T) {
	a := New(config.DefaultRenderSettings())
	arr := AllocArray(a, 5, 7)
	require.Len(t, arr, 5)
	for _, v := range arr {
		assert.Equal(t, 7, v)
	}
}

func TestCopySliceIndependentFromSource(t *testing.T) {
	a := New(config.DefaultRenderSettings())
	src := []int{1, 2, 3}
	dst := CopySlice(a, src)
	src[0] = 99
	assert.Equal(t, 1, dst[0])
}

func TestManySmallAllocationsSpanBlocks(t *testing.T) {
	settings := config.DefaultRenderSettings()
	settings.ArenaMinBlockBytes = 64
	settings.ArenaGrowthBlocks = 2
	a := New(settings)

	type payload struct{ a, b, c, d int64 }
	var ptrs []*payload
	for i := 0; i < 200; i++ {
		ptrs = append(ptrs, Alloc(a, payload{a: int64(i)}))
	}

	assert.Greater(t, a.BlockCount(), 1)
	for i, p := range ptrs {
		assert.Equal(t, int64(i), p.a, "value at index %d was overwritten by a later allocation", i)
	}
}

func TestAllocZeroSizedTypeDoesNotPanic(t *testing.T) {
	a := New(config.DefaultRenderSettings())
	type empty struct{}
	assert.NotPanics(t, func() {
		p := Alloc(a, empty{})
		_ = p
	})
}

func TestResetInvalidatesBlocks(t *testing.T) {
	a := New(config.DefaultRenderSettings())
	Alloc(a, 1)
	before := a.OccupiedBytes()
	assert.Greater(t, before, uintptr(0))

	a.Reset()
	assert.Equal(t, uintptr(0), a.OccupiedBytes())
	assert.Equal(t, 1, a.BlockCount())
}

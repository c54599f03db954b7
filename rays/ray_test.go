package rays

import (
	"math"
	"testing"

	"github.com/achilleasa/tracecore/geom"
	"github.com/stretchr/testify/assert"
)

func TestNewRayHasInfiniteMaxT(t *testing.T) {
	r := New(geom.NewPoint(0, 0, 0), geom.NewVector(1, 0, 0))
	assert.True(t, math.IsInf(float64(r.MaxT), 1))
	assert.False(t, r.IsOcclusion)
	assert.False(t, r.IsDone)
}

func TestNewOcclusionSetsFlagAndMaxT(t *testing.T) {
	r := NewOcclusion(geom.NewPoint(0, 0, 0), geom.NewVector(1, 0, 0), 5)
	assert.True(t, r.IsOcclusion)
	assert.Equal(t, float32(5), r.MaxT)
}

func TestRayTransformedRecomputesDirInv(t *testing.T) {
	r := New(geom.NewPoint(0, 0, 0), geom.NewVector(2, 0, 0))
	xf := geom.Translate(geom.NewVector(1, 1, 1))
	tr := r.Transformed(xf)
	assert.Equal(t, geom.NewPoint(1, 1, 1), tr.Orig)
	assert.InDelta(t, 0.5, tr.DirInv.X, 1e-6)
}

func TestBatchPushAndReset(t *testing.T) {
	b := NewBatch(4)
	idx := b.Push(New(geom.NewPoint(0, 0, 0), geom.NewVector(1, 0, 0)))
	assert.Equal(t, 0, idx)
	assert.Equal(t, 1, b.Len())
	b.Reset()
	assert.Equal(t, 0, b.Len())
}

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack(2, 8)
	s.Push(0, StackEntry{NodeIndex: 1, Lane: 0})
	s.Push(0, StackEntry{NodeIndex: 2, Lane: 1})

	top, ok := s.Pop(0)
	assert.True(t, ok)
	assert.Equal(t, uint32(2), top.NodeIndex)

	top, ok = s.Pop(0)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), top.NodeIndex)

	_, ok = s.Pop(0)
	assert.False(t, ok)
}

func TestStackRaysAreIndependent(t *testing.T) {
	s := NewStack(2, 4)
	s.Push(0, StackEntry{NodeIndex: 1})
	assert.True(t, s.Empty(1))
	assert.False(t, s.Empty(0))
}

func TestStackPushPanicsOnOverflow(t *testing.T) {
	s := NewStack(1, 1)
	s.Push(0, StackEntry{NodeIndex: 1})
	assert.Panics(t, func() {
		s.Push(0, StackEntry{NodeIndex: 2})
	})
}

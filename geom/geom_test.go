package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVectorCrossOrthogonal(t *testing.T) {
	x := NewVector(1, 0, 0)
	y := NewVector(0, 1, 0)
	z := x.Cross(y)
	assert.InDelta(t, 0, z.X, 1e-6)
	assert.InDelta(t, 0, z.Y, 1e-6)
	assert.InDelta(t, 1, z.Z, 1e-6)
}

func TestVectorNormalizedUnitLength(t *testing.T) {
	v := NewVector(3, 4, 0).Normalized()
	assert.InDelta(t, 1, v.Length(), 1e-6)
}

func TestTransformIdentityRoundTrips(t *testing.T) {
	id := Identity()
	p := NewPoint(1, 2, 3)
	assert.Equal(t, p, id.MulPoint(p))
}

func TestTransformInvertUndoesTranslate(t *testing.T) {
	tr := Translate(NewVector(1, 2, 3))
	inv, ok := tr.Invert()
	assert.True(t, ok)

	p := NewPoint(5, 5, 5)
	got := inv.MulPoint(tr.MulPoint(p))
	assert.InDelta(t, p.X, got.X, 1e-5)
	assert.InDelta(t, p.Y, got.Y, 1e-5)
	assert.InDelta(t, p.Z, got.Z, 1e-5)
}

func TestTransformInvertSingularReportsFalse(t *testing.T) {
	degenerate := Transform{} // all-zero linear part
	_, ok := degenerate.Invert()
	assert.False(t, ok)
}

func TestBBoxUnionContainsBoth(t *testing.T) {
	a := BBoxFromPoints(NewPoint(0, 0, 0), NewPoint(1, 1, 1))
	b := BBoxFromPoints(NewPoint(2, 2, 2), NewPoint(3, 3, 3))
	u := a.Union(b)
	assert.Equal(t, NewPoint(0, 0, 0), u.Min)
	assert.Equal(t, NewPoint(3, 3, 3), u.Max)
}

func TestBBoxDegenerateIsUnionIdentity(t *testing.T) {
	a := BBoxFromPoints(NewPoint(0, 0, 0), NewPoint(1, 1, 1))
	u := NewBBox().Union(a)
	assert.Equal(t, a, u)
}

func TestBBoxIntersectRayHitsCenteredBox(t *testing.T) {
	box := BBoxFromPoints(NewPoint(-1, -1, -1), NewPoint(1, 1, 1))
	origin := NewPoint(-5, 0, 0)
	dir := NewVector(1, 0, 0)
	dirInv := NewVector(1/dir.X, 1/dir.Y, 1/dir.Z)
	assert.True(t, box.IntersectRay(origin, dirInv, 1e30))
}

func TestBBoxIntersectRayMissesOffsetBox(t *testing.T) {
	box := BBoxFromPoints(NewPoint(-1, -1, -1), NewPoint(1, 1, 1))
	origin := NewPoint(-5, 10, 0)
	dir := NewVector(1, 0, 0)
	dirInv := NewVector(1/dir.X, 1/dir.Y, 1/dir.Z)
	assert.False(t, box.IntersectRay(origin, dirInv, 1e30))
}

func TestLerpSliceSingleElementIgnoresAlpha(t *testing.T) {
	s := []Point{NewPoint(1, 2, 3)}
	assert.Equal(t, s[0], LerpSlice(s, 0.7))
}

func TestLerpSliceEndpoints(t *testing.T) {
	s := []Point{NewPoint(0, 0, 0), NewPoint(10, 10, 10)}
	assert.Equal(t, s[0], LerpSlice(s, 0))
	assert.Equal(t, s[1], LerpSlice(s, 1))
}

func TestLerpSliceMidpointAcrossThreeKeyframes(t *testing.T) {
	s := []Point{NewPoint(0, 0, 0), NewPoint(1, 1, 1), NewPoint(2, 2, 2)}
	got := LerpSlice(s, 0.5)
	assert.InDelta(t, 1, got.X, 1e-6)
}

func TestBBox4IntersectRayMatchesScalarPerLane(t *testing.T) {
	hit := BBoxFromPoints(NewPoint(-1, -1, -1), NewPoint(1, 1, 1))
	miss := BBoxFromPoints(NewPoint(100, 100, 100), NewPoint(101, 101, 101))
	b4 := BBox4FromBBoxes(hit, miss, hit, miss)

	origin := NewPoint(-5, 0, 0)
	inf := float32(math.Inf(1))
	dirInv := NewVector(1, inf, inf) // dir=(1,0,0): x finite, y/z infinite

	mask := b4.IntersectRay(origin, dirInv, 1e30)
	assert.True(t, bool(mask[0]))
	assert.False(t, bool(mask[1]))
	assert.True(t, bool(mask[2]))
	assert.False(t, bool(mask[3]))
}

package triangle

import (
	"testing"

	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/rays"
	"github.com/stretchr/testify/assert"
)

func unitTriangle() (geom.Point, geom.Point, geom.Point) {
	return geom.NewPoint(0, 0, 0), geom.NewPoint(1, 0, 0), geom.NewPoint(0, 1, 0)
}

func TestIntersectHitsCenterOfTriangle(t *testing.T) {
	p0, p1, p2 := unitTriangle()
	r := rays.New(geom.NewPoint(0.2, 0.2, 1), geom.NewVector(0, 0, -1))

	hit, ok := Intersect(r, p0, p1, p2)
	assert.True(t, ok)
	assert.InDelta(t, 1, hit.T, 1e-5)
	assert.GreaterOrEqual(t, hit.U, float32(0))
	assert.GreaterOrEqual(t, hit.V, float32(0))
	assert.LessOrEqual(t, hit.U+hit.V, float32(1))
}

func TestIntersectMissesOutsideTriangle(t *testing.T) {
	p0, p1, p2 := unitTriangle()
	r := rays.New(geom.NewPoint(5, 5, 1), geom.NewVector(0, 0, -1))

	_, ok := Intersect(r, p0, p1, p2)
	assert.False(t, ok)
}

func TestIntersectRespectsMaxT(t *testing.T) {
	p0, p1, p2 := unitTriangle()
	r := rays.New(geom.NewPoint(0.2, 0.2, 1), geom.NewVector(0, 0, -1))
	r.MaxT = 0.5 // triangle is at t=1, beyond max_t

	_, ok := Intersect(r, p0, p1, p2)
	assert.False(t, ok)
}

func TestIntersectSharedEdgeIsWatertight(t *testing.T) {
	// Two triangles sharing the edge from (0,0,0) to (1,1,0), covering
	// the unit square. A ray along that shared edge must hit exactly
	// one of them, never both and never neither.
	a0, a1, a2 := geom.NewPoint(0, 0, 0), geom.NewPoint(1, 0, 0), geom.NewPoint(1, 1, 0)
	b0, b1, b2 := geom.NewPoint(0, 0, 0), geom.NewPoint(1, 1, 0), geom.NewPoint(0, 1, 0)

	r := rays.New(geom.NewPoint(0.5, 0.5, 1), geom.NewVector(0, 0, -1))

	_, hitA := Intersect(r, a0, a1, a2)
	_, hitB := Intersect(r, b0, b1, b2)

	assert.True(t, hitA != hitB, "exactly one of the two triangles sharing the edge must be hit")
}

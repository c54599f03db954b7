package tracer

import (
	"github.com/achilleasa/tracecore/accel"
	"github.com/achilleasa/tracecore/arena"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/rays"
	"github.com/achilleasa/tracecore/scene"
	"github.com/achilleasa/tracecore/triangle"
)

// tri is one static triangle in a TriangleMesh's local space.
type tri struct {
	p0, p1, p2  geom.Point
	shaderIndex int
}

func (t tri) Bounds() []geom.BBox {
	b := geom.NewBBox()
	b.Min = b.Min.Min(t.p0).Min(t.p1).Min(t.p2)
	b.Max = b.Max.Max(t.p0).Max(t.p1).Max(t.p2)
	return []geom.BBox{b}
}

// TriangleMesh is a scene.Surface backed by its own BVH4 over static
// triangles.
type TriangleMesh struct {
	tris  []tri
	accel *accel.BVH4
}

// NewTriangleMesh builds a TriangleMesh from a flat list of (p0, p1, p2,
// shaderIndex) triangles.
func NewTriangleMesh(arenaAlloc *arena.Arena, objectsPerLeaf int, unionFactor float32, triangles []struct {
	P0, P1, P2  geom.Point
	ShaderIndex int
}) *TriangleMesh {
	tris := make([]tri, len(triangles))
	for i, t := range triangles {
		tris[i] = tri{p0: t.P0, p1: t.P1, p2: t.P2, shaderIndex: t.ShaderIndex}
	}
	return &TriangleMesh{
		tris:  tris,
		accel: accel.BuildBVH4(arenaAlloc, tris, objectsPerLeaf, unionFactor),
	}
}

// Bounds satisfies scene.Surface / accel.Bounded.
func (m *TriangleMesh) Bounds() []geom.BBox {
	return m.accel.Bounds()
}

// IntersectRays satisfies scene.Surface: rays in rayIndices are already
// in this mesh's local space; a closer hit overwrites out[ri] and
// shortens batch.Rays[ri].MaxT so later triangles (and sibling
// instances, via the shared batch) cull correctly.
func (m *TriangleMesh) IntersectRays(batch *rays.Batch, rayIndices []int, _ *rays.Stack, out []scene.Intersection) {
	m.accel.Traverse(batch, rayIndices, func(objIdx int, b *rays.Batch, rayIdx []int) {
		t := m.tris[objIdx]
		for _, ri := range rayIdx {
			r := b.Rays[ri]
			if r.IsDone {
				continue
			}
			hit, ok := triangle.Intersect(r, t.p0, t.p1, t.p2)
			if !ok {
				continue
			}
			b.Rays[ri].MaxT = hit.T
			if r.IsOcclusion {
				b.Rays[ri].IsDone = true
				continue
			}
			nor := t.p1.Sub(t.p0).Cross(t.p2.Sub(t.p0)).ToNormal().Normalized()
			out[ri] = scene.Intersection{
				T:           hit.T,
				Point:       r.Orig.Add(r.Dir.Scale(hit.T)),
				Normal:      nor,
				GeomNormal:  nor,
				U:           hit.U,
				V:           hit.V,
				Time:        r.Time,
				ShaderIndex: t.shaderIndex,
			}
		}
	})
}

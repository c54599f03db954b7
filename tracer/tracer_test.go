package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/tracecore/arena"
	"github.com/achilleasa/tracecore/config"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/rays"
	"github.com/achilleasa/tracecore/scene"
	"github.com/achilleasa/tracecore/xformstack"
)

func quadMesh(a *arena.Arena, settings config.RenderSettings, shaderIndex int) *TriangleMesh {
	return NewTriangleMesh(a, settings.ObjectsPerLeaf, settings.UnionFactor, []struct {
		P0, P1, P2  geom.Point
		ShaderIndex int
	}{
		{P0: geom.NewPoint(-1, -1, 0), P1: geom.NewPoint(1, -1, 0), P2: geom.NewPoint(1, 1, 0), ShaderIndex: shaderIndex},
		{P0: geom.NewPoint(-1, -1, 0), P1: geom.NewPoint(1, 1, 0), P2: geom.NewPoint(-1, 1, 0), ShaderIndex: shaderIndex},
	})
}

func TestTraceDirectObjectHit(t *testing.T) {
	settings := config.DefaultRenderSettings()
	a := arena.New(settings)

	root := scene.NewAssembly()
	meshIdx := root.AddObject("quad", scene.Object{Kind: scene.ObjectSurface, Surface: quadMesh(a, settings, 7)})
	root.AddInstance(scene.InstanceObject, meshIdx, 7, []geom.Transform{geom.Identity()})
	require.NoError(t, root.Build(a, settings))

	batch := rays.NewBatch(1)
	batch.Push(rays.New(geom.NewPoint(0, 0, 5), geom.NewVector(0, 0, -1)))
	out := make([]scene.Intersection, 1)

	tr := New()
	tr.Trace(root, batch, []int{0}, xformstack.New(), rays.NewStack(1, 8), out)

	assert.InDelta(t, 5, batch.Rays[0].MaxT, 1e-4)
	assert.Equal(t, 7, out[0].ShaderIndex)
	assert.InDelta(t, 1, out[0].Normal.Z, 1e-4)
}

func TestTraceMissLeavesRayUndone(t *testing.T) {
	settings := config.DefaultRenderSettings()
	a := arena.New(settings)

	root := scene.NewAssembly()
	meshIdx := root.AddObject("quad", scene.Object{Kind: scene.ObjectSurface, Surface: quadMesh(a, settings, 0)})
	root.AddInstance(scene.InstanceObject, meshIdx, 0, []geom.Transform{geom.Identity()})
	require.NoError(t, root.Build(a, settings))

	batch := rays.NewBatch(1)
	batch.Push(rays.New(geom.NewPoint(10, 10, 5), geom.NewVector(0, 0, -1)))
	out := make([]scene.Intersection, 1)

	tr := New()
	tr.Trace(root, batch, []int{0}, xformstack.New(), rays.NewStack(1, 8), out)

	assert.False(t, batch.Rays[0].IsDone)
	assert.True(t, batch.Rays[0].MaxT > 1e30)
}

// TestTraceInstancedHierarchyResolvesWorldSpaceHit builds a two-level
// assembly: a child assembly holding a quad at the origin, instanced by
// the root at an offset. A ray aimed at the offset position should hit
// the quad with its intersection point reported back in root (world)
// space.
func TestTraceInstancedHierarchyResolvesWorldSpaceHit(t *testing.T) {
	settings := config.DefaultRenderSettings()
	a := arena.New(settings)

	child := scene.NewAssembly()
	meshIdx := child.AddObject("quad", scene.Object{Kind: scene.ObjectSurface, Surface: quadMesh(a, settings, 3)})
	child.AddInstance(scene.InstanceObject, meshIdx, 3, []geom.Transform{geom.Identity()})

	root := scene.NewAssembly()
	childIdx := root.AddAssembly("child", child)
	offset := geom.Translate(geom.NewVector(10, 0, 0))
	root.AddInstance(scene.InstanceAssembly, childIdx, -1, []geom.Transform{offset})
	require.NoError(t, root.Build(a, settings))

	batch := rays.NewBatch(1)
	batch.Push(rays.New(geom.NewPoint(10, 0, 5), geom.NewVector(0, 0, -1)))
	out := make([]scene.Intersection, 1)

	tr := New()
	tr.Trace(root, batch, []int{0}, xformstack.New(), rays.NewStack(1, 8), out)

	require.InDelta(t, 5, batch.Rays[0].MaxT, 1e-4)
	assert.InDelta(t, 10, out[0].Point.X, 1e-4)
	assert.InDelta(t, 0, out[0].Point.Y, 1e-4)
	assert.InDelta(t, 0, out[0].Point.Z, 1e-4)
	assert.Equal(t, 3, out[0].ShaderIndex)
}

func TestOccludeShortCircuitsOnFirstHit(t *testing.T) {
	settings := config.DefaultRenderSettings()
	a := arena.New(settings)

	root := scene.NewAssembly()
	meshIdx := root.AddObject("quad", scene.Object{Kind: scene.ObjectSurface, Surface: quadMesh(a, settings, 0)})
	root.AddInstance(scene.InstanceObject, meshIdx, 0, []geom.Transform{geom.Identity()})
	require.NoError(t, root.Build(a, settings))

	batch := rays.NewBatch(1)
	batch.Push(rays.NewOcclusion(geom.NewPoint(0, 0, 5), geom.NewVector(0, 0, -1), 100))

	tr := New()
	tr.Occlude(root, batch, []int{0}, xformstack.New(), rays.NewStack(1, 8))

	assert.True(t, batch.Rays[0].IsDone)
}

package integrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/tracecore/arena"
	"github.com/achilleasa/tracecore/config"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/scene"
	"github.com/achilleasa/tracecore/shading"
	"github.com/achilleasa/tracecore/spectral"
	"github.com/achilleasa/tracecore/tracer"
)

func quadFacingCameraAt(a *arena.Arena, settings config.RenderSettings, z float32, shaderIndex int) *tracer.TriangleMesh {
	return tracer.NewTriangleMesh(a, settings.ObjectsPerLeaf, settings.UnionFactor, []struct {
		P0, P1, P2  geom.Point
		ShaderIndex int
	}{
		{P0: geom.NewPoint(-1, -1, z), P1: geom.NewPoint(1, -1, z), P2: geom.NewPoint(1, 1, z), ShaderIndex: shaderIndex},
		{P0: geom.NewPoint(-1, -1, z), P1: geom.NewPoint(1, 1, z), P2: geom.NewPoint(-1, 1, z), ShaderIndex: shaderIndex},
	})
}

type constShader struct{ closure shading.Closure }

func (s constShader) Shade(scene.Intersection) shading.Closure { return s.closure }

// expectedWavelength replays the first six dimensions TracePath draws
// (pixel filter, lens, time, wavelength) to recover the hero wavelength
// a given (seed, pixel, sample) triple will produce.
func expectedWavelength(seed uint32, pixelX, pixelY int, sampleIndex uint32) float32 {
	s := NewSampler(seed, pixelX, pixelY, sampleIndex)
	s.Next2D()
	s.Next2D()
	s.Next1D()
	return spectral.MapUnitToWavelength(s.Next1D())
}

func emptyScene(bg spectral.XYZ) *scene.Scene {
	root := scene.NewAssembly()
	settings := config.DefaultRenderSettings()
	a := arena.New(settings)
	_ = root.Build(a, settings)

	return &scene.Scene{
		Camera: scene.NewCamera([]geom.Transform{geom.Identity()}, []float32{1}, nil, nil),
		World:  scene.World{BackgroundColor: bg},
		Root:   root,
	}
}

func TestTracePathAddsBackgroundOnMiss(t *testing.T) {
	bg := spectral.XYZ{X: 0.2, Y: 0.3, Z: 0.1}
	sc := emptyScene(bg)

	res := NewResources(8)
	settings := config.DefaultRenderSettings()
	got := res.TracePath(sc, settings, 3, 4, 0, 0, 42, 0)

	wl := expectedWavelength(42, 3, 4, 0)
	want := bg.ToSpectralSample(wl)

	assert.Equal(t, want.HeroWavelength, got.HeroWavelength)
	assert.InDeltaSlice(t, want.E[:], got.E[:], 1e-5)
}

func TestTracePathIsDeterministic(t *testing.T) {
	bg := spectral.XYZ{X: 0.5, Y: 0.5, Z: 0.5}
	sc := emptyScene(bg)

	settings := config.DefaultRenderSettings()
	a := res1Trace(sc, settings)
	b := res1Trace(sc, settings)

	assert.Equal(t, a, b)
}

func res1Trace(sc *scene.Scene, settings config.RenderSettings) spectral.Sample {
	res := NewResources(8)
	return res.TracePath(sc, settings, 7, 9, 0.1, -0.1, 1234, 2)
}

func TestTracePathReturnsEmissionDirectly(t *testing.T) {
	settings := config.DefaultRenderSettings()
	a := arena.New(settings)

	root := scene.NewAssembly()
	quad := quadFacingCameraAt(a, settings, 5, 0)
	objIdx := root.AddObject("light-quad", scene.Object{Kind: scene.ObjectSurface, Surface: quad})
	root.AddInstance(scene.InstanceObject, objIdx, 0, []geom.Transform{geom.Identity()})
	require.NoError(t, root.Build(a, settings))

	emitColor := spectral.XYZ{X: 1, Y: 1, Z: 1}
	sc := &scene.Scene{
		Camera:  scene.NewCamera([]geom.Transform{geom.Identity()}, []float32{1}, nil, nil),
		World:   scene.World{BackgroundColor: spectral.XYZ{}},
		Root:    root,
		Shaders: []scene.SurfaceShader{constShader{closure: shading.Emit{Color: emitColor}}},
	}

	res := NewResources(8)
	got := res.TracePath(sc, settings, 0, 0, 0, 0, 7, 0)

	wl := expectedWavelength(7, 0, 0, 0)
	want := emitColor.ToSpectralSample(wl)
	assert.InDeltaSlice(t, want.E[:], got.E[:], 1e-4)
}

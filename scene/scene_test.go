package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/tracecore/arena"
	"github.com/achilleasa/tracecore/config"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/lightaccel"
	"github.com/achilleasa/tracecore/rays"
	"github.com/achilleasa/tracecore/shading"
	"github.com/achilleasa/tracecore/spectral"
	"github.com/achilleasa/tracecore/xformstack"
)

type stubSurface struct{ bounds []geom.BBox }

func (s stubSurface) IntersectRays(*rays.Batch, []int, *rays.Stack, []Intersection) {}
func (s stubSurface) Bounds() []geom.BBox                                                            { return s.bounds }

type stubLight struct {
	bounds []geom.BBox
	power  float32
}

func (l stubLight) Sample(from geom.Point, u, v, wavelength, time float32) (spectral.Sample, geom.Vector, float32) {
	return spectral.Sample{}, geom.NewVector(0, 0, 1), 1
}
func (l stubLight) SamplePDF(from geom.Point, dir geom.Vector, u, v, wavelength, time float32) float32 {
	return 1
}
func (l stubLight) Outgoing(dir geom.Vector, u, v, wavelength, time float32) spectral.Sample {
	return spectral.Sample{}
}
func (l stubLight) IsDelta() bool             { return false }
func (l stubLight) Bounds() []geom.BBox       { return l.bounds }
func (l stubLight) ApproximateEnergy() float32 { return l.power }

func pointBounds(p geom.Point) []geom.BBox { return []geom.BBox{{Min: p, Max: p}} }

func TestCameraGenerateRayIsNormalized(t *testing.T) {
	cam := NewCamera([]geom.Transform{geom.Identity()}, []float32{1.0}, nil, nil)
	r := cam.GenerateRay(0.1, -0.2, 0, 0.5, 0.5)
	assert.InDelta(t, 1, r.Dir.Length(), 1e-5)
}

func TestBuildRejectsCyclicAssembly(t *testing.T) {
	a := NewAssembly()
	b := NewAssembly()
	a.AddAssembly("b", b)
	b.Assemblies = append(b.Assemblies, a) // hand-construct a cycle

	err := a.Build(arena.New(config.DefaultRenderSettings()), config.DefaultRenderSettings())
	require.Error(t, err)
}

func TestAssemblySampleLightsSelectsInstancedLight(t *testing.T) {
	a := NewAssembly()
	objIdx := a.AddObject("light", Object{Kind: ObjectLight, Light: stubLight{bounds: pointBounds(geom.NewPoint(5, 0, 0)), power: 10}})
	a.AddInstance(InstanceObject, objIdx, -1, []geom.Transform{geom.Translate(geom.NewVector(5, 0, 0))})

	settings := config.DefaultRenderSettings()
	a.Build(arena.New(settings), settings)

	stack := xformstack.New()
	sample, ok := a.SampleLights(stack, 0.5, 0.5, 0.5, 550, 0,
		geom.NewPoint(0, 0, 0), geom.NewVector(0, 0, -1),
		geom.NewNormal(0, 0, 1), geom.NewNormal(0, 0, 1),
		shading.Lambert{Color: spectral.XYZ{X: 1, Y: 1, Z: 1}})

	require.True(t, ok)
	assert.Equal(t, float32(1), sample.PDF)
	assert.Equal(t, float32(1), sample.SelectionPDF)
}

func TestSceneSampleLightsNoneWhenEmpty(t *testing.T) {
	s := &Scene{Root: NewAssembly()}
	settings := config.DefaultRenderSettings()
	require.NoError(t, s.Build(arena.New(settings), settings))

	_, ok := s.SampleLights(xformstack.New(), 0.5, 0, 0, 550, 0,
		geom.NewPoint(0, 0, 0), geom.NewVector(0, 0, -1),
		geom.NewNormal(0, 0, 1), geom.NewNormal(0, 0, 1), shading.Lambert{})
	assert.False(t, ok)
}

var _ lightaccel.SurfaceLight = stubLight{}

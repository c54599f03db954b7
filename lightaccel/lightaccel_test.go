package lightaccel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/shading"
	"github.com/achilleasa/tracecore/spectral"
)

type testLight struct {
	bounds []geom.BBox
	power  float32
}

func (l testLight) info() ([]geom.BBox, float32) { return l.bounds, l.power }

func pointLight(center geom.Point, power float32) testLight {
	b := geom.BBox{Min: center, Max: center}
	return testLight{bounds: []geom.BBox{b}, power: power}
}

var whiteLambert = shading.Lambert{Color: spectral.XYZ{X: 1, Y: 1, Z: 1}}

func TestArraySelectsOnlyPositivePowerLights(t *testing.T) {
	lights := []testLight{
		pointLight(geom.NewPoint(0, 0, 0), 0),
		pointLight(geom.NewPoint(1, 0, 0), 5),
		pointLight(geom.NewPoint(2, 0, 0), 0),
	}
	arr := NewArray(lights, testLight.info)

	idx, pdf, _, ok := arr.Select(geom.Vector{}, geom.Point{}, geom.Normal{}, geom.Normal{}, nil, 0, 0.5)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, float32(1), pdf)
}

func TestArrayEmptyReportsNotOK(t *testing.T) {
	arr := NewArray([]testLight{pointLight(geom.NewPoint(0, 0, 0), 0)}, testLight.info)
	_, _, _, ok := arr.Select(geom.Vector{}, geom.Point{}, geom.Normal{}, geom.Normal{}, nil, 0, 0.5)
	assert.False(t, ok)
}

func TestTreeEmptyReportsNotOK(t *testing.T) {
	tree := BuildTree([]testLight{}, testLight.info)
	_, _, _, ok := tree.Select(geom.Vector{}, geom.Point{}, geom.Normal{}, geom.Normal{}, whiteLambert, 0, 0.5)
	assert.False(t, ok)
}

func TestTreeSingleLightAlwaysSelected(t *testing.T) {
	lights := []testLight{pointLight(geom.NewPoint(3, 4, 0), 10)}
	tree := BuildTree(lights, testLight.info)

	idx, pdf, _, ok := tree.Select(geom.NewVector(0, 0, -1), geom.NewPoint(0, 0, 5), geom.NewNormal(0, 0, 1), geom.NewNormal(0, 0, 1), whiteLambert, 0, 0.37)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, float32(1), pdf)
}

// TestTreeTwoEqualLightsSplitFiftyFifty exercises an equal-energy,
// equal-distance two-light scenario: with identical energy and
// symmetric placement around the shading point, each light should be
// selected roughly half the time as n sweeps [0, 1).
func TestTreeTwoEqualLightsSplitFiftyFifty(t *testing.T) {
	lights := []testLight{
		pointLight(geom.NewPoint(-5, 0, 0), 10),
		pointLight(geom.NewPoint(5, 0, 0), 10),
	}
	tree := BuildTree(lights, testLight.info)

	pos := geom.NewPoint(0, 0, 5)
	inc := geom.NewVector(0, 0, -1)
	nor := geom.NewNormal(0, 0, 1)

	counts := map[int]int{}
	const samples = 2000
	for i := 0; i < samples; i++ {
		n := (float32(i) + 0.5) / samples
		idx, pdf, whittled, ok := tree.Select(inc, pos, nor, nor, whiteLambert, 0, n)
		assert.True(t, ok)
		assert.InDelta(t, 0.5, float64(pdf), 1e-4)
		assert.GreaterOrEqual(t, whittled, float32(0))
		assert.LessOrEqual(t, whittled, float32(1.0001))
		counts[idx]++
	}

	assert.InDelta(t, samples/2, counts[0], samples*0.02)
	assert.InDelta(t, samples/2, counts[1], samples*0.02)
}

func TestTreeApproximateEnergySumsChildren(t *testing.T) {
	lights := []testLight{
		pointLight(geom.NewPoint(-5, 0, 0), 10),
		pointLight(geom.NewPoint(5, 0, 0), 7),
	}
	tree := BuildTree(lights, testLight.info)
	assert.Equal(t, float32(17), tree.ApproximateEnergy())
}

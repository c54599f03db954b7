package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWavelengthsStayInVisibleRange(t *testing.T) {
	s := NewSample(420)
	wls := s.Wavelengths()
	for i, wl := range wls {
		assert.GreaterOrEqualf(t, wl, float32(wlMin), "lane %d", i)
		assert.LessOrEqualf(t, wl, float32(wlMax), "lane %d", i)
	}
}

func TestAddPanicsOnMismatchedHeroWavelength(t *testing.T) {
	a := FromValue(1, 420)
	b := FromValue(1, 500)
	assert.Panics(t, func() { a.Add(b) })
}

func TestAddSumsMatchingLanes(t *testing.T) {
	a := FromValue(1, 420)
	b := FromValue(2, 420)
	c := a.Add(b)
	for _, v := range c.E {
		assert.Equal(t, float32(3), v)
	}
}

func TestXYZRoundTripThroughSRGB(t *testing.T) {
	orig := FromSRGB(0.3, 0.6, 0.2)
	r, g, b := orig.ToSRGB()
	rt := FromSRGB(r, g, b)

	assert.InDelta(t, orig.X, rt.X, 0.01)
	assert.InDelta(t, orig.Y, rt.Y, 0.01)
	assert.InDelta(t, orig.Z, rt.Z, 0.01)
}

func TestXYZRoundTripThroughSpectralSample(t *testing.T) {
	colors := []XYZ{
		FromSRGB(0.3, 0.6, 0.2),
		FromSRGB(1, 1, 1),
		FromSRGB(1, 0, 0),
		FromSRGB(0, 1, 0),
		FromSRGB(0, 0, 1),
		FromSRGB(0.8, 0.4, 0.1),
		FromSRGB(0.05, 0.05, 0.05),
	}
	heroWavelengths := []float32{380, 420, 500, 550, 620, 700}

	for _, orig := range colors {
		for _, hero := range heroWavelengths {
			rt := orig.ToSpectralSample(hero).ToXYZ()

			relDelta := func(a, b float32) float32 {
				denom := a
				if denom < 0 {
					denom = -denom
				}
				if denom < 1e-6 {
					denom = 1e-6
				}
				d := a - b
				if d < 0 {
					d = -d
				}
				return d / denom
			}

			assert.LessOrEqualf(t, relDelta(orig.X, rt.X), float32(0.01), "X at hero %v", hero)
			assert.LessOrEqualf(t, relDelta(orig.Y, rt.Y), float32(0.01), "Y at hero %v", hero)
			assert.LessOrEqualf(t, relDelta(orig.Z, rt.Z), float32(0.01), "Z at hero %v", hero)
		}
	}
}

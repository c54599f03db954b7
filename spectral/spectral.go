package spectral

import (
	"github.com/achilleasa/tracecore"
	"github.com/achilleasa/tracecore/geom"
)

const (
	wlMin   = 380.0
	wlMax   = 700.0
	wlRange = wlMax - wlMin
	wlRangeQ = wlRange / 4
)

// MapUnitToWavelength maps n in [0, 1] to a wavelength in [wlMin, wlMax].
func MapUnitToWavelength(n float32) float32 {
	return n*wlRange + wlMin
}

// Sample is a set of four spectral radiance lanes sharing one hero
// wavelength. Every arithmetic operation between two Samples asserts
// they share a hero wavelength.
type Sample struct {
	E              geom.Float4
	HeroWavelength float32
}

// NewSample returns a zero-valued sample for the given hero wavelength.
func NewSample(heroWavelength float32) Sample {
	tracecore.Assertf(heroWavelength >= wlMin && heroWavelength <= wlMax,
		"hero wavelength %v out of range [%v, %v]", heroWavelength, wlMin, wlMax)
	return Sample{HeroWavelength: heroWavelength}
}

// FromParts builds a sample from explicit per-lane values.
func FromParts(e geom.Float4, heroWavelength float32) Sample {
	tracecore.Assertf(heroWavelength >= wlMin && heroWavelength <= wlMax,
		"hero wavelength %v out of range [%v, %v]", heroWavelength, wlMin, wlMax)
	return Sample{E: e, HeroWavelength: heroWavelength}
}

// FromValue splats value across all four lanes.
func FromValue(value, heroWavelength float32) Sample {
	return FromParts(geom.SplatFloat4(value), heroWavelength)
}

// Wavelengths returns the four wavelengths this sample's lanes sit at.
func (s Sample) Wavelengths() geom.Float4 {
	return geom.Float4{
		nthWavelength(s.HeroWavelength, 0),
		nthWavelength(s.HeroWavelength, 1),
		nthWavelength(s.HeroWavelength, 2),
		nthWavelength(s.HeroWavelength, 3),
	}
}

func nthWavelength(hero float32, n int) float32 {
	wl := hero + wlRangeQ*float32(n)
	if wl > wlMax {
		wl -= wlRange
	}
	return wl
}

func (s Sample) assertMatching(o Sample) {
	tracecore.Assertf(s.HeroWavelength == o.HeroWavelength,
		"mixing spectral samples with hero wavelengths %v and %v", s.HeroWavelength, o.HeroWavelength)
}

func (s Sample) Add(o Sample) Sample {
	s.assertMatching(o)
	return Sample{E: s.E.Add(o.E), HeroWavelength: s.HeroWavelength}
}

func (s Sample) Mul(o Sample) Sample {
	s.assertMatching(o)
	return Sample{E: s.E.Mul(o.E), HeroWavelength: s.HeroWavelength}
}

func (s Sample) Scale(v float32) Sample {
	return Sample{E: s.E.Scale(v), HeroWavelength: s.HeroWavelength}
}

func (s Sample) DivScalar(v float32) Sample {
	return Sample{E: s.E.Scale(1 / v), HeroWavelength: s.HeroWavelength}
}

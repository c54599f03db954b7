package lightaccel

import (
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/shading"
	"github.com/achilleasa/tracecore/spectral"
)

// SurfaceLight is a light source that occupies a place in the scene
// hierarchy and so can be bounded, sampled from a shading point, and
// evaluated when directly hit.
type SurfaceLight interface {
	// Sample returns the spectral radiance arriving at from, the
	// direction to use for a shadow ray, and the PDF of the sample.
	Sample(from geom.Point, u, v, wavelength, time float32) (spectral.Sample, geom.Vector, float32)

	// SamplePDF returns the PDF of sampling sampleDir/sampleU/sampleV
	// from from. Only valid for directions that are themselves valid
	// samples of this light.
	SamplePDF(from geom.Point, sampleDir geom.Vector, sampleU, sampleV, wavelength, time float32) float32

	// Outgoing returns the color emitted in direction dir from the
	// given surface parameters, for rays that hit the light directly.
	Outgoing(dir geom.Vector, u, v, wavelength, time float32) spectral.Sample

	IsDelta() bool
	Bounds() []geom.BBox
	ApproximateEnergy() float32
}

// WorldLightSource is a light with no position in the scene hierarchy,
// such as a distant disk light: it can be sampled from any point in the
// world and doesn't participate in the bounded light tree. Grounded on
// light/distant_disk_light.rs's use of a WorldLightSource trait.
type WorldLightSource interface {
	Sample(u, v, wavelength, time float32) (spectral.Sample, geom.Vector, float32)
	SamplePDF(sampleDir geom.Vector, wavelength, time float32) float32
	Outgoing(dir geom.Vector, wavelength, time float32) spectral.Sample
	IsDelta() bool
	ApproximateEnergy() float32
}

// Accel is implemented by both Array and Tree: given a shading point's
// context and a uniform sample n, it picks one light out of the set it
// indexes. Grounded on light_accel/mod.rs's LightAccel trait.
type Accel interface {
	// Select returns the chosen light's index into the original
	// object slice, the probability with which it was chosen, a
	// re-randomized remainder of n usable for further sampling
	// downstream, and whether any light was available at all.
	Select(inc geom.Vector, pos geom.Point, nor, norG geom.Normal, closure shading.Closure, time, n float32) (lightIndex int, pdf float32, whittledN float32, ok bool)
	ApproximateEnergy() float32
}

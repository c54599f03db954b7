package shading

import (
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/spectral"
)

// Closure is the contract every surface closure implements.
type Closure interface {
	// IsDelta reports whether the closure has a delta distribution
	// (an infinitesimally narrow response, e.g. perfect mirrors),
	// which only ever matters for closures this repo doesn't yet
	// model, kept on the interface so future delta closures don't
	// need to change it.
	IsDelta() bool

	// Sample draws an outgoing direction and filter color given an
	// incoming direction, surface normal, two uniform sample values
	// and a wavelength, returning the direction, the filter, and its PDF.
	Sample(inc geom.Vector, nor geom.Normal, u, v, wavelength float32) (geom.Vector, spectral.Sample, float32)

	// Evaluate returns the filter color for a known incoming/outgoing pair.
	Evaluate(inc, out geom.Vector, nor geom.Normal, wavelength float32) spectral.Sample

	// SamplePDF returns the PDF that Sample would have produced `out` from `inc`.
	SamplePDF(inc, out geom.Vector, nor geom.Normal) float32

	// EstimateEvalOverSolidAngle estimates the total energy Evaluate
	// would return integrated over a circular solid angle of
	// half-angle cosine cosTheta, for light-tree importance sampling.
	// Does not need to be exact, only non-zero wherever the exact
	// integral would be non-zero.
	EstimateEvalOverSolidAngle(inc, out geom.Vector, nor geom.Normal, cosTheta float32) float32
}

// Union is the closed, tagged set of closures a SurfaceShader can hand
// back. Exactly one of the Emit/Lambert/GGX fields is valid, selected
// by Kind.
type Union struct {
	Kind    Kind
	Emit    Emit
	Lambert Lambert
	GGX     GGX
}

type Kind int

const (
	KindEmit Kind = iota
	KindLambert
	KindGGX
)

// Closure returns the active closure value as the Closure interface.
func (u Union) Closure() Closure {
	switch u.Kind {
	case KindEmit:
		return u.Emit
	case KindLambert:
		return u.Lambert
	case KindGGX:
		return u.GGX
	default:
		panic("shading: Union: unknown Kind")
	}
}

// faceForward flips nor to the side facing inc: the incoming ray came
// from outside the surface it's hitting if the dot product is
// non-positive.
func faceForward(nor geom.Normal, inc geom.Vector) geom.Vector {
	nn := nor.Normalized()
	if nor.ToVector().Dot(inc) <= 0 {
		return nn.ToVector()
	}
	return nn.Neg().ToVector()
}

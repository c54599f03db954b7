package shading

import (
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/spectral"
)

// Emit is a light-emitting closure: it never scatters light, it only
// sources it. Grounded on EmitClosure in surface_closure.rs.
type Emit struct {
	Color spectral.XYZ
}

func (e Emit) IsDelta() bool { return false }

// Sample returns a zero direction and unit PDF: emission has no
// outgoing scattering direction of its own. The integrator must special
// case emission rather than treating this as an ordinary bounce (the
// same "needs to be handled specially" contract the original flags).
func (e Emit) Sample(inc geom.Vector, nor geom.Normal, u, v, wavelength float32) (geom.Vector, spectral.Sample, float32) {
	return geom.Vector{}, spectral.NewSample(wavelength), 1
}

// Evaluate always returns zero: an emission closure has no BSDF
// response, only the emitted radiance itself (read via EmittedColor).
func (e Emit) Evaluate(inc, out geom.Vector, nor geom.Normal, wavelength float32) spectral.Sample {
	return spectral.NewSample(wavelength)
}

func (e Emit) SamplePDF(inc, out geom.Vector, nor geom.Normal) float32 { return 1 }

// EstimateEvalOverSolidAngle has no principled answer for a closure
// with no scattering response; the light tree never calls it on a
// purely emissive surface closure, since emitters contribute via
// ApproximateEnergy rather than BSDF estimation, so this panics loudly
// if reached instead of silently returning a meaningless number.
func (e Emit) EstimateEvalOverSolidAngle(inc, out geom.Vector, nor geom.Normal, cosTheta float32) float32 {
	panic("shading: Emit.EstimateEvalOverSolidAngle: an emission closure has no scattering response to estimate")
}

// EmittedColor returns the spectral radiance emitted toward wavelength.
func (e Emit) EmittedColor(wavelength float32) spectral.Sample {
	return e.Color.ToSpectralSample(wavelength)
}

package shading

import (
	"math"

	"github.com/achilleasa/tracecore"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/spectral"
)

const (
	invPi  = 1 / math.Pi
	halfPi = math.Pi / 2
)

// Lambert is a perfectly diffuse closure. Grounded on LambertClosure in
// surface_closure.rs.
type Lambert struct {
	Color spectral.XYZ
}

func (l Lambert) IsDelta() bool { return false }

func (l Lambert) Sample(inc geom.Vector, nor geom.Normal, u, v, wavelength float32) (geom.Vector, spectral.Sample, float32) {
	nn := faceForward(nor, inc)
	dir := geom.CosineSampleHemisphere(u, v)
	pdf := dir.Z * float32(invPi)
	out := geom.ZUpToVec(dir, nn)
	filter := l.Evaluate(inc, out, nor, wavelength)
	return out, filter, pdf
}

func (l Lambert) Evaluate(inc, out geom.Vector, nor geom.Normal, wavelength float32) spectral.Sample {
	v := out.Normalized()
	nn := faceForward(nor, inc)
	fac := maxf32(nn.Dot(v), 0) * float32(invPi)
	return l.Color.ToSpectralSample(wavelength).Scale(fac)
}

func (l Lambert) SamplePDF(inc, out geom.Vector, nor geom.Normal) float32 {
	v := out.Normalized()
	nn := faceForward(nor, inc)
	return maxf32(nn.Dot(v), 0) * float32(invPi)
}

// EstimateEvalOverSolidAngle analytically estimates Lambertian response
// integrated over a circular solid angle subtending at most a
// hemisphere, following "Area Light Sources for Real-Time Graphics" by
// John M. Snyder (same derivation as sphere_lambert in
// surface_closure.rs).
func (l Lambert) EstimateEvalOverSolidAngle(inc, out geom.Vector, nor geom.Normal, cosTheta float32) float32 {
	tracecore.Assertf(cosTheta >= -1 && cosTheta <= 1, "cosTheta %v out of range [-1, 1]", cosTheta)

	if cosTheta < 0 {
		return 1
	}

	v := out.Normalized()
	nn := faceForward(nor, inc)
	cosNV := nn.Dot(v)
	return sphereLambert(cosNV, cosTheta)
}

func sphereLambert(nlCos, rCos float32) float32 {
	nlSin := sqrtf(1 - nlCos*nlCos)
	rSin2 := 1 - rCos*rCos
	rSin := sqrtf(rSin2)
	ySin := rCos / nlSin
	yCos2 := 1 - ySin*ySin
	yCos := sqrtf(yCos2)

	g := (-2 * nlSin * rCos * yCos) + float32(halfPi) - asinf(ySin) + (ySin * yCos)
	h := nlCos * ((yCos * sqrtf(rSin2-yCos2)) + (rSin2 * asinf(yCos/rSin)))

	nl := acosf(nlCos)
	r := acosf(rCos)

	switch {
	case nl < float32(halfPi)-r:
		return nlCos * rSin2
	case nl < float32(halfPi):
		return (nlCos * rSin2) + g - h
	case nl < float32(halfPi)+r:
		return (g + h) * float32(invPi)
	default:
		return 0
	}
}

func sqrtf(v float32) float32 { return float32(math.Sqrt(float64(v))) }
func asinf(v float32) float32 { return float32(math.Asin(float64(v))) }
func acosf(v float32) float32 { return float32(math.Acos(float64(v))) }

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

package shading

import (
	"math"

	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/spectral"
)

// GGX is a glossy microfacet closure using the isotropic
// Trowbridge-Reitz distribution: the distribution, masking term, and
// sampling routine below follow the standard Trowbridge-Reitz/Smith
// microfacet formulation. Its Fresnel term reuses
// schlickFresnelFromFac.
type GGX struct {
	Color     spectral.XYZ
	Roughness float32
	Fresnel   float32 // normal-incidence reflectance factor, in [0, 1]
}

func (g GGX) IsDelta() bool { return false }

func (g GGX) alpha() float32 {
	a := g.Roughness * g.Roughness
	if a < 1e-3 {
		a = 1e-3
	}
	return a
}

func (g GGX) Sample(inc geom.Vector, nor geom.Normal, u, v, wavelength float32) (geom.Vector, spectral.Sample, float32) {
	nn := faceForward(nor, inc)
	wo := inc.Neg().Normalized()

	alpha := g.alpha()
	theta := float32(math.Atan2(float64(alpha*sqrtf(u)), float64(sqrtf(1-u))))
	phi := 2 * math.Pi * float64(v)
	sinT, cosT := sinf(theta), cosf(theta)
	h := geom.Vector{X: sinT * float32(math.Cos(phi)), Y: sinT * float32(math.Sin(phi)), Z: cosT}
	hWorld := geom.ZUpToVec(h, nn)

	woDotH := wo.Dot(hWorld)
	out := hWorld.Scale(2 * woDotH).Sub(wo)

	pdf := g.samplePDFLocal(nn, wo, out, hWorld)
	filter := g.Evaluate(inc, out, nor, wavelength)
	return out, filter, pdf
}

func (g GGX) Evaluate(inc, out geom.Vector, nor geom.Normal, wavelength float32) spectral.Sample {
	nn := faceForward(nor, inc)
	wo := inc.Neg().Normalized()
	wi := out.Normalized()

	nDotWo := nn.Dot(wo)
	nDotWi := nn.Dot(wi)
	if nDotWo <= 0 || nDotWi <= 0 {
		return spectral.NewSample(wavelength)
	}

	h := wo.Add(wi).Normalized()
	fac := g.brdf(nn, wo, wi, h)
	return g.Color.ToSpectralSample(wavelength).Scale(fac)
}

func (g GGX) SamplePDF(inc, out geom.Vector, nor geom.Normal) float32 {
	nn := faceForward(nor, inc)
	wo := inc.Neg().Normalized()
	wi := out.Normalized()
	h := wo.Add(wi).Normalized()
	return g.samplePDFLocal(nn, wo, wi, h)
}

// EstimateEvalOverSolidAngle falls back to a single BRDF evaluation at
// the sampled direction: a cheap, always-non-zero-where-valid estimate
// suitable for light-tree importance sampling, which only needs a
// non-zero lower bound rather than an exact integral.
func (g GGX) EstimateEvalOverSolidAngle(inc, out geom.Vector, nor geom.Normal, cosTheta float32) float32 {
	if cosTheta < 0 {
		return 1
	}
	nn := faceForward(nor, inc)
	wo := inc.Neg().Normalized()
	wi := out.Normalized()
	if nn.Dot(wo) <= 0 || nn.Dot(wi) <= 0 {
		return 0
	}
	h := wo.Add(wi).Normalized()
	return g.brdf(nn, wo, wi, h)
}

func (g GGX) brdf(nn, wo, wi, h geom.Vector) float32 {
	nDotWo := nn.Dot(wo)
	nDotWi := nn.Dot(wi)
	if nDotWo <= 0 || nDotWi <= 0 {
		return 0
	}

	d := g.distribution(nn.Dot(h))
	gm := g.smithG1(nDotWo) * g.smithG1(nDotWi)
	f := schlickFresnelFromFac(g.Fresnel, maxf32(wo.Dot(h), 0))

	return (d * gm * f) / (4 * nDotWo * nDotWi)
}

func (g GGX) distribution(nDotH float32) float32 {
	if nDotH <= 0 {
		return 0
	}
	alpha2 := g.alpha() * g.alpha()
	denom := nDotH*nDotH*(alpha2-1) + 1
	return alpha2 / (float32(math.Pi) * denom * denom)
}

func (g GGX) smithG1(nDotV float32) float32 {
	alpha2 := g.alpha() * g.alpha()
	return (2 * nDotV) / (nDotV + sqrtf(alpha2+(1-alpha2)*nDotV*nDotV))
}

func (g GGX) samplePDFLocal(nn, wo, wi, h geom.Vector) float32 {
	nDotH := nn.Dot(h)
	woDotH := wo.Dot(h)
	if woDotH <= 0 {
		return 0
	}
	return (g.distribution(nDotH) * nDotH) / (4 * woDotH)
}

func sinf(v float32) float32 { return float32(math.Sin(float64(v))) }
func cosf(v float32) float32 { return float32(math.Cos(float64(v))) }

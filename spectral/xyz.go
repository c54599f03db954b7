package spectral

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/achilleasa/tracecore/geom"
)

// XYZ is a CIE 1931 tristimulus color, the working space light sources
// and cameras convert to/from before or after spectral sampling.
type XYZ struct {
	X, Y, Z float32
}

// ToSRGB converts to gamma-encoded sRGB via go-colorful, clamping to
// [0, 1] per channel.
func (c XYZ) ToSRGB() (r, g, b float32) {
	col := colorful.Xyz(float64(c.X), float64(c.Y), float64(c.Z))
	rr, gg, bb := col.Clamped().RGB255()
	return float32(rr) / 255, float32(gg) / 255, float32(bb) / 255
}

// FromSRGB builds an XYZ value from gamma-encoded sRGB channels.
func FromSRGB(r, g, b float32) XYZ {
	col := colorful.LinearRgb(srgbToLinear(float64(r)), srgbToLinear(float64(g)), srgbToLinear(float64(b)))
	x, y, z := col.Xyz()
	return XYZ{X: float32(x), Y: float32(y), Z: float32(z)}
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// gaussian is the multi-lobe building block of the Wyman/Sloan/Shirley
// analytic fit to the CIE 1931 color matching functions.
func gaussian(x, alpha, mu, sigma1, sigma2 float32) float32 {
	sigma := sigma1
	if x >= mu {
		sigma = sigma2
	}
	t := (x - mu) / sigma
	return alpha * float32(math.Exp(float64(-0.5*t*t)))
}

func cieX(wl float32) float32 {
	return gaussian(wl, 1.056, 599.8, 37.9, 31.0) +
		gaussian(wl, 0.362, 442.0, 16.0, 26.7) +
		gaussian(wl, -0.065, 501.1, 20.4, 26.2)
}

func cieY(wl float32) float32 {
	return gaussian(wl, 0.821, 568.8, 46.9, 40.5) +
		gaussian(wl, 0.286, 530.9, 16.3, 31.1)
}

func cieZ(wl float32) float32 {
	return gaussian(wl, 1.217, 437.0, 11.8, 36.0) +
		gaussian(wl, 0.681, 459.0, 26.0, 13.8)
}

// cieNorm scales a four-lane sum over the analytic curve fit above to
// approximate the full-band integral the fit was built from, treating
// each lane as representative of an equal 320/4 nm slice of the visible
// band.
const cieNorm = 0.75

// cieMatrix builds the 3x4 matrix M that maps a Sample's four lanes to
// an XYZ value: XYZ = M * E. ToXYZ below applies it directly; building
// it explicitly here lets ToSpectralSample invert it.
func cieMatrix(wls geom.Float4) (m [3][4]float32) {
	for i, wl := range wls {
		m[0][i] = cieX(wl) * cieNorm
		m[1][i] = cieY(wl) * cieNorm
		m[2][i] = cieZ(wl) * cieNorm
	}
	return m
}

// ToXYZ integrates a spectral sample's four lanes against the analytic
// CIE 1931 curve fit above.
func (s Sample) ToXYZ() XYZ {
	m := cieMatrix(s.Wavelengths())
	var x, y, z float32
	for i := range s.E {
		x += m[0][i] * s.E[i]
		y += m[1][i] * s.E[i]
		z += m[2][i] * s.E[i]
	}
	return XYZ{X: x, Y: y, Z: z}
}

// ToSpectralSample reconstructs the four wavelength lanes that ToXYZ
// would integrate back to this XYZ value. Four lanes and three
// tristimulus channels leave one degree of freedom, so this picks the
// minimum-norm lane vector among all that satisfy M*E = XYZ: E = M^T
// (M M^T)^-1 XYZ, the Moore-Penrose pseudo-inverse of the full-row-rank
// matrix M from cieMatrix. Since that pseudo-inverse is a right inverse
// of M by construction (M (M^T (M M^T)^-1) = I), round-tripping
// an XYZ value through ToSpectralSample and back through ToXYZ reproduces
// it exactly modulo floating-point error, for any heroWavelength.
func (c XYZ) ToSpectralSample(heroWavelength float32) Sample {
	s := NewSample(heroWavelength)
	m := cieMatrix(s.Wavelengths())

	var a [3][3]float32
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[i][k] * m[j][k]
			}
			a[i][j] = sum
		}
	}

	ainv, ok := invert3x3(a)
	if !ok {
		return s
	}

	xyz := [3]float32{c.X, c.Y, c.Z}
	var coeff [3]float32
	for i := 0; i < 3; i++ {
		var sum float32
		for j := 0; j < 3; j++ {
			sum += ainv[i][j] * xyz[j]
		}
		coeff[i] = sum
	}

	var e geom.Float4
	for k := 0; k < 4; k++ {
		var sum float32
		for i := 0; i < 3; i++ {
			sum += m[i][k] * coeff[i]
		}
		e[k] = sum
	}
	return FromParts(e, heroWavelength)
}

// invert3x3 inverts a 3x3 matrix via the adjugate/determinant method,
// reporting false if it is singular to working precision.
func invert3x3(a [3][3]float32) (inv [3][3]float32, ok bool) {
	det := a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
	if det > -1e-12 && det < 1e-12 {
		return inv, false
	}
	invDet := 1 / det

	inv[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) * invDet
	inv[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) * invDet
	inv[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * invDet
	inv[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) * invDet
	inv[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * invDet
	inv[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) * invDet
	inv[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) * invDet
	inv[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) * invDet
	inv[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * invDet
	return inv, true
}

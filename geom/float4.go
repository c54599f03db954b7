package geom

// Float4 is a 4-lane float32 register, used both standalone and as the
// lane layout behind BBox4 and the hero-wavelength SpectralSample in
// package spectral.
type Float4 [4]float32

// SplatFloat4 returns a Float4 with all four lanes set to v.
func SplatFloat4(v float32) Float4 {
	return Float4{v, v, v, v}
}

func (a Float4) Add(b Float4) Float4 {
	return Float4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Float4) Sub(b Float4) Float4 {
	return Float4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func (a Float4) Mul(b Float4) Float4 {
	return Float4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

func (a Float4) Div(b Float4) Float4 {
	return Float4{a[0] / b[0], a[1] / b[1], a[2] / b[2], a[3] / b[3]}
}

func (a Float4) Scale(s float32) Float4 {
	return Float4{a[0] * s, a[1] * s, a[2] * s, a[3] * s}
}

func (a Float4) Min(b Float4) Float4 {
	var out Float4
	for i := range a {
		if a[i] < b[i] {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}

func (a Float4) Max(b Float4) Float4 {
	var out Float4
	for i := range a {
		if a[i] > b[i] {
			out[i] = a[i]
		} else {
			out[i] = b[i]
		}
	}
	return out
}

// Bool4 is a 4-lane boolean mask, returned by Float4/BBox4 comparisons.
type Bool4 [4]bool

// Lt returns, lane-wise, whether a < b.
func (a Float4) Lt(b Float4) Bool4 {
	var out Bool4
	for i := range a {
		out[i] = a[i] < b[i]
	}
	return out
}

// Any reports whether any lane of m is true.
func (m Bool4) Any() bool {
	return m[0] || m[1] || m[2] || m[3]
}

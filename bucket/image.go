package bucket

import (
	"github.com/achilleasa/tracecore/spectral"
)

// Image is the single mutable object a render shares across threads: a
// linear-XYZ pixel accumulator plus a running sample count per pixel,
// written to exclusively through a checked-out Checkout. Downstream
// encoders read Resolve's averaged XYZ values and gamma-encode or
// tonemap them.
type Image struct {
	Width, Height int
	sum           []spectral.XYZ
	samples       []int
}

// NewImage allocates a zeroed accumulator for an image of the given
// dimensions.
func NewImage(width, height int) *Image {
	return &Image{
		Width:   width,
		Height:  height,
		sum:     make([]spectral.XYZ, width*height),
		samples: make([]int, width*height),
	}
}

func (img *Image) index(x, y int) int { return y*img.Width + x }

// addSample accumulates one path sample's contribution at (x, y).
func (img *Image) addSample(x, y int, c spectral.XYZ) {
	i := img.index(x, y)
	s := img.sum[i]
	img.sum[i] = spectral.XYZ{X: s.X + c.X, Y: s.Y + c.Y, Z: s.Z + c.Z}
	img.samples[i]++
}

// Resolve returns the averaged XYZ value at (x, y): the zero value if
// no sample has ever been added there.
func (img *Image) Resolve(x, y int) spectral.XYZ {
	i := img.index(x, y)
	n := img.samples[i]
	if n == 0 {
		return spectral.XYZ{}
	}
	s := img.sum[i]
	inv := 1 / float32(n)
	return spectral.XYZ{X: s.X * inv, Y: s.Y * inv, Z: s.Z * inv}
}

package lightaccel

import (
	"github.com/achilleasa/tracecore"
	"github.com/achilleasa/tracecore/geom"
	"github.com/achilleasa/tracecore/shading"
)

// Array is a degenerate light accelerator: uniform selection among
// every light with non-zero power, ignoring the shading point
// entirely. Grounded on light_accel/mod.rs's LightArray and its
// duplicate in accel/light_array.rs; kept as the fallback accelerator
// for scenes too small to benefit from Tree's importance weighting.
type Array struct {
	indices    []int
	aprxEnergy float32
}

// NewArray builds an Array over lights, keeping only those with
// positive power as reported by info.
func NewArray[T any](lights []T, info func(T) (bounds []geom.BBox, power float32)) Array {
	var indices []int
	var aprxEnergy float32
	for i, light := range lights {
		_, power := info(light)
		if power > 0 {
			indices = append(indices, i)
			aprxEnergy += power
		}
	}
	return Array{indices: indices, aprxEnergy: aprxEnergy}
}

func (a Array) Select(inc geom.Vector, pos geom.Point, nor, norG geom.Normal, closure shading.Closure, time, n float32) (int, float32, float32, bool) {
	// inc, pos, nor, norG, closure, time are unused: selection is
	// uniform regardless of shading context, matching the original's
	// degenerate LightArray.
	tracecore.Assertf(n >= 0 && n <= 1, "n %v out of range [0, 1]", n)

	if len(a.indices) == 0 {
		return 0, 0, 0, false
	}

	n2 := n * float32(len(a.indices))
	pos := int(n2)
	if n == 1 {
		pos = len(a.indices) - 1
	}
	i := a.indices[pos]

	whittledN := n2 - float32(pos)
	pdf := 1 / float32(len(a.indices))
	return i, pdf, whittledN, true
}

func (a Array) ApproximateEnergy() float32 {
	return a.aprxEnergy
}

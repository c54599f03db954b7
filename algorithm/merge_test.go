package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type scalar float32

func (s scalar) Lerp(o scalar, alpha float32) scalar {
	return scalar(float32(s)*(1-alpha) + float32(o)*alpha)
}

func TestMergeSlicesAppendEqualLength(t *testing.T) {
	s1 := []scalar{1, 2, 3}
	s2 := []scalar{10, 20, 30}
	out := MergeSlicesAppend(nil, s1, s2, func(a, b scalar) scalar { return a + b })
	assert.Equal(t, []scalar{11, 22, 33}, out)
}

func TestMergeSlicesAppendResamplesShorterSlice(t *testing.T) {
	s1 := []scalar{0, 10, 20}
	s2 := []scalar{100, 200}
	out := MergeSlicesAppend(nil, s1, s2, func(a, b scalar) scalar { return a + b })
	assert.Len(t, out, 3)
	assert.Equal(t, scalar(100), out[0])
	assert.Equal(t, scalar(220), out[2])
}

func TestMergeSlicesToPanicsOnWrongOutputLength(t *testing.T) {
	assert.Panics(t, func() {
		out := make([]scalar, 1)
		MergeSlicesTo(out, []scalar{1, 2}, []scalar{3, 4}, func(a, b scalar) scalar { return a + b })
	})
}

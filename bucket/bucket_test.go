package bucket

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/tracecore/spectral"
)

func TestCheckOutRejectsOverlap(t *testing.T) {
	img := NewImage(16, 16)
	r := NewRegistry(img)

	first, err := r.CheckOut(Bucket{X: 0, Y: 0, W: 8, H: 8})
	require.NoError(t, err)

	_, err = r.CheckOut(Bucket{X: 4, Y: 4, W: 8, H: 8})
	assert.ErrorIs(t, err, ErrOverlappingBucket)

	first.Release()

	_, err = r.CheckOut(Bucket{X: 4, Y: 4, W: 8, H: 8})
	assert.NoError(t, err)
}

func TestCheckOutAllowsAdjacentBuckets(t *testing.T) {
	img := NewImage(16, 16)
	r := NewRegistry(img)

	a, err := r.CheckOut(Bucket{X: 0, Y: 0, W: 8, H: 8})
	require.NoError(t, err)

	b, err := r.CheckOut(Bucket{X: 8, Y: 0, W: 8, H: 8})
	require.NoError(t, err)

	a.Release()
	b.Release()
}

func TestAddSamplePanicsOutsideBucket(t *testing.T) {
	img := NewImage(16, 16)
	r := NewRegistry(img)

	c, err := r.CheckOut(Bucket{X: 0, Y: 0, W: 4, H: 4})
	require.NoError(t, err)
	defer c.Release()

	assert.Panics(t, func() {
		c.AddSample(10, 10, spectral.XYZ{X: 1})
	})
}

func TestDispatchBucketsFillsWholeImage(t *testing.T) {
	img := NewImage(4, 4)
	r := NewRegistry(img)

	buckets := []Bucket{
		{X: 0, Y: 0, W: 2, H: 4},
		{X: 2, Y: 0, W: 2, H: 4},
	}

	err := DispatchBuckets(context.Background(), r, buckets, func(_ context.Context, c *Checkout) error {
		b := c.Bucket()
		for y := b.Y; y < b.Y+b.H; y++ {
			for x := b.X; x < b.X+b.W; x++ {
				c.AddSample(x, y, spectral.XYZ{X: 1, Y: 1, Z: 1})
			}
		}
		return nil
	})
	require.NoError(t, err)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, spectral.XYZ{X: 1, Y: 1, Z: 1}, img.Resolve(x, y))
		}
	}
}

func TestDispatchBucketsPropagatesWorkerError(t *testing.T) {
	img := NewImage(4, 4)
	r := NewRegistry(img)
	boom := errors.New("boom")

	buckets := []Bucket{{X: 0, Y: 0, W: 4, H: 4}}
	err := DispatchBuckets(context.Background(), r, buckets, func(context.Context, *Checkout) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

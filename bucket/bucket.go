package bucket

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/achilleasa/tracecore/spectral"
)

// ErrOverlappingBucket is returned by CheckOut when the requested
// rectangle overlaps one already checked out.
var ErrOverlappingBucket = errors.New("bucket: requested rectangle overlaps a bucket already checked out")

// Bucket is a non-overlapping rectangular region of an Image, in pixel
// coordinates: [X, X+W) x [Y, Y+H).
type Bucket struct {
	X, Y, W, H int
}

func (b Bucket) overlaps(o Bucket) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W && b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// Checkout grants exclusive write access to one Bucket of an Image.
// Obtained via Registry.CheckOut; released via Release.
type Checkout struct {
	registry *Registry
	bucket   Bucket
}

// AddSample accumulates one path sample's contribution at (x, y), which
// must fall within this checkout's own bucket.
func (c *Checkout) AddSample(x, y int, color spectral.XYZ) {
	b := c.bucket
	if x < b.X || x >= b.X+b.W || y < b.Y || y >= b.Y+b.H {
		panic("bucket: AddSample: pixel outside checked-out bucket")
	}
	c.registry.image.addSample(x, y, color)
}

// Bucket returns the rectangle this checkout owns.
func (c *Checkout) Bucket() Bucket { return c.bucket }

// Release returns the bucket to the pool of available regions.
func (c *Checkout) Release() {
	c.registry.mu.Lock()
	defer c.registry.mu.Unlock()

	for i, active := range c.registry.active {
		if active == c.bucket {
			c.registry.active = append(c.registry.active[:i], c.registry.active[i+1:]...)
			return
		}
	}
}

// Registry tracks which buckets of an Image are currently checked out,
// failing fast on an overlapping request rather than blocking or
// silently allowing concurrent writers into the same pixels.
type Registry struct {
	image *Image

	mu     sync.Mutex
	active []Bucket
}

// NewRegistry returns a Registry guarding img.
func NewRegistry(img *Image) *Registry {
	return &Registry{image: img}
}

// CheckOut grants exclusive access to b, failing with
// ErrOverlappingBucket if b overlaps any bucket currently checked out.
func (r *Registry) CheckOut(b Bucket) (*Checkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, active := range r.active {
		if b.overlaps(active) {
			return nil, ErrOverlappingBucket
		}
	}
	r.active = append(r.active, b)
	return &Checkout{registry: r, bucket: b}, nil
}

// DispatchBuckets runs worker concurrently over buckets via
// golang.org/x/sync/errgroup, checking each bucket out of r immediately
// before invoking worker and releasing it immediately after, whether
// worker succeeds or fails. The first worker error cancels ctx for the
// rest and is returned once every in-flight worker has finished.
func DispatchBuckets(ctx context.Context, r *Registry, buckets []Bucket, worker func(context.Context, *Checkout) error) error {
	g, egCtx := errgroup.WithContext(ctx)

	for _, b := range buckets {
		b := b
		g.Go(func() error {
			checkout, err := r.CheckOut(b)
			if err != nil {
				return err
			}
			defer checkout.Release()

			return worker(egCtx, checkout)
		})
	}

	return g.Wait()
}

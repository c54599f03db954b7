package rays

// Batch is an array-of-structs ray representation: one Ray value per
// logical ray, with no per-field parallel slices. It is reused across
// buckets by a render thread rather than reallocated per trace.
type Batch struct {
	Rays []Ray
}

// NewBatch returns an empty batch with room for capacity rays without
// reallocating, so a render thread can reuse it bucket after bucket.
func NewBatch(capacity int) *Batch {
	return &Batch{Rays: make([]Ray, 0, capacity)}
}

// Reset truncates the batch to zero length, keeping its backing array.
func (b *Batch) Reset() {
	b.Rays = b.Rays[:0]
}

// Push appends r to the batch and returns its index.
func (b *Batch) Push(r Ray) int {
	b.Rays = append(b.Rays, r)
	return len(b.Rays) - 1
}

// Len returns the number of rays currently in the batch.
func (b *Batch) Len() int { return len(b.Rays) }

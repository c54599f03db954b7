// Package arena implements the bump allocator that backs every immutable
// acceleration structure built at scene-build time: BVH nodes, bounds
// slices, light-tree nodes, and assembly tables. It never deallocates
// individual values; all references it returns remain valid until the
// arena is reset or garbage collected.
//
// Blocks grow geometrically once a warm-up count of blocks has
// accumulated, an allocation that would waste more than a configured
// ratio of the current block gets its own dedicated block, and a grown
// block is swapped to the front so subsequent small allocations keep
// using the largest available block.
package arena

import (
	"unsafe"

	"github.com/google/uuid"

	"github.com/achilleasa/tracecore"
	"github.com/achilleasa/tracecore/config"
)

// block is one contiguous allocation. id is diagnostic only (surfaced
// through logging, never read from the hot path).
type block struct {
	id   uuid.UUID
	data []byte
	used uintptr
}

func (b *block) capacity() uintptr { return uintptr(cap(b.data)) }

// Arena is a growable bump allocator for Copy-like (no-pointer-cleanup-
// required) Go values. It owns a slice of blocks and is never shrunk
// except by Reset.
type Arena struct {
	blocks   []*block
	settings config.RenderSettings
	occupied uintptr
}

// New creates an arena configured by settings. Use
// config.DefaultRenderSettings() for the default policy (1 KiB minimum
// block, warm up after 8 blocks, 10% waste threshold).
func New(settings config.RenderSettings) *Arena {
	a := &Arena{settings: settings}
	a.blocks = append(a.blocks, newBlock(settings.ArenaMinBlockBytes))
	return a
}

func newBlock(size uintptr) *block {
	return &block{id: uuid.New(), data: make([]byte, 0, size)}
}

func alignmentOffset(addr, alignment uintptr) uintptr {
	if alignment == 0 {
		return 0
	}
	return (alignment - (addr % alignment)) % alignment
}

func dataAddr(b *block) uintptr {
	if cap(b.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b.data[:1][0]))
}

// allocSpace returns size bytes aligned to alignment, from the current
// (front) block if it fits, or from a newly created block otherwise.
// Never returns an error: a zero-sized allocation is served as a 1-byte
// allocation, so it still returns a valid, non-dangling but unusable
// pointer.
func (a *Arena) allocSpace(size, alignment uintptr) unsafe.Pointer {
	if size == 0 {
		size = 1
	}
	if alignment == 0 {
		alignment = 1
	}

	front := a.blocks[0]
	pad := alignmentOffset(dataAddr(front)+front.used, alignment)
	needed := pad + size

	growthSize := a.nextBlockSize()
	wasteRatio := float32(0)
	if front.capacity() > 0 {
		wasteRatio = float32(pad) / float32(front.capacity())
	}

	fitsCurrent := front.used+needed <= front.capacity()
	tooBigForGrowth := size > growthSize
	tooWasteful := wasteRatio > a.settings.ArenaWasteThreshold

	switch {
	case fitsCurrent && !tooWasteful:
		start := front.used + pad
		front.data = front.data[:start+size]
		front.used = start + size
		tracecore.Logger().Debug("arena: bump alloc", "block", front.id, "size", size)
		return unsafe.Pointer(&front.data[start])

	case tooBigForGrowth || tooWasteful:
		// Dedicated block sized exactly for this allocation.
		dedicated := newBlock(size + alignment - 1)
		dedicated.data = dedicated.data[:size+alignment-1]
		pad := alignmentOffset(dataAddr(dedicated), alignment)
		dedicated.data = dedicated.data[:pad+size]
		dedicated.used = pad + size
		a.blocks = append(a.blocks, dedicated)
		tracecore.Logger().Info("arena: dedicated block", "block", dedicated.id, "size", size)
		return unsafe.Pointer(&dedicated.data[pad])

	default:
		// New growth block becomes the front; old front is demoted so
		// that subsequent small allocations keep using the largest
		// available block.
		next := newBlock(growthSize)
		a.blocks = append([]*block{next}, a.blocks...)
		pad := alignmentOffset(dataAddr(next), alignment)
		next.data = next.data[:pad+size]
		next.used = pad + size
		tracecore.Logger().Info("arena: new block", "block", next.id, "size", growthSize)
		return unsafe.Pointer(&next.data[pad])
	}
}

// nextBlockSize implements the growth policy: once at least
// ArenaGrowthBlocks blocks exist, the next block grows to
// occupied_bytes/ArenaGrowthBlocks, rounded up to a multiple of the
// minimum block size.
func (a *Arena) nextBlockSize() uintptr {
	if len(a.blocks) < a.settings.ArenaGrowthBlocks {
		return a.settings.ArenaMinBlockBytes
	}

	min := a.settings.ArenaMinBlockBytes
	grown := a.totalOccupied() / uintptr(a.settings.ArenaGrowthBlocks)
	if grown == 0 {
		return min
	}
	rem := grown % min
	if rem == 0 {
		return grown
	}
	return grown + (min - rem)
}

func (a *Arena) totalOccupied() uintptr {
	var total uintptr
	for _, b := range a.blocks {
		total += b.used
	}
	return total
}

// Alloc allocates space for a single value and initializes it, returning
// a stable pointer valid until Reset.
func Alloc[T any](a *Arena, value T) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	align := unsafe.Alignof(zero)
	ptr := (*T)(a.allocSpace(size, align))
	*ptr = value
	return ptr
}

// AllocAligned is Alloc but with a minimum alignment in addition to the
// type's natural alignment.
func AllocAligned[T any](a *Arena, value T, minAlign uintptr) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	align := unsafe.Alignof(zero)
	if minAlign > align {
		align = minAlign
	}
	ptr := (*T)(a.allocSpace(size, align))
	*ptr = value
	return ptr
}

// AllocArray allocates space for n values, all initialized to value, and
// returns a stable slice valid until Reset.
func AllocArray[T any](a *Arena, n int, value T) []T {
	var zero T
	elemSize := unsafe.Sizeof(zero)
	align := unsafe.Alignof(zero)

	total := elemSize * uintptr(n)
	if total == 0 {
		total = 1
	}
	ptr := a.allocSpace(total, align)

	out := unsafe.Slice((*T)(ptr), n)
	for i := range out {
		out[i] = value
	}
	return out
}

// CopySlice copies src into newly arena-allocated storage and returns the
// copy.
func CopySlice[T any](a *Arena, src []T) []T {
	var zero T
	out := AllocArray(a, len(src), zero)
	copy(out, src)
	return out
}

// BlockCount reports the number of blocks currently owned by the arena.
// Diagnostic only.
func (a *Arena) BlockCount() int { return len(a.blocks) }

// OccupiedBytes reports the total bytes handed out across all blocks.
// Diagnostic only.
func (a *Arena) OccupiedBytes() uintptr { return a.totalOccupied() }

// Reset frees every block the arena owns, invalidating ALL outstanding
// references returned by Alloc/AllocArray/CopySlice. This is a hazard:
// the caller must have proven no live reference into this arena remains
// reachable before calling it. There is no way to check this at runtime;
// misuse produces silent memory corruption through stale slices, which
// is why this method is never called implicitly.
func (a *Arena) Reset() {
	a.blocks = a.blocks[:0]
	a.blocks = append(a.blocks, newBlock(a.settings.ArenaMinBlockBytes))
}

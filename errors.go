package tracecore

import "errors"

// Sentinel errors for recoverable build-time and scene-graph conditions.
// Programming errors are not in this list: they panic via Assert/Assertf
// instead, since those are fail-fast bugs, not conditions a caller can
// recover from.
var (
	// ErrCyclicAssembly indicates an assembly instance graph contains a
	// cycle; the scene builder rejects these at build time.
	ErrCyclicAssembly = errors.New("tracecore: assembly instance graph contains a cycle")

	// ErrEmptyObjectList indicates a BVH was built from zero objects. Not
	// itself an error condition (an empty BVH simply always reports
	// Miss); returned only by APIs that choose to surface it for
	// diagnostics.
	ErrEmptyObjectList = errors.New("tracecore: object list is empty")

	// ErrZeroEnergyLight indicates a light with zero energy was excluded
	// from a light accelerator at build time.
	ErrZeroEnergyLight = errors.New("tracecore: light has zero energy")

	// ErrUnknownInstance indicates an assembly instance references an
	// object or sub-assembly index outside the bounds of its owning
	// assembly's tables.
	ErrUnknownInstance = errors.New("tracecore: instance references unknown object or assembly")
)

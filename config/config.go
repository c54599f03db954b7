// Package config holds the tunable render settings: maximum bounce
// count, the BVH union-factor heuristic, arena block-size policy, and
// the SAH bin count. Settings are loaded from YAML.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RenderSettings configures the acceleration structures and integrator.
// Zero-value RenderSettings is not valid; use DefaultRenderSettings or
// Load.
type RenderSettings struct {
	// MaxBounces is the number of bounces beyond the camera ray the
	// integrator will trace.
	MaxBounces int `yaml:"max_bounces"`

	// UnionFactor is the threshold used to decide whether a bounded
	// entity's animated bounds collapse to a single union box: collapse
	// when union surface area <= UnionFactor * mean per-sample area.
	UnionFactor float32 `yaml:"union_factor"`

	// ArenaMinBlockBytes is the arena's default minimum block size.
	ArenaMinBlockBytes uintptr `yaml:"arena_min_block_bytes"`

	// ArenaGrowthBlocks is N in "once the arena has accumulated at
	// least N blocks, the next block grows to occupied_bytes/N rounded
	// up to a multiple of the minimum".
	ArenaGrowthBlocks int `yaml:"arena_growth_blocks"`

	// ArenaWasteThreshold is the waste-percentage threshold above which
	// an allocation is given its own dedicated block rather than
	// appended to the current one.
	ArenaWasteThreshold float32 `yaml:"arena_waste_threshold"`

	// SAHBinCount is a SAH bin count setting. It is loaded and validated
	// but not read by the BVH builders, which always bin with the
	// constant accel.SAHBinCount. Prime bin counts empirically give
	// slightly better splits.
	SAHBinCount int `yaml:"sah_bin_count"`

	// ObjectsPerLeaf caps the number of objects a BVH leaf may hold
	// before the builder is forced to keep splitting.
	ObjectsPerLeaf int `yaml:"objects_per_leaf"`
}

// DefaultRenderSettings returns the renderer's baseline tuning values.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		MaxBounces:          2,
		UnionFactor:         1.4,
		ArenaMinBlockBytes:  1024,
		ArenaGrowthBlocks:   8,
		ArenaWasteThreshold: 0.10,
		SAHBinCount:         13,
		ObjectsPerLeaf:      4,
	}
}

// Load reads RenderSettings from a YAML file at path, filling any field
// left unset in the document with the corresponding DefaultRenderSettings
// value.
func Load(path string) (RenderSettings, error) {
	settings := DefaultRenderSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, errors.Wrapf(err, "config: reading %s", path)
	}

	// Decode onto the defaults so that a document omitting a field keeps
	// the default rather than zeroing it out.
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, errors.Wrapf(err, "config: parsing %s", path)
	}

	return settings, settings.Validate()
}

// Validate reports whether settings are usable. Called automatically by
// Load; exported so callers constructing RenderSettings by hand (e.g. in
// tests) can check their fixtures.
func (s RenderSettings) Validate() error {
	switch {
	case s.MaxBounces < 0:
		return errors.New("config: max_bounces must be >= 0")
	case s.UnionFactor < 1.0:
		return errors.New("config: union_factor must be >= 1.0")
	case s.ArenaMinBlockBytes == 0:
		return errors.New("config: arena_min_block_bytes must be > 0")
	case s.ArenaGrowthBlocks <= 0:
		return errors.New("config: arena_growth_blocks must be > 0")
	case s.ArenaWasteThreshold <= 0 || s.ArenaWasteThreshold >= 1:
		return errors.New("config: arena_waste_threshold must be in (0, 1)")
	case s.SAHBinCount < 2:
		return errors.New("config: sah_bin_count must be >= 2")
	case s.ObjectsPerLeaf < 1:
		return errors.New("config: objects_per_leaf must be >= 1")
	}
	return nil
}

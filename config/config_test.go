package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRenderSettingsValid(t *testing.T) {
	assert.NoError(t, DefaultRenderSettings().Validate())
}

func TestLoadOverridesSubsetOfFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_bounces: 5\n"), 0o644))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, settings.MaxBounces)
	assert.Equal(t, DefaultRenderSettings().UnionFactor, settings.UnionFactor)
}

func TestValidateRejectsBadSettings(t *testing.T) {
	s := DefaultRenderSettings()
	s.MaxBounces = -1
	assert.Error(t, s.Validate())

	s = DefaultRenderSettings()
	s.UnionFactor = 0.5
	assert.Error(t, s.Validate())

	s = DefaultRenderSettings()
	s.ArenaWasteThreshold = 1.5
	assert.Error(t, s.Validate())
}

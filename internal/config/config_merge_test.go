package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Unit tests for global/project config layering

func TestMergeConfigs_ExclusionsMerge(t *testing.T) {
	base := &Config{
		Exclude: []string{"node_modules", "vendor"},
	}
	project := &Config{
		Exclude: []string{"dist", "build"},
	}

	merged := mergeConfigs(base, project)

	assert.Equal(t, []string{"node_modules", "vendor", "dist", "build"}, merged.Exclude)
}

func TestMergeConfigs_ExclusionsDeduplicate(t *testing.T) {
	base := &Config{
		Exclude: []string{"node_modules", "vendor"},
	}
	project := &Config{
		Exclude: []string{"node_modules", "dist"},
	}

	merged := mergeConfigs(base, project)

	assert.Len(t, merged.Exclude, 3)
	assert.Contains(t, merged.Exclude, "vendor")
	assert.Contains(t, merged.Exclude, "dist")
}

func TestMergeConfigs_ProjectSettingsWin(t *testing.T) {
	base := &Config{
		Targets: []string{"TODO"},
		Watch:   Watch{DebounceMs: 1000},
	}
	project := &Config{
		Targets: []string{"FIXME", "HACK"},
		Watch:   Watch{DebounceMs: 50},
	}

	merged := mergeConfigs(base, project)

	assert.Equal(t, []string{"FIXME", "HACK"}, merged.Targets)
	assert.Equal(t, 50, merged.Watch.DebounceMs)
}

func TestLoadWithRoot_NoConfigFilesUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	cfg, err := LoadWithRoot(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, DefaultTargets, cfg.Targets)
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Project.Root)
}

func TestLoadWithRoot_ProjectFileOnly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	writeConfigFile(t, dir, `targets "TODO" "WIP"`)

	cfg, err := LoadWithRoot(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"TODO", "WIP"}, cfg.Targets)
}

func TestLoadWithRoot_GlobalLayeredUnderProject(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, FileName), []byte(`exclude "corp-generated"`), 0o644))

	dir := t.TempDir()
	writeConfigFile(t, dir, `
targets "TODO"
exclude "dist"
`)

	cfg, err := LoadWithRoot(dir)
	require.NoError(t, err)

	// Project settings win, exclusions are the union of both files.
	assert.Equal(t, []string{"TODO"}, cfg.Targets)
	assert.Contains(t, cfg.Exclude, "corp-generated")
	assert.Contains(t, cfg.Exclude, "dist")
}

func TestLoadWithRoot_GlobalOnlyAdoptsSearchRoot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, FileName), []byte(`targets "NB"`), 0o644))

	dir := t.TempDir()

	cfg, err := LoadWithRoot(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"NB"}, cfg.Targets)
	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Project.Root)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestArtifactDetector_EmptyProject(t *testing.T) {
	patterns := NewArtifactDetector(t.TempDir()).Detect()
	assert.Empty(t, patterns)
}

func TestArtifactDetector_TSConfigOutDir(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "tsconfig.json", `{"compilerOptions":{"outDir":"lib"}}`)

	patterns := NewArtifactDetector(dir).Detect()

	assert.Contains(t, patterns, "**/lib/**")
}

func TestArtifactDetector_PackageJSONBuildScript(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "package.json", `{
  "scripts": {
    "build": "tsc --outDir out"
  }
}`)

	patterns := NewArtifactDetector(dir).Detect()

	assert.Contains(t, patterns, "**/out/**")
}

func TestArtifactDetector_PackageJSONBuildBlock(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "package.json", `{"build":{"outDir":"bundle"}}`)

	patterns := NewArtifactDetector(dir).Detect()

	assert.Contains(t, patterns, "**/bundle/**")
}

func TestArtifactDetector_NextMarker(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "next.config.js", `module.exports = {}`)

	patterns := NewArtifactDetector(dir).Detect()

	assert.Contains(t, patterns, "**/.next/**")
}

func TestArtifactDetector_CargoDefaultTarget(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "Cargo.toml", `
[package]
name = "demo"
version = "0.1.0"
`)

	patterns := NewArtifactDetector(dir).Detect()

	assert.Contains(t, patterns, "**/target/**")
}

func TestArtifactDetector_CargoCustomTargetDir(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "Cargo.toml", `
[profile.release]
target-dir = "artifacts"
`)

	patterns := NewArtifactDetector(dir).Detect()

	assert.Contains(t, patterns, "**/target/**")
	assert.Contains(t, patterns, "**/artifacts/**")
}

func TestArtifactDetector_PyprojectPycache(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "pyproject.toml", `
[project]
name = "demo"
`)

	patterns := NewArtifactDetector(dir).Detect()

	assert.Contains(t, patterns, "**/__pycache__/**")
}

func TestArtifactDetector_MalformedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "package.json", `{not json`)
	writeProjectFile(t, dir, "Cargo.toml", `= broken toml =`)

	patterns := NewArtifactDetector(dir).Detect()

	// Cargo.toml existing still implies a target directory even when the
	// file itself cannot be parsed.
	assert.Equal(t, []string{"**/target/**"}, patterns)
}

func TestEnrichExclusions_AddsDetectedPatterns(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "tsconfig.json", `{"compilerOptions":{"outDir":"lib"}}`)

	cfg := defaultConfig(dir)
	cfg.EnrichExclusionsWithBuildArtifacts()

	assert.Contains(t, cfg.Exclude, "**/lib/**")
	assert.Contains(t, cfg.Exclude, "node_modules")
}

func TestDeduplicatePatterns(t *testing.T) {
	got := DeduplicatePatterns([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

package fsbuffers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/todoview/internal/engine"
	"github.com/standardbeagle/todoview/internal/host"
	"github.com/standardbeagle/todoview/internal/types"
)

// End-to-end pass over a real directory tree.

func TestEngineOverFilesystem(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n// TODO: wire flags\n")
	writeFile(t, root, "lib/util.go", "// FIXME(dana): off by one\npackage lib\n")
	writeFile(t, root, "vendor/dep.go", "// TODO: vendored noise\n")

	targets := []string{"TODO", "NOTE", "FIXME"}
	excluded := []string{"vendor"}

	h := newHost(t, Options{Root: root, Excluded: excluded})
	eng := engine.New(host.StaticSettings{
		Targets:  targets,
		Excluded: excluded,
		Root:     root,
	}, h, h)

	ms, err := eng.Search("")
	require.NoError(t, err)

	require.Equal(t, 2, ms.Len())
	assert.Equal(t, "FIXME", ms.Occurrences[0].Type)
	assert.Equal(t, "off by one", ms.Occurrences[0].Message)
	assert.Equal(t, "TODO", ms.Occurrences[1].Type)
	assert.Equal(t, 2, ms.Stats.BuffersScanned)

	// Assignee filtering over the same tree.
	ms, err = eng.Search("*:*:dana")
	require.NoError(t, err)
	require.Equal(t, 1, ms.Len())
	assert.Equal(t, types.BufferID(filepath.Join(root, "lib", "util.go")), ms.Occurrences[0].Buffer)
}

func TestEngineOverFilesystem_ActiveFileScope(t *testing.T) {
	root := t.TempDir()
	active := writeFile(t, root, "main.go", "// TODO: focused\n")
	writeFile(t, root, "other.go", "// TODO: elsewhere\n")

	h := newHost(t, Options{Root: root, Active: active})
	eng := engine.New(host.StaticSettings{
		Targets: []string{"TODO"},
		Root:    root,
	}, h, h)

	ms, err := eng.Search("f")
	require.NoError(t, err)

	require.Equal(t, 1, ms.Len())
	assert.Equal(t, types.BufferID(active), ms.Occurrences[0].Buffer)
	assert.Equal(t, "focused", ms.Occurrences[0].Message)
}

func TestEngineOverFilesystem_BinaryAndOversizeSkipped(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "ok.go", "// TODO: keep me\n")
	writeFile(t, root, "huge.go", "// NOTE: this file is over the tiny cap used below\n")
	binPath := filepath.Join(root, "blob.dat")
	require.NoError(t, os.WriteFile(binPath, []byte{0x00, 0x01}, 0o644))

	h := newHost(t, Options{Root: root, MaxFileSize: 24})
	eng := engine.New(host.StaticSettings{
		Targets: []string{"TODO", "NOTE"},
		Root:    root,
	}, h, h)

	ms, err := eng.Search("")
	require.NoError(t, err)

	require.Equal(t, 1, ms.Len())
	assert.Equal(t, "keep me", ms.Occurrences[0].Message)
	assert.Equal(t, 3, ms.Stats.BuffersConsidered)
	assert.Equal(t, 2, ms.Stats.BuffersUnreadable)
}

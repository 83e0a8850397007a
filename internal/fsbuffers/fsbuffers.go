// Package fsbuffers adapts a directory tree to the engine's host
// interfaces. Files are buffers: the all-files universe comes from walking
// the root, the active buffer and open list come from the command line, and
// content reads go through a small revalidating cache.
package fsbuffers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/todoview/internal/debug"
	tverrors "github.com/standardbeagle/todoview/internal/errors"
	"github.com/standardbeagle/todoview/internal/scope"
	"github.com/standardbeagle/todoview/internal/types"
)

// DefaultCacheSize bounds the content cache. Rationale: 1024 buffers at
// typical source file sizes keeps the cache well under 100MB while covering
// repeated passes over a mid-sized project.
const DefaultCacheSize = 1024

var (
	errBinaryContent = errors.New("binary content detected")
	errNotRegular    = errors.New("not a regular file")
	errLimitReached  = errors.New("buffer limit reached")
)

// Options configure a filesystem host.
type Options struct {
	// Root is the directory whose tree forms the all-files universe. A
	// root naming a single file makes that file the whole universe.
	Root string
	// Active is the buffer reported as focused, usually from --active.
	Active string
	// Open lists buffers reported as open, preserving command-line order.
	Open []string
	// Excluded patterns prune the walk early. The scope resolver applies
	// the same patterns again, so pruning is a shortcut, not the contract.
	Excluded []string
	// MaxFileSize caps readable buffer size. Zero means the default.
	MaxFileSize int64
	// MaxFileCount stops enumeration once this many files are collected.
	MaxFileCount int
	// FollowSymlinks descends symlinked directories, guarding against
	// cycles by tracking resolved paths.
	FollowSymlinks bool
	// CacheSize overrides DefaultCacheSize when positive.
	CacheSize int
}

// Host implements host.State and host.BufferProvider over a directory.
type Host struct {
	root      string
	active    string
	open      []string
	excluder  *scope.Excluder
	maxSize   int64
	maxCount  int
	followSym bool
	cache     *lru.Cache[string, types.BufferContent]
}

func New(opts Options) (*Host, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	maxSize := opts.MaxFileSize
	if maxSize <= 0 {
		maxSize = types.DefaultMaxFileSize
	}
	maxCount := opts.MaxFileCount
	if maxCount <= 0 {
		maxCount = types.DefaultMaxBufferCount
	}
	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, types.BufferContent](cacheSize)
	if err != nil {
		return nil, err
	}

	return &Host{
		root:      root,
		active:    opts.Active,
		open:      append([]string(nil), opts.Open...),
		excluder:  scope.NewExcluder(root, opts.Excluded),
		maxSize:   maxSize,
		maxCount:  maxCount,
		followSym: opts.FollowSymlinks,
		cache:     cache,
	}, nil
}

// ActiveBuffer reports the focused buffer, if one was named.
func (h *Host) ActiveBuffer() (types.BufferID, bool) {
	if h.active == "" {
		return "", false
	}
	return types.BufferID(h.active), true
}

// OpenBuffers lists the open buffers in their original order.
func (h *Host) OpenBuffers() []types.BufferID {
	out := make([]types.BufferID, len(h.open))
	for i, p := range h.open {
		out[i] = types.BufferID(p)
	}
	return out
}

// AllBuffers walks the root and returns regular files in depth-first
// lexical order. Unreadable subdirectories are skipped; only an unusable
// root fails the enumeration.
func (h *Host) AllBuffers() ([]types.BufferID, error) {
	info, err := os.Stat(h.root)
	if err != nil {
		return nil, tverrors.NewBufferError("enumerate", types.BufferID(h.root), err)
	}
	if !info.IsDir() {
		return []types.BufferID{types.BufferID(h.root)}, nil
	}

	ids := make([]types.BufferID, 0, 256)
	visited := make(map[string]bool)
	ids, err = h.walkTree(h.root, visited, ids)
	if errors.Is(err, errLimitReached) {
		debug.LogScan("buffer universe capped at %d files under %s\n", h.maxCount, h.root)
		return ids, nil
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// walkTree descends dir collecting regular files. os.ReadDir sorts entries
// by name, so recursion yields a stable lexical order. Resolved directory
// paths are tracked to break symlink cycles.
func (h *Host) walkTree(dir string, visited map[string]bool, ids []types.BufferID) ([]types.BufferID, error) {
	realPath, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ids, nil // unresolvable, skip
	}
	if visited[realPath] {
		return ids, nil // cycle
	}
	visited[realPath] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		if dir == h.root {
			return ids, tverrors.NewBufferError("enumerate", types.BufferID(dir), err)
		}
		return ids, nil // unreadable subdirectory, keep going
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		isDir := entry.IsDir()
		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			if !h.followSym {
				continue
			}
			target, err := os.Stat(path)
			if err != nil {
				continue // dangling link
			}
			if !target.IsDir() && !target.Mode().IsRegular() {
				continue
			}
			isDir = target.IsDir()
		} else if !isDir && !mode.IsRegular() {
			continue
		}

		if isDir {
			if h.excluder.Match(types.BufferID(path)) {
				continue
			}
			ids, err = h.walkTree(path, visited, ids)
			if err != nil {
				return ids, err
			}
			continue
		}

		ids = append(ids, types.BufferID(path))
		if len(ids) >= h.maxCount {
			return ids, errLimitReached
		}
	}

	return ids, nil
}

// ReadBuffer loads a file through the cache. Cached entries are reused only
// while size and mtime still match the file on disk.
func (h *Host) ReadBuffer(id types.BufferID) (types.BufferContent, error) {
	path := string(id)

	info, err := os.Stat(path)
	if err != nil {
		return types.BufferContent{}, tverrors.NewBufferError("stat", id, err)
	}
	if !info.Mode().IsRegular() {
		return types.BufferContent{}, tverrors.NewBufferError("stat", id, errNotRegular)
	}
	if info.Size() > h.maxSize {
		return types.BufferContent{}, tverrors.NewBufferError("read", id,
			fmt.Errorf("size %d exceeds limit %d", info.Size(), h.maxSize)).
			WithType(tverrors.ErrorTypeBufferTooLarge)
	}

	if cached, ok := h.cache.Get(path); ok {
		if cached.Size == info.Size() && cached.ModTime.Equal(info.ModTime()) {
			return cached, nil
		}
		h.cache.Remove(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.BufferContent{}, tverrors.NewBufferError("read", id, err)
	}

	sample := data
	if len(sample) > types.BinaryPreCheckBytes {
		sample = sample[:types.BinaryPreCheckBytes]
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return types.BufferContent{}, tverrors.NewBufferError("read", id, errBinaryContent).
			WithType(tverrors.ErrorTypeBufferBinary)
	}

	content := types.NewBufferContent(id, string(data))
	content.Size = info.Size()
	content.ModTime = info.ModTime()
	h.cache.Add(path, content)
	return content, nil
}

// Warm prefetches ids into the cache with bounded concurrency. Failures
// are ignored here; the pass itself classifies unreadable buffers. Scans
// stay synchronous, Warm only front-loads the I/O.
func (h *Host) Warm(ctx context.Context, ids []types.BufferID) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, id := range ids {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			_, _ = h.ReadBuffer(id)
			return nil
		})
	}
	_ = g.Wait()
}

// CachedBuffers reports how many buffers the cache currently holds.
func (h *Host) CachedBuffers() int {
	return h.cache.Len()
}

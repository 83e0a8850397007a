// Package watch monitors the project tree and triggers a fresh scan pass
// after changes settle. Events are debounced into batches; each batch
// produces at most one rescan, and rescans are rate limited so churny
// build output cannot queue up passes faster than they complete.
package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/standardbeagle/todoview/internal/debug"
	tverrors "github.com/standardbeagle/todoview/internal/errors"
	"github.com/standardbeagle/todoview/internal/scope"
	"github.com/standardbeagle/todoview/internal/types"
)

var errNotDirectory = errors.New("watch root is not a directory")

const (
	// DefaultDebounce is the quiet period before a change batch flushes.
	// Rationale: editors and formatters write files in quick bursts; 300ms
	// absorbs a burst without making results feel stale.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultMinRescanGap floors the interval between consecutive passes.
	// Rationale: a pass re-reads every changed buffer; batches arriving
	// faster than passes complete would otherwise pile up.
	DefaultMinRescanGap = time.Second
)

// EventType represents the type of file system event
type EventType int

const (
	EventCreate EventType = iota
	EventWrite
	EventRemove
	EventRename
)

// Options configures a Watcher.
type Options struct {
	Root         string
	Excluded     []string
	Debounce     time.Duration
	MinRescanGap time.Duration
}

// Watcher monitors a directory tree and invokes the rescan callback after
// changes settle.
type Watcher struct {
	watcher   *fsnotify.Watcher
	root      string
	excluder  *scope.Excluder
	debouncer *eventDebouncer
	limiter   *rate.Limiter
	rescanCh  chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	// Invoked with the settled batch of changed paths
	onRescan func(changed []string)

	// Watch mode statistics
	eventsProcessed int64
	rescans         int64
	errorCount      int64
	lastEventTime   time.Time
	statsMu         sync.RWMutex
}

// New creates a watcher for the tree rooted at opts.Root.
func New(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, tverrors.NewWatchError("init", opts.Root, err)
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinRescanGap <= 0 {
		opts.MinRescanGap = DefaultMinRescanGap
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		watcher:  fsw,
		root:     opts.Root,
		excluder: scope.NewExcluder(opts.Root, opts.Excluded),
		limiter:  rate.NewLimiter(rate.Every(opts.MinRescanGap), 1),
		rescanCh: make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
	}
	w.debouncer = newEventDebouncer(opts.Debounce, w.signalRescan)

	return w, nil
}

// SetOnRescan sets the callback invoked once per settled change batch.
// Must be called before Start.
func (w *Watcher) SetOnRescan(fn func(changed []string)) {
	w.onRescan = fn
}

// Start adds watches for the whole tree and begins processing events.
func (w *Watcher) Start() error {
	info, err := os.Stat(w.root)
	if err != nil {
		return tverrors.NewWatchError("watch", w.root, err)
	}
	if !info.IsDir() {
		return tverrors.NewWatchError("watch", w.root, errNotDirectory)
	}

	if err := w.addWatches(w.root); err != nil {
		return tverrors.NewWatchError("watch", w.root, err)
	}

	w.wg.Add(2)
	go w.processEvents()
	go w.rescanLoop()

	debug.LogWatch("watching %s\n", w.root)
	return nil
}

// Stop stops the watcher and waits for its goroutines to exit. Events
// pending at shutdown are dropped.
func (w *Watcher) Stop() error {
	w.cancel()
	w.debouncer.stop()

	err := w.watcher.Close()
	w.wg.Wait()

	debug.LogWatch("watcher stopped\n")
	if err != nil {
		return tverrors.NewWatchError("close", w.root, err)
	}
	return nil
}

// addWatches recursively adds watches to all relevant directories
func (w *Watcher) addWatches(root string) error {
	// Track visited directories to prevent infinite loops from symlink cycles
	visitedDirs := make(map[string]bool)

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if !info.IsDir() {
			return nil
		}

		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil // Skip directories that can't be resolved
		}
		if visitedDirs[realPath] {
			return filepath.SkipDir
		}
		visitedDirs[realPath] = true

		if path != root && w.excluder.Match(types.BufferID(path)) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			debug.LogWatch("failed to add watch for %s: %v\n", path, err)
			w.incrementStats(0, 1)
			return nil // Continue despite errors
		}
		return nil
	})
}

// processEvents processes file system events from fsnotify
func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			debug.LogWatch("watch error: %v\n", err)
			w.incrementStats(0, 1)
		}
	}
}

// handleEvent handles a single file system event
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	info, err := os.Stat(path)
	if err != nil {
		// Path is gone; a removal still invalidates the current results.
		if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && !w.excluder.Match(types.BufferID(path)) {
			w.debouncer.addEvent(path, EventRemove)
			w.incrementStats(1, 0)
		}
		return
	}

	if info.IsDir() {
		w.handleDirectoryEvent(event, path)
		return
	}

	if w.excluder.Match(types.BufferID(path)) {
		return
	}

	var eventType EventType
	switch {
	case event.Op&fsnotify.Create != 0:
		eventType = EventCreate
	case event.Op&fsnotify.Write != 0:
		eventType = EventWrite
	case event.Op&fsnotify.Remove != 0:
		eventType = EventRemove
	case event.Op&fsnotify.Rename != 0:
		eventType = EventRename
	default:
		return // Ignore other events
	}

	debug.LogWatch("event %v for %s\n", event.Op, path)
	w.debouncer.addEvent(path, eventType)
	w.incrementStats(1, 0)
}

// handleDirectoryEvent extends the watch to newly created directories
func (w *Watcher) handleDirectoryEvent(event fsnotify.Event, path string) {
	if event.Op&fsnotify.Create == 0 {
		return
	}
	if w.excluder.Match(types.BufferID(path)) {
		return
	}
	if err := w.watcher.Add(path); err != nil {
		debug.LogWatch("failed to add watch for new directory %s: %v\n", path, err)
		w.incrementStats(0, 1)
		return
	}
	debug.LogWatch("added watch for new directory %s\n", path)
}

// signalRescan wakes the rescan loop. Coalesces: a pending signal is enough.
func (w *Watcher) signalRescan() {
	select {
	case w.rescanCh <- struct{}{}:
	default:
	}
}

// rescanLoop serializes rescans. The limiter spaces them out; the debouncer
// keeps accumulating while a pass waits, so nothing is lost to the gap.
func (w *Watcher) rescanLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.rescanCh:
		}

		if err := w.limiter.Wait(w.ctx); err != nil {
			return
		}

		changed := w.debouncer.take()
		if len(changed) == 0 {
			continue
		}

		debug.LogWatch("rescanning after %d changed paths\n", len(changed))
		if w.onRescan != nil {
			w.onRescan(changed)
		}
		w.incrementRescans()
	}
}

// incrementStats updates watch mode statistics
func (w *Watcher) incrementStats(events, errors int64) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()

	w.eventsProcessed += events
	w.errorCount += errors
	w.lastEventTime = time.Now()
}

func (w *Watcher) incrementRescans() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.rescans++
}

// GetStats returns current watch mode statistics
func (w *Watcher) GetStats() Stats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()

	return Stats{
		EventsProcessed: w.eventsProcessed,
		Rescans:         w.rescans,
		ErrorCount:      w.errorCount,
		LastEventTime:   w.lastEventTime,
		IsActive:        w.ctx.Err() == nil,
	}
}

// Stats contains statistics about file watching operations
type Stats struct {
	EventsProcessed int64
	Rescans         int64
	ErrorCount      int64
	LastEventTime   time.Time
	IsActive        bool
}

// eventDebouncer batches file events so a burst of writes flushes once
type eventDebouncer struct {
	events   map[string]EventType
	mutex    sync.Mutex
	debounce time.Duration
	timer    *time.Timer
	fire     func()
}

// newEventDebouncer creates a new event debouncer
func newEventDebouncer(debounce time.Duration, fire func()) *eventDebouncer {
	return &eventDebouncer{
		events:   make(map[string]EventType),
		debounce: debounce,
		fire:     fire,
	}
}

// addEvent records an event and re-arms the quiet-period timer
func (d *eventDebouncer) addEvent(path string, eventType EventType) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	// Store the latest event for this path
	d.events[path] = eventType

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.debounce, d.fire)
}

// take drains the accumulated batch, returning changed paths in sorted order
func (d *eventDebouncer) take() []string {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.events) == 0 {
		return nil
	}

	changed := make([]string, 0, len(d.events))
	for path := range d.events {
		changed = append(changed, path)
	}
	sort.Strings(changed)

	d.events = make(map[string]EventType)
	return changed
}

// stop halts a pending flush timer
func (d *eventDebouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}

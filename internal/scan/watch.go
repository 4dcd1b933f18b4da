package scan

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/chorus/internal/config"
)

// Watcher folds a burst of filesystem events into debounced batches of
// changed paths, so a save that touches a dozen files in quick succession
// triggers one re-scan instead of a dozen.
type Watcher struct {
	fsw      *fsnotify.Watcher
	scanner  *Scanner
	debounce time.Duration
	events   chan []string
	errs     chan error
}

// NewWatcher builds a Watcher over the scanner's root, recursively
// registering every directory that isn't excluded. It is a no-op source of
// events (Events/Errors still work, just never fire) when cfg.Index.WatchMode
// is false, so callers can construct it unconditionally.
func NewWatcher(cfg *config.Config, scanner *Scanner) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		scanner:  scanner,
		debounce: time.Duration(cfg.Index.WatchDebounceMs) * time.Millisecond,
		events:   make(chan []string, 1),
		errs:     make(chan error, 1),
	}
	if w.debounce <= 0 {
		w.debounce = 300 * time.Millisecond
	}

	if !cfg.Index.WatchMode {
		return w, nil
	}

	if err := w.addTree(); err != nil {
		fsw.Close()
		return nil, err
	}

	return w, nil
}

// addTree registers every directory under the scan root that the scanner's
// filters don't exclude.
func (w *Watcher) addTree() error {
	files, err := w.scanner.Walk()
	if err != nil {
		return err
	}

	seen := map[string]bool{w.scanner.root: true}
	if err := w.fsw.Add(w.scanner.root); err != nil {
		return err
	}

	for _, f := range files {
		dir := filepath.Dir(f.Path)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}

	return nil
}

// Run consumes raw fsnotify events until ctx is canceled, publishing
// debounced batches of changed absolute paths on Events(). It must be run in
// its own goroutine.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)

	pending := map[string]bool{}
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := make([]string, 0, len(pending))
		for p := range pending {
			batch = append(batch, p)
		}
		pending = map[string]bool{}
		select {
		case w.events <- batch:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				flush()
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[ev.Name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			flush()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				continue
			}
			select {
			case w.errs <- err:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Events yields debounced batches of changed absolute paths.
func (w *Watcher) Events() <-chan []string { return w.events }

// Errors yields watcher-internal errors (e.g. a removed directory the OS
// watch couldn't re-arm).
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close releases the underlying OS watch handles.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

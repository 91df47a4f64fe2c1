// Package confwatcher notifies when the overlay settings file changes.
package confwatcher

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long the file must stay quiet before a change is
// reported. Every event restarts it, so the last write of a burst is
// always the one reported.
const debounce = 100 * time.Millisecond

// ConfWatcher watches a settings file. The file itself may be missing;
// its directory must exist. Editors that replace the file instead of
// writing it in place are handled.
type ConfWatcher struct {
	FilePath string

	inner        *fsnotify.Watcher
	absolutePath string

	// in
	terminate chan struct{}

	// out
	signal chan struct{}
	done   chan struct{}
}

// Initialize starts watching.
func (w *ConfWatcher) Initialize() error {
	var err error
	w.absolutePath, err = filepath.Abs(w.FilePath)
	if err != nil {
		return err
	}

	parent := filepath.Dir(w.absolutePath)
	if _, err = os.Stat(parent); err != nil {
		return err
	}

	w.inner, err = fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	err = w.inner.Add(parent)
	if err != nil {
		w.inner.Close() //nolint:errcheck
		return err
	}

	w.terminate = make(chan struct{})
	w.signal = make(chan struct{})
	w.done = make(chan struct{})

	go w.run()

	return nil
}

// Close stops watching.
func (w *ConfWatcher) Close() {
	close(w.terminate)
	<-w.done
}

func (w *ConfWatcher) run() {
	defer close(w.done)

	previous, _ := filepath.EvalSymlinks(w.absolutePath)
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

outer:
	for {
		select {
		case event := <-w.inner.Events:
			current, _ := filepath.EvalSymlinks(w.absolutePath)
			eventPath, _ := filepath.Abs(event.Name)
			eventPath, _ = filepath.EvalSymlinks(eventPath)

			if current == "" {
				// removed: the next create or write triggers
				previous = ""
				continue
			}

			if current != previous ||
				(eventPath == current && event.Op.Has(fsnotify.Write)) ||
				(eventPath == current && event.Op.Has(fsnotify.Create)) {
				previous = current
				timer.Reset(debounce)
			}

		case <-timer.C:
			select {
			case w.signal <- struct{}{}:
			case <-w.terminate:
				break outer
			}

		case <-w.inner.Errors:
			break outer

		case <-w.terminate:
			break outer
		}
	}

	close(w.signal)
	w.inner.Close() //nolint:errcheck
}

// Watch returns a channel that receives after the settings file changed.
// It is closed when the watcher stops.
func (w *ConfWatcher) Watch() chan struct{} {
	return w.signal
}

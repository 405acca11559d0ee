package ingest

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/agenthands/cograph/internal/debounce"
	"github.com/agenthands/cograph/internal/errors"
	"github.com/agenthands/cograph/internal/logger"
)

// ReloadCallback runs after every successful reload.
type ReloadCallback func(*Snapshot)

// Watcher reloads a Dataset when its records file changes. Bursts of events
// (editors writing in several steps, rename-over-save) are coalesced.
type Watcher struct {
	dataset   *Dataset
	watcher   *fsnotify.Watcher
	coalescer *debounce.Coalescer
	target    string

	mu        sync.RWMutex
	callbacks []ReloadCallback
	started   bool
	done      chan struct{}
}

// NewWatcher watches the directory holding the dataset's file, so the watch
// survives the file being replaced.
func NewWatcher(d *Dataset, coalescer *debounce.Coalescer) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	target, err := filepath.Abs(d.Path())
	if err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "resolving %s", d.Path())
	}
	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(target))
	}

	if coalescer == nil {
		coalescer = debounce.New(debounce.DefaultWindow)
	}
	return &Watcher{
		dataset:   d,
		watcher:   fw,
		coalescer: coalescer,
		target:    target,
		done:      make(chan struct{}),
	}, nil
}

// OnReload registers a callback.
func (w *Watcher) OnReload(cb ReloadCallback) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.callbacks = append(w.callbacks, cb)
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.watchLoop()
}

func (w *Watcher) watchLoop() {
	log := logger.Named("watcher")
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			log.Debugw("Records file changed",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.coalescer.Trigger(w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.target
}

func (w *Watcher) reload() {
	snap, err := w.dataset.Load()
	if err != nil {
		logger.Named("watcher").Errorw("Records reload failed", logger.FieldError, err)
		return
	}

	w.mu.RLock()
	callbacks := make([]ReloadCallback, len(w.callbacks))
	copy(callbacks, w.callbacks)
	w.mu.RUnlock()

	for _, cb := range callbacks {
		cb(snap)
	}
}

// Stop ends watching and cancels any pending reload.
func (w *Watcher) Stop() error {
	w.coalescer.Stop()
	err := w.watcher.Close()

	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()
	if started {
		<-w.done
	}
	return err
}

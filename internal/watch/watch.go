// Package watch monitors an observation directory and reports debounced
// changes to TOML observation files.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/papapumpkin/graha/internal/ephemeris"
)

// DefaultDebounce is how long a file must be quiet before a change is sent.
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected.
type ChangeKind int

const (
	ChangeModified ChangeKind = iota // observation file written or created
	ChangeRemoved                    // observation file deleted
	ChangeInvalid                    // file present but failed to parse
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	case ChangeInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("ChangeKind(%d)", int(k))
	}
}

// Change is a settled change to one observation file.
type Change struct {
	Kind         ChangeKind
	Name         string // file name without the .toml extension
	File         string
	Observations *ephemeris.Observations // set for ChangeModified
	Err          error                   // set for ChangeInvalid
}

// Watcher monitors a directory of observation files using fsnotify.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	Changes  <-chan Change

	changes  chan Change
	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	watcher  *fsnotify.Watcher
}

// New creates a watcher for dir. Call Start to begin delivering changes.
func New(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	ch := make(chan Change, 16)
	return &Watcher{
		Dir:      dir,
		Debounce: DefaultDebounce,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		stop:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching the directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		w.watcher.Close()
		close(w.done)
		return fmt.Errorf("watch: add %s: %w", w.Dir, err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher, waits for the loop to exit and closes Changes.
// Pending changes are dropped if nobody is reading.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		w.watcher.Close()
		<-w.done
		close(w.changes)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isObservationFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case now := <-ticker.C:
			for file, t := range pending {
				if now.Sub(t) < debounce {
					continue
				}
				delete(pending, file)
				if !w.emit(classify(file)) {
					return
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal.
		}
	}
}

// emit delivers c unless the watcher is stopping.
func (w *Watcher) emit(c Change) bool {
	select {
	case w.changes <- c:
		return true
	case <-w.stop:
		return false
	}
}

func isObservationFile(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.HasSuffix(base, ".toml")
}

func classify(file string) Change {
	c := Change{
		File: file,
		Name: strings.TrimSuffix(filepath.Base(file), ".toml"),
	}
	if _, err := os.Stat(file); os.IsNotExist(err) {
		c.Kind = ChangeRemoved
		return c
	}
	obs, err := ephemeris.LoadObservations(file)
	if err != nil {
		c.Kind = ChangeInvalid
		c.Err = err
		return c
	}
	c.Kind = ChangeModified
	c.Observations = obs
	return c
}

package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind tells a reload handler what sort of file changed.
type ChangeKind uint8

const (
	ChangePrefab ChangeKind = iota + 1
	ChangeScript
	ChangeLevel
)

func (k ChangeKind) String() string {
	switch k {
	case ChangePrefab:
		return "prefab"
	case ChangeScript:
		return "script"
	case ChangeLevel:
		return "level"
	default:
		return "unknown"
	}
}

type Change struct {
	Path string
	Kind ChangeKind
}

// ClassifyChange maps a path to the kind of reload it needs.
func ClassifyChange(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangePrefab, true
	case ".tengo":
		return ChangeScript, true
	case ".json":
		return ChangeLevel, true
	}
	return 0, false
}

func IsSpecFile(path string) bool {
	k, ok := ClassifyChange(path)
	return ok && k == ChangePrefab
}

func IsScriptFile(path string) bool {
	k, ok := ClassifyChange(path)
	return ok && k == ChangeScript
}

func IsLevelFile(path string) bool {
	k, ok := ClassifyChange(path)
	return ok && k == ChangeLevel
}

// DefaultDebounce folds editor save bursts for one file into one change.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports prefab, script and level files that changed on disk.
type Watcher struct {
	Changes chan Change
	Errors  chan error

	watcher  *fsnotify.Watcher
	debounce time.Duration
	closeCh  chan struct{}
	once     sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		Changes:  make(chan Change, 16),
		Errors:   make(chan error, 1),
		watcher:  w,
		debounce: DefaultDebounce,
		closeCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Changes and Errors are closed once the event
// loop has exited.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Changes)

	d := debouncer{window: w.debounce, last: make(map[string]time.Time)}
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := d.accept(event, time.Now())
			if !ok {
				continue
			}
			select {
			case w.Changes <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

type debouncer struct {
	window time.Duration
	last   map[string]time.Time
}

func (d *debouncer) accept(event fsnotify.Event, now time.Time) (Change, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return Change{}, false
	}
	kind, ok := ClassifyChange(event.Name)
	if !ok {
		return Change{}, false
	}
	if t, seen := d.last[event.Name]; seen && now.Sub(t) < d.window {
		return Change{}, false
	}
	d.last[event.Name] = now
	return Change{Path: event.Name, Kind: kind}, true
}

package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

type Watcher struct {
	Events chan string
	Errors chan error

	watcher *fsnotify.Watcher
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func OpenWatcher(spec WatchSpec, match func(string) bool, dirs ...string) (*Watcher, error) {
	if spec.UsePolling {
		return NewPollWatcher(spec.Interval, match, dirs...)
	}
	return NewWatcher(match, dirs...)
}

// NewWatcher watches dirs (not recursively) through fsnotify. A nil match
// accepts every file.
func NewWatcher(match func(string) bool, dirs ...string) (*Watcher, error) {
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

	watcher := newWatcher()
	watcher.watcher = w
	go watcher.run(match)
	return watcher, nil
}

func NewPollWatcher(interval time.Duration, match func(string) bool, dirs ...string) (*Watcher, error) {
	for _, dir := range dirs {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}
	watcher := newWatcher()
	go watcher.poll(interval, match, dirs, scan(dirs, match))
	return watcher, nil
}

func newWatcher() *Watcher {
	return &Watcher{
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		if w.watcher != nil {
			err = w.watcher.Close()
		}
		<-w.done
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run(match func(string) bool) {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if match != nil && !match(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			w.send(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) poll(interval time.Duration, match func(string) bool, dirs []string, seen map[string]time.Time) {
	defer close(w.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cur := scan(dirs, match)
			for name, mod := range cur {
				if prev, ok := seen[name]; !ok || !prev.Equal(mod) {
					w.send(name)
				}
			}
			for name := range seen {
				if _, ok := cur[name]; !ok {
					w.send(name)
				}
			}
			seen = cur
		case <-w.closeCh:
			return
		}
	}
}

func scan(dirs []string, match func(string) bool) map[string]time.Time {
	out := make(map[string]time.Time)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := filepath.Join(dir, e.Name())
			if match != nil && !match(name) {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			out[name] = info.ModTime()
		}
	}
	return out
}

func (w *Watcher) send(name string) {
	select {
	case w.Events <- name:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

// Dirs returns dir and every directory below it, skipping hidden and
// underscore-prefixed directories and any in skip.
func Dirs(root string, skip ...string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
			return filepath.SkipDir
		}
		for _, s := range skip {
			if filepath.Clean(path) == filepath.Clean(s) {
				return filepath.SkipDir
			}
		}
		out = append(out, path)
		return nil
	})
	return out, err
}

func IsConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return true
	}
	return false
}

package config

import (
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events an editor save produces.
const reloadDebounce = 150 * time.Millisecond

// Watcher reports changes to a set of config files.
// Parent directories are watched so atomic-rename saves are seen.
type Watcher struct {
	fs      *fsnotify.Watcher
	files   []string
	changes chan string
	errs    chan error
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching files. Files that do not exist yet are still
// watched through their directory.
func Watch(files []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:      fw,
		changes: make(chan string, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}

	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		w.files = append(w.files, abs)

		dir := filepath.Dir(abs)
		if slices.Contains(fw.WatchList(), dir) {
			continue
		}
		if err := fw.Add(dir); err != nil {
			continue // directory missing; nothing to watch there
		}
	}

	go w.run()
	return w, nil
}

// Changes delivers the path of a changed config file. Bursts are coalesced.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Errors delivers watcher failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	var timer *time.Timer
	var last string

	fire := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			name, ok := w.relevant(ev)
			if !ok {
				continue
			}
			last = name
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			select {
			case w.changes <- last:
			default: // a change is already queued
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

// relevant reports whether ev touches a watched file, returning its path.
func (w *Watcher) relevant(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}
	return name, slices.Contains(w.files, name)
}

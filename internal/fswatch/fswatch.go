// Package fswatch is the optional fs-event nudger (SPEC_FULL.md §2 C15): an
// fsnotify watch over the input tree that wakes the scanner loop early,
// collapsing bursts of events into a single debounced signal. It is never a
// correctness requirement — the scanner's polling tick always fires
// regardless (spec §4.2) — grounded on the teacher's file_monitor.go, scaled
// down from that file's per-library event-to-database pipeline to a single
// "something changed" pulse.
package fswatch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// Nudger watches root (and every subdirectory discovered under it) and
// delivers a debounced pulse on Nudges whenever fsnotify reports activity.
type Nudger struct {
	watcher *fsnotify.Watcher
	log     hclog.Logger
	nudges  chan struct{}
	debounce time.Duration
}

// New creates a Nudger rooted at root. A failure here is never fatal to the
// caller (spec §4.2) — the caller logs and proceeds without C15.
func New(root string, debounce time.Duration, log hclog.Logger) (*Nudger, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	n := &Nudger{
		watcher:  watcher,
		log:      log,
		nudges:   make(chan struct{}, 1),
		debounce: debounce,
	}

	if err := n.addRecursive(root); err != nil {
		log.Warn("fs watch: failed to add some directories", "root", root, "err", err)
	}

	go n.run()
	return n, nil
}

// Nudges delivers one pulse per debounce window of filesystem activity. It
// is never closed while the Nudger is open; callers select on it alongside a
// ticker and ctx.Done() (spec §4.2).
func (n *Nudger) Nudges() <-chan struct{} {
	return n.nudges
}

// Close stops watching and releases the underlying inotify/kqueue handle.
func (n *Nudger) Close() error {
	return n.watcher.Close()
}

func (n *Nudger) addRecursive(root string) error {
	var firstErr error
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return nil
		}
		if info.IsDir() {
			if addErr := n.watcher.Add(path); addErr != nil && firstErr == nil {
				firstErr = addErr
			}
		}
		return nil
	})
	return firstErr
}

func (n *Nudger) run() {
	var pending bool
	timer := time.NewTimer(n.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case event, ok := <-n.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := n.watcher.Add(event.Name); err != nil {
						n.log.Debug("fs watch: failed to add new directory", "path", event.Name, "err", err)
					}
				}
			}
			if !pending {
				pending = true
				timer.Reset(n.debounce)
			}

		case err, ok := <-n.watcher.Errors:
			if !ok {
				return
			}
			n.log.Warn("fs watch: watcher error", "err", err)

		case <-timer.C:
			pending = false
			select {
			case n.nudges <- struct{}{}:
			default:
			}
		}
	}
}

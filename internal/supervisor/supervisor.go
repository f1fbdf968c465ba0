// Package supervisor owns the shared process context and spawns the
// scanner and processor loops as peer long-running tasks (SPEC_FULL.md §2
// C10), grounded on the teacher's cmd/viewra/main.go signal-handling +
// context.WithCancel shutdown idiom — adapted here to a plain
// sync.WaitGroup + error channel joiner (see DESIGN.md: no errgroup
// dependency appears anywhere in the retrieved corpus).
package supervisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/rodrigomideac/fixmylib/internal/catalogue"
	"github.com/rodrigomideac/fixmylib/internal/clock"
	"github.com/rodrigomideac/fixmylib/internal/config"
	"github.com/rodrigomideac/fixmylib/internal/fswatch"
	"github.com/rodrigomideac/fixmylib/internal/loadsampler"
	"github.com/rodrigomideac/fixmylib/internal/preset"
	"github.com/rodrigomideac/fixmylib/internal/processorloop"
	"github.com/rodrigomideac/fixmylib/internal/scannerloop"
)

const (
	fsWatchDebounce     = 2 * time.Second
	loadSamplerInterval = 30 * time.Second
)

// Supervisor builds the shared context, runs schema migration, and spawns
// the scanner and processor loops as peer tasks (spec §4.8).
type Supervisor struct {
	Config *config.Config
	Store  *catalogue.Store
	Logger hclog.Logger
}

// New returns a Supervisor.
func New(cfg *config.Config, store *catalogue.Store, logger hclog.Logger) *Supervisor {
	return &Supervisor{Config: cfg, Store: store, Logger: logger}
}

// Run migrates the schema, spawns the scanner loop, processor loop, and the
// optional fs-event nudger / load sampler under ctx, and blocks until both
// loops return. It returns the first non-nil error either loop reported; a
// nil return means ctx was cancelled cleanly (spec §4.8, §6 exit codes).
func (s *Supervisor) Run(ctx context.Context) error {
	if err := s.Store.Migrate(); err != nil {
		return fmt.Errorf("supervisor: schema migration: %w", err)
	}

	registry := preset.NewRegistry(s.Config.EnableThumbnailPreset, s.Config.EnablePreviewPreset)

	var nudges <-chan struct{}
	if s.Config.EnableFSWatch {
		nudger, err := fswatch.New(s.Config.InputFolder, fsWatchDebounce, s.Logger.Named("fswatch"))
		if err != nil {
			s.Logger.Warn("supervisor: fs watch setup failed, scanner will rely on its poll ticker only", "err", err)
		} else {
			defer nudger.Close()
			nudges = nudger.Nudges()
		}
	}

	if s.Config.EnableLoadSampler {
		go loadsampler.Run(ctx, loadSamplerInterval, s.Logger.Named("loadsampler"))
	}

	scanLoop := scannerloop.New(s.Config, s.Store, s.Logger.Named("scanner"), clock.Real{}, nudges)
	procLoop := processorloop.New(s.Config, s.Store, s.Logger.Named("processor"), clock.Real{}, registry)

	type outcome struct {
		name string
		err  error
	}
	results := make(chan outcome, 2)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		results <- outcome{"scanner", scanLoop.Run(ctx)}
	}()
	go func() {
		defer wg.Done()
		results <- outcome{"processor", procLoop.Run(ctx)}
	}()

	wg.Wait()
	close(results)

	var firstErr error
	for r := range results {
		if r.err != nil {
			s.Logger.Error("supervisor: task returned an error", "task", r.name, "err", r.err)
			if firstErr == nil {
				firstErr = r.err
			}
		}
	}
	return firstErr
}

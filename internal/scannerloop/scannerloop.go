// Package scannerloop is the filesystem discovery loop (SPEC_FULL.md §2 C8):
// folder pass then file pass per scan job, bounded-channel fan-in to a single
// database writer, grounded on the teacher's parallel_scanner.go worker-pool
// shape but built around the File/Folder/ScanJob schema this spec names
// instead of the teacher's library/MediaFile schema.
package scannerloop

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/rodrigomideac/fixmylib/internal/catalogue"
	"github.com/rodrigomideac/fixmylib/internal/clock"
	"github.com/rodrigomideac/fixmylib/internal/config"
	"github.com/rodrigomideac/fixmylib/internal/pathmodel"
)

// Loop runs the folder pass then file pass for the oldest unfinished scan
// job (or a freshly created one), sleeping seconds_between_file_scans
// between iterations (spec §4.2).
type Loop struct {
	Store  *catalogue.Store
	Config *config.Config
	Clock  clock.Clock
	Logger hclog.Logger

	// Nudges optionally wakes the sleep early (C15); nil disables it and
	// the loop runs on the ticker alone.
	Nudges <-chan struct{}
}

// New returns a Loop. nudges may be nil if C15 is disabled.
func New(cfg *config.Config, store *catalogue.Store, logger hclog.Logger, clk clock.Clock, nudges <-chan struct{}) *Loop {
	return &Loop{Store: store, Config: cfg, Clock: clk, Logger: logger, Nudges: nudges}
}

// Run loops until ctx is cancelled. A failed iteration is logged and
// retried on the next tick — only ctx cancellation ends the loop.
func (l *Loop) Run(ctx context.Context) error {
	interval := time.Duration(l.Config.SecondsBetweenFileScans) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := l.runOnce(ctx); err != nil {
			l.Logger.Error("scanner: iteration failed, will retry next tick", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-l.Nudges:
		}
	}
}

func (l *Loop) runOnce(ctx context.Context) error {
	job, err := l.resolveScanJob()
	if err != nil {
		return fmt.Errorf("resolve scan job: %w", err)
	}

	if err := l.folderPass(job); err != nil {
		return err
	}
	if err := l.filePass(ctx, job); err != nil {
		return err
	}
	if err := l.finishScanJob(job); err != nil {
		return fmt.Errorf("finish scan job: %w", err)
	}
	return nil
}

// resolveScanJob loads the oldest unfinished scan job, or creates one rooted
// at input_folder if none exists (spec §4.2 step 1).
func (l *Loop) resolveScanJob() (catalogue.ScanJob, error) {
	unfinished, err := l.Store.ListUnfinishedScanJobs()
	if err != nil {
		return catalogue.ScanJob{}, err
	}
	if len(unfinished) > 0 {
		return unfinished[0], nil
	}

	job := catalogue.ScanJob{
		ID:        uuid.NewString(),
		RootPath:  l.Config.InputFolder,
		CreatedAt: l.Clock.Now(),
	}
	if err := l.Store.UpsertScanJob(job); err != nil {
		return catalogue.ScanJob{}, err
	}
	return job, nil
}

// folderPass walks every directory under input_folder and upserts it with
// the current job's ID. Per-entry walk errors are logged and skipped; a
// transient store error aborts the pass (spec §4.2).
func (l *Loop) folderPass(job catalogue.ScanJob) error {
	err := filepath.WalkDir(l.Config.InputFolder, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			l.Logger.Warn("scanner: folder walk entry error", "path", path, "err", walkErr)
			return nil
		}
		if !d.IsDir() {
			return nil
		}

		props := pathmodel.NewFolderProps(l.Config.InputFolder, path)
		folder := catalogue.Folder{
			FullPath:       props.FullPath,
			RelativePath:   props.RelativePath,
			Name:           props.Name,
			ParentFullPath: props.ParentFullPath,
			JobID:          job.ID,
		}

		if uerr := l.Store.UpsertFolder(folder); uerr != nil {
			if catalogue.IsTransient(uerr) {
				return fmt.Errorf("folder pass: %w", uerr)
			}
			l.Logger.Warn("scanner: failed to upsert folder", "path", path, "err", uerr)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// filePass reads every known folder from the store and, for each, walks one
// level deep, fanning discovered files onto a bounded channel drained by a
// single writer (spec §4.2 step 2).
func (l *Loop) filePass(ctx context.Context, job catalogue.ScanJob) error {
	folders, err := l.Store.ListFolders()
	if err != nil {
		return fmt.Errorf("file pass: %w", err)
	}

	foldersChan := make(chan catalogue.Folder, len(folders))
	for _, f := range folders {
		foldersChan <- f
	}
	close(foldersChan)

	filesChan := make(chan catalogue.File, 10)
	producerCtx, cancelProducers := context.WithCancel(ctx)
	defer cancelProducers()

	var consumeErr error
	consumeDone := make(chan struct{})
	go func() {
		defer close(consumeDone)
		for f := range filesChan {
			if uerr := l.Store.UpsertFile(f); uerr != nil {
				if catalogue.IsTransient(uerr) {
					if consumeErr == nil {
						consumeErr = fmt.Errorf("file pass: %w", uerr)
						cancelProducers()
					}
					continue
				}
				l.Logger.Warn("scanner: failed to upsert file", "path", f.FullPath, "err", uerr)
			}
		}
	}()

	workers := l.Config.ScannerThreads
	if workers < 1 {
		workers = 1
	}
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for folder := range foldersChan {
				select {
				case <-producerCtx.Done():
					return
				default:
				}
				l.scanFolderEntries(producerCtx, job, folder, filesChan)
			}
		}()
	}
	wg.Wait()
	close(filesChan)
	<-consumeDone

	return consumeErr
}

// scanFolderEntries walks folder one level deep and sends a File for every
// regular file found. Stat/read failures are logged and skipped (spec §4.2
// "per-entry errors... are logged and skipped").
func (l *Loop) scanFolderEntries(ctx context.Context, job catalogue.ScanJob, folder catalogue.Folder, out chan<- catalogue.File) {
	entries, err := os.ReadDir(folder.FullPath)
	if err != nil {
		l.Logger.Warn("scanner: failed to read directory", "path", folder.FullPath, "err", err)
		return
	}

	now := l.Clock.Now()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			l.Logger.Warn("scanner: failed to stat entry", "name", entry.Name(), "folder", folder.FullPath, "err", err)
			continue
		}

		fullPath := filepath.Join(folder.FullPath, entry.Name())
		props := pathmodel.NewFileProps(l.Config.InputFolder, fullPath, info.Size())
		file := catalogue.File{
			FullPath:       props.FullPath,
			FolderFullPath: folder.FullPath,
			RelativePath:   props.RelativePath,
			Size:           props.Size,
			Stem:           props.Stem,
			Extension:      props.Extension,
			Name:           props.Name,
			CreatedAt:      now,
			UpdatedAt:      now,
			ModifiedAt:     info.ModTime().UTC().Truncate(time.Microsecond),
			JobID:          job.ID,
		}

		select {
		case out <- file:
		case <-ctx.Done():
			return
		}
	}
}

func (l *Loop) finishScanJob(job catalogue.ScanJob) error {
	now := l.Clock.Now()
	job.FinishedAt = &now
	return l.Store.UpsertScanJob(job)
}

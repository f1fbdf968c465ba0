// Package processorloop is the per-preset job synthesis and processing loop
// (SPEC_FULL.md §2 C9): Phase A ensures a pending FileJob exists for every
// outstanding file, Phase B pages pending (File, FileJob) pairs, probes,
// classifies, dispatches to the image/video pools, and writes results back.
// Grounded on the teacher's batch-then-paginate shape in
// parallel_scanner.go's BatchProcessor, rebuilt around this spec's
// File/FileJob schema and its Phase A/Phase B split.
package processorloop

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/rodrigomideac/fixmylib/internal/catalogue"
	"github.com/rodrigomideac/fixmylib/internal/clock"
	"github.com/rodrigomideac/fixmylib/internal/config"
	"github.com/rodrigomideac/fixmylib/internal/imageworker"
	"github.com/rodrigomideac/fixmylib/internal/media"
	"github.com/rodrigomideac/fixmylib/internal/pathmodel"
	"github.com/rodrigomideac/fixmylib/internal/preset"
	"github.com/rodrigomideac/fixmylib/internal/probe"
	"github.com/rodrigomideac/fixmylib/internal/videoworker"
	"github.com/rodrigomideac/fixmylib/internal/workerpool"
)

const pageSize = 100

// Loop runs Phase A/Phase B for every enabled preset, sleeping
// seconds_between_processor_runs between iterations (spec §4.6).
type Loop struct {
	Store   *catalogue.Store
	Config  *config.Config
	Clock   clock.Clock
	Logger  hclog.Logger
	Presets *preset.Registry
	Prober  *probe.Prober

	ImagePool *imageworker.Pool
	VideoPool *videoworker.Pool
}

// New wires a Loop with fixed-size image/video pools sized per config.
func New(cfg *config.Config, store *catalogue.Store, logger hclog.Logger, clk clock.Clock, presets *preset.Registry) *Loop {
	return &Loop{
		Store:     store,
		Config:    cfg,
		Clock:     clk,
		Logger:    logger,
		Presets:   presets,
		Prober:    probe.New(),
		ImagePool: imageworker.New(cfg.ImageConverterThreads),
		VideoPool: videoworker.New(cfg.VideoConverterThreads),
	}
}

// Run loops until ctx is cancelled. A failed iteration is logged and
// retried on the next tick.
func (l *Loop) Run(ctx context.Context) error {
	interval := time.Duration(l.Config.SecondsBetweenProcessorRuns) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := l.runOnce(ctx); err != nil {
			l.Logger.Error("processor: iteration failed, will retry next tick", "err", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (l *Loop) runOnce(ctx context.Context) error {
	var firstErr error
	for _, policy := range l.Presets.Enabled() {
		if err := l.runPreset(ctx, policy); err != nil {
			l.Logger.Error("processor: preset iteration failed", "preset", policy.Name, "err", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (l *Loop) runPreset(ctx context.Context, policy preset.Policy) error {
	if err := l.synthesizeJobs(policy); err != nil {
		return fmt.Errorf("phase a (%s): %w", policy.Name, err)
	}
	if err := l.processPending(ctx, policy); err != nil {
		return fmt.Errorf("phase b (%s): %w", policy.Name, err)
	}
	return nil
}

// synthesizeJobs is Phase A: page files without a finished FileJob for this
// preset and ensure a pending row exists for each (spec §4.6).
func (l *Loop) synthesizeJobs(policy preset.Policy) error {
	offset := 0
	for {
		files, err := l.Store.PageFilesWithoutFinishedJob(policy.Name, offset, pageSize)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return nil
		}

		now := l.Clock.Now()
		for _, f := range files {
			if err := l.Store.EnsurePendingFileJob(f.FullPath, policy.Name, now); err != nil {
				if catalogue.IsTransient(err) {
					return err
				}
				l.Logger.Warn("processor: failed to ensure pending file job",
					"path", f.FullPath, "preset", policy.Name, "err", err)
			}
		}
		offset += pageSize
	}
}

// processPending is Phase B: page pending (File, FileJob) pairs, process
// each page, and continue until an empty page returns. The offset advances
// by the page limit on every iteration even though completed rows leave the
// pending set — the known "can skip rows under concurrent completion"
// caveat the design notes flag rather than silently fix (spec §9).
func (l *Loop) processPending(ctx context.Context, policy preset.Policy) error {
	offset := 0
	for {
		pairs, err := l.Store.PagePending(policy.Name, offset, pageSize)
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			return nil
		}
		if err := l.processPage(ctx, policy, pairs); err != nil {
			return err
		}
		offset += pageSize
	}
}

type probedPair struct {
	pair     catalogue.FilePendingPair
	mimeType string
	probeErr error
}

// processPage probes every pair, classifies by MIME into image/video/other,
// dispatches image/video pairs to their pools in parallel, synthesises
// other/probe-failed results inline, and bulk-writes the merged outcome
// (spec §4.6 steps 1-6).
func (l *Loop) processPage(ctx context.Context, policy preset.Policy, pairs []catalogue.FilePendingPair) error {
	probeWorkers := runtime.NumCPU()
	if probeWorkers > len(pairs) {
		probeWorkers = len(pairs)
	}
	probed := workerpool.Run(probeWorkers, pairs, func(p catalogue.FilePendingPair) probedPair {
		result, err := l.Prober.Probe(ctx, p.File.FullPath)
		return probedPair{pair: p, mimeType: result.MIMEType, probeErr: err}
	})

	now := l.Clock.Now()
	jobs := make([]catalogue.FileJob, len(probed))

	var images, videos []media.FileToBeProcessed
	var imageIdx, videoIdx []int

	for i, pf := range probed {
		if pf.probeErr != nil {
			jobs[i] = terminalJob(pf.pair.File, policy.Name, now, false, "", fmt.Sprintf("probe failed: %v", pf.probeErr))
			continue
		}
		switch {
		case strings.HasPrefix(pf.mimeType, "image/"):
			images = append(images, l.toFileToBeProcessed(pf.pair.File, policy, "image"))
			imageIdx = append(imageIdx, i)
		case strings.HasPrefix(pf.mimeType, "video/"):
			videos = append(videos, l.toFileToBeProcessed(pf.pair.File, policy, "video"))
			videoIdx = append(videoIdx, i)
		default:
			jobs[i] = terminalJob(pf.pair.File, policy.Name, now, true, "", "not image or video: "+pf.mimeType)
		}
	}

	var imageResults, videoResults []media.ProcessingResult
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		imageResults = l.ImagePool.Process(ctx, images, policy.ImageGeometry)
	}()
	go func() {
		defer wg.Done()
		videoResults = l.VideoPool.Process(ctx, videos)
	}()
	wg.Wait()

	for k, idx := range imageIdx {
		jobs[idx] = resultJob(probed[idx].pair.File, policy.Name, imageResults[k])
	}
	for k, idx := range videoIdx {
		jobs[idx] = resultJob(probed[idx].pair.File, policy.Name, videoResults[k])
	}

	return l.Store.BulkUpsertFileJobs(jobs)
}

func (l *Loop) toFileToBeProcessed(f catalogue.File, policy preset.Policy, kind string) media.FileToBeProcessed {
	ext := ".jpg"
	if kind == "video" {
		ext = ".mp4"
	}
	relDir := filepath.Dir(f.RelativePath)
	outputPath := filepath.Join(l.Config.OutputFolder, policy.Name, relDir, f.Stem+ext)
	return media.FileToBeProcessed{
		Source:     pathmodel.NewFileProps(l.Config.InputFolder, f.FullPath, f.Size),
		OutputDir:  filepath.Dir(outputPath),
		OutputPath: outputPath,
	}
}

func terminalJob(f catalogue.File, presetName string, finishedAt time.Time, succeeded bool, command, log string) catalogue.FileJob {
	s := succeeded
	return catalogue.FileJob{
		FileFullPath: f.FullPath,
		PresetName:   presetName,
		FinishedAt:   &finishedAt,
		Command:      &command,
		CommandLog:   &log,
		HasSucceeded: &s,
	}
}

func resultJob(f catalogue.File, presetName string, res media.ProcessingResult) catalogue.FileJob {
	return terminalJob(f, presetName, res.FinishedAt, res.Succeeded, res.Command, res.Log)
}

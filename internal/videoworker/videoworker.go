// Package videoworker is the bounded parallel video transcode pool (C7)
// implementing the HW→SW fallback state machine (spec §4.5), grounded on
// the teacher's hardware_detector.go (vaapi device path, libx264 software
// encoder name) for the two encode paths' vocabulary.
package videoworker

import (
	"context"
	"fmt"

	"github.com/rodrigomideac/fixmylib/internal/media"
	"github.com/rodrigomideac/fixmylib/internal/runner"
	"github.com/rodrigomideac/fixmylib/internal/workerpool"
)

// VAAPIDevice is the hardware-acceleration device used for the HW attempt
// (spec §6).
const VAAPIDevice = "/dev/dri/renderD128"

// Pool transcodes videos via the HW→SW state machine: attempt vaapi first,
// fall back to libx264 software encoding only if HW fails, recording an FPS
// metric parsed from whichever attempt succeeded (spec §4.5).
type Pool struct {
	Workers int
	Runner  *runner.Runner
}

// New returns a Pool with workers fixed-size workers.
func New(workers int) *Pool {
	return &Pool{Workers: workers, Runner: runner.New()}
}

// Process transcodes every item in files, preserving index alignment with
// the result slice (spec §4.5, §5).
func (p *Pool) Process(ctx context.Context, files []media.FileToBeProcessed) []media.ProcessingResult {
	return workerpool.Run(p.Workers, files, func(f media.FileToBeProcessed) media.ProcessingResult {
		return p.processOne(ctx, f)
	})
}

func (p *Pool) processOne(ctx context.Context, f media.FileToBeProcessed) media.ProcessingResult {
	mkdir := fmt.Sprintf("mkdir -p %q", f.OutputDir)

	hw := p.Runner.Run(ctx, "/", append([]string{mkdir}, hwLines(f)...))
	if hw.Succeeded {
		return finalize(hw)
	}

	sw := p.Runner.Run(ctx, "/", append([]string{mkdir}, swLines(f)...))
	return finalize(sw)
}

func finalize(res runner.Result) media.ProcessingResult {
	out := media.ProcessingResult{
		Command:    res.Command,
		Log:        res.Log,
		Succeeded:  res.Succeeded,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
	}
	if res.Succeeded {
		if fps, ok := ParseMeanFPS(res.Log); ok {
			out.Metrics = &media.VideoMetrics{FPS: fps}
		}
	}
	return out
}

func hwLines(f media.FileToBeProcessed) []string {
	return []string{
		fmt.Sprintf("ffmpeg -y -vaapi_device %s -i %q -vf 'format=nv12,hwupload' -c:v h264_vaapi %q",
			VAAPIDevice, f.Source.FullPath, f.OutputPath),
		tagAndTouch(f),
	}
}

func swLines(f media.FileToBeProcessed) []string {
	return []string{
		fmt.Sprintf("ffmpeg -y -i %q -c:v libx264 %q", f.Source.FullPath, f.OutputPath),
		tagAndTouch(f),
	}
}

func tagAndTouch(f media.FileToBeProcessed) string {
	return fmt.Sprintf("exiftool -TagsFromFile %q -overwrite_original %q && touch -r %q %q",
		f.Source.FullPath, f.OutputPath, f.Source.FullPath, f.OutputPath)
}

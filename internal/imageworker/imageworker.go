// Package imageworker is the bounded parallel image transcode pool (C6),
// grounded on the teacher's exec.CommandContext idiom via internal/runner,
// generalized through internal/workerpool's fixed fan-out helper.
package imageworker

import (
	"context"
	"fmt"

	"github.com/rodrigomideac/fixmylib/internal/media"
	"github.com/rodrigomideac/fixmylib/internal/runner"
	"github.com/rodrigomideac/fixmylib/internal/workerpool"
)

// Pool transcodes images: one CommandRunner invocation per file that
// creates the output directory, resizes to the preset's geometry, and
// copies the source mtime onto the destination (spec §4.5).
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
func (p *Pool) Process(ctx context.Context, files []media.FileToBeProcessed, geometry string) []media.ProcessingResult {
	return workerpool.Run(p.Workers, files, func(f media.FileToBeProcessed) media.ProcessingResult {
		lines := []string{
			fmt.Sprintf("mkdir -p %q", f.OutputDir),
			fmt.Sprintf("convert %q -resize %s %q", f.Source.FullPath, geometry, f.OutputPath),
			fmt.Sprintf("touch -r %q %q", f.Source.FullPath, f.OutputPath),
		}
		res := p.Runner.Run(ctx, "/", lines)
		return media.ProcessingResult{
			Command:    res.Command,
			Log:        res.Log,
			Succeeded:  res.Succeeded,
			StartedAt:  res.StartedAt,
			FinishedAt: res.FinishedAt,
		}
	})
}

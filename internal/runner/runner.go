// Package runner composes and executes shell scripts, capturing output and
// classifying the outcome (SPEC_FULL.md §2 C5), grounded on the teacher's
// exec.CommandContext + cmd.Dir idiom in
// data/plugins/ffmpeg_transcoder/internal/services/ffmpeg.go, adapted from a
// stderr-pipe streaming model down to a single CombinedOutput capture — this
// spec has no live-progress requirement.
package runner

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rodrigomideac/fixmylib/internal/clock"
)

const prologue = "#!/bin/sh\nset -e\n"

// Result is the outcome of running one assembled command (spec §4.4).
type Result struct {
	Command     string
	Log         string
	Succeeded   bool
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Runner assembles shell scripts under a fixed prologue and executes them.
type Runner struct {
	Clock clock.Clock
}

// New returns a Runner using the real clock.
func New() *Runner {
	return &Runner{Clock: clock.Real{}}
}

// Run builds "#!/bin/sh\nset -e\n" followed by lines joined with newlines,
// executes it with /bin/sh in dir, and returns the outcome. On success the
// returned Command is empty (to keep logs small, spec §4.4); on failure it
// holds the full assembled script for post-mortem.
func (r *Runner) Run(ctx context.Context, dir string, lines []string) Result {
	c := r.Clock
	if c == nil {
		c = clock.Real{}
	}

	script := prologue + strings.Join(lines, "\n") + "\n"
	started := c.Now()

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", script)
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	finished := c.Now()

	if err != nil {
		return Result{
			Command:    script,
			Log:        string(out),
			Succeeded:  false,
			StartedAt:  started,
			FinishedAt: finished,
		}
	}

	return Result{
		Command:    "",
		Log:        string(out),
		Succeeded:  true,
		StartedAt:  started,
		FinishedAt: finished,
	}
}

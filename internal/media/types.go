// Package media holds the types shared between the worker pools (C6, C7)
// and the processor loop (C9): the unit of work each pool consumes and the
// result each pool produces (SPEC_FULL.md §4.5).
package media

import (
	"time"

	"github.com/rodrigomideac/fixmylib/internal/pathmodel"
)

// FileToBeProcessed is one unit of work handed to an image or video worker
// pool: the source file plus the resolved output path for this preset
// (output layout per spec §6: OUTPUT/<preset>/./<relative-dir>/<stem>.<ext>).
type FileToBeProcessed struct {
	Source     pathmodel.FileProps
	OutputDir  string
	OutputPath string
}

// VideoMetrics is the optional per-file metric a video transcode records
// (spec §4.5): the mean FPS sampled from the encoder's progress lines.
// Missing/unparseable FPS is not an error — this is simply left nil.
type VideoMetrics struct {
	FPS float64
}

// ProcessingResult is what every classification path (image, video, other,
// probe-failed) converges on before writeback (spec §4.4, §4.6).
type ProcessingResult struct {
	Command    string
	Log        string
	Succeeded  bool
	StartedAt  time.Time
	FinishedAt time.Time
	Metrics    *VideoMetrics
}

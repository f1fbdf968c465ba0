package videoworker

import (
	"regexp"
	"strconv"
	"strings"
)

var fpsPattern = regexp.MustCompile(`fps=\s*([0-9]+(?:\.[0-9]+)?)`)

// ParseMeanFPS scans log for ffmpeg progress segments — split on "\r" since
// ffmpeg overwrites its progress line in place rather than emitting a
// newline per interval — keeps the ones beginning with "frame=", and
// returns the arithmetic mean of their fps= values greater than 1 (spec
// §4.5). A log with no qualifying samples returns ok=false; missing or
// unparseable FPS is not an error.
func ParseMeanFPS(log string) (mean float64, ok bool) {
	var sum float64
	var count int

	for _, segment := range strings.Split(log, "\r") {
		segment = strings.TrimSpace(segment)
		if !strings.HasPrefix(segment, "frame=") {
			continue
		}
		m := fpsPattern.FindStringSubmatch(segment)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v <= 1 {
			continue
		}
		sum += v
		count++
	}

	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

package videoworker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMeanFPS_S6Scenario(t *testing.T) {
	log := "noise\rframe= 30 fps= 60 q=28.0 size=100kB\rmore noise\rframe= 60 fps= 62 q=28.0 size=200kB\rtrailing noise"

	mean, ok := ParseMeanFPS(log)
	assert.True(t, ok)
	assert.InDelta(t, 61, mean, 0.0001)
}

func TestParseMeanFPS_DropsSamplesNotGreaterThanOne(t *testing.T) {
	log := "frame= 1 fps= 0.5 q=0\rframe= 2 fps= 30 q=0"

	mean, ok := ParseMeanFPS(log)
	assert.True(t, ok)
	assert.InDelta(t, 30, mean, 0.0001)
}

func TestParseMeanFPS_NoSamples(t *testing.T) {
	_, ok := ParseMeanFPS("nothing relevant here")
	assert.False(t, ok)
}

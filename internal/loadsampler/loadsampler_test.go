package loadsampler

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
)

func TestRun_StopsOnContextCancellation(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{Output: os.Stderr, Level: hclog.Off})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Run(ctx, 10*time.Millisecond, logger)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestSampleOnce_DoesNotPanic(t *testing.T) {
	logger := hclog.New(&hclog.LoggerOptions{Output: os.Stderr, Level: hclog.Off})
	sampleOnce(context.Background(), logger)
}

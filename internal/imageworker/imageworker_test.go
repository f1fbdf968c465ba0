package imageworker

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rodrigomideac/fixmylib/internal/media"
	"github.com/rodrigomideac/fixmylib/internal/pathmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFakeConvert prepends a stub `convert` binary to PATH that just copies
// its source argument to its destination argument, standing in for
// ImageMagick for the purposes of exercising the pool's command assembly
// and output-alignment behaviour.
func withFakeConvert(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	script := "#!/bin/sh\nsrc=\"$1\"\nshift\nlast=\"\"\nfor arg in \"$@\"; do last=\"$arg\"; done\ncp \"$src\" \"$last\"\n"
	path := filepath.Join(dir, "convert")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}

func TestPool_Process_IndexAlignedAndSucceeds(t *testing.T) {
	withFakeConvert(t)
	srcDir := t.TempDir()
	outDir := t.TempDir()

	srcPath := filepath.Join(srcDir, "a.jpg")
	require.NoError(t, os.WriteFile(srcPath, []byte("fake-jpeg-bytes"), 0o644))

	files := []media.FileToBeProcessed{
		{
			Source:     pathmodel.NewFileProps(srcDir, srcPath, 15),
			OutputDir:  outDir,
			OutputPath: filepath.Join(outDir, "a.jpg"),
		},
	}

	pool := New(2)
	results := pool.Process(context.Background(), files, "400x400")

	require.Len(t, results, 1)
	assert.True(t, results[0].Succeeded)
	assert.Empty(t, results[0].Command)

	out, err := os.ReadFile(filepath.Join(outDir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "fake-jpeg-bytes", string(out))
}

func TestPool_Process_MissingSourceFails(t *testing.T) {
	withFakeConvert(t)
	outDir := t.TempDir()

	files := []media.FileToBeProcessed{
		{
			Source:     pathmodel.FileProps{FullPath: "/does/not/exist.jpg"},
			OutputDir:  outDir,
			OutputPath: filepath.Join(outDir, "x.jpg"),
		},
	}

	pool := New(1)
	results := pool.Process(context.Background(), files, "400x400")

	require.Len(t, results, 1)
	assert.False(t, results[0].Succeeded)
	assert.NotEmpty(t, results[0].Command)
}

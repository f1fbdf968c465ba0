package probe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeBinary(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-exiftool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

func TestProbe_Success(t *testing.T) {
	bin := fakeBinary(t, `echo '[{"FileType":"JPEG","MIMEType":"image/jpeg"}]'`)
	p := &Prober{Binary: bin}

	res, err := p.Probe(context.Background(), "/in/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, Result{FileType: "JPEG", MIMEType: "image/jpeg"}, res)
}

func TestProbe_NonZeroExit(t *testing.T) {
	bin := fakeBinary(t, `echo "boom" 1>&2; exit 1`)
	p := &Prober{Binary: bin}

	_, err := p.Probe(context.Background(), "/in/bad.dat")
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindExitStatus, perr.Kind)
}

func TestProbe_MalformedJSON(t *testing.T) {
	bin := fakeBinary(t, `echo 'not json'`)
	p := &Prober{Binary: bin}

	_, err := p.Probe(context.Background(), "/in/a.jpg")
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindMalformed, perr.Kind)
}

func TestProbe_EmptyArray(t *testing.T) {
	bin := fakeBinary(t, `echo '[]'`)
	p := &Prober{Binary: bin}

	_, err := p.Probe(context.Background(), "/in/a.jpg")
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindEmpty, perr.Kind)
}

func TestProbe_SpawnFailure(t *testing.T) {
	p := &Prober{Binary: filepath.Join(t.TempDir(), "does-not-exist")}

	_, err := p.Probe(context.Background(), "/in/a.jpg")
	require.Error(t, err)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindSpawn, perr.Kind)
}

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"DATABASE_URL", "INPUT_FOLDER", "OUTPUT_FOLDER",
		"SCANNER_THREADS", "IMAGE_CONVERTER_THREADS", "VIDEO_CONVERTER_THREADS",
		"SECONDS_BETWEEN_FILE_SCANS", "SECONDS_BETWEEN_PROCESSOR_RUNS",
		"ENABLE_THUMBNAIL_PRESET", "ENABLE_PREVIEW_PRESET",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	clearEnv(t)
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database_url")
}

func TestLoad_DefaultsAndRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("INPUT_FOLDER", "/in")
	t.Setenv("OUTPUT_FOLDER", "/out")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ScannerThreads)
	assert.Equal(t, 2, cfg.VideoConverterThreads)
	assert.True(t, cfg.EnableThumbnailPreset)
	assert.True(t, cfg.EnablePreviewPreset)
	assert.Equal(t, 60, cfg.SecondsBetweenFileScans)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yamlPath := dir + "/config.yaml"
	require.NoError(t, os.WriteFile(yamlPath, []byte("database_url: sqlite:///from-file.db\ninput_folder: /file-in\noutput_folder: /file-out\nscanner_threads: 9\n"), 0o644))

	t.Setenv("DATABASE_URL", "sqlite:///from-env.db")

	cfg, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "sqlite:///from-env.db", cfg.DatabaseURL)
	assert.Equal(t, "/file-in", cfg.InputFolder)
	assert.Equal(t, 9, cfg.ScannerThreads)
}

func TestIsPostgres(t *testing.T) {
	c := Config{DatabaseURL: "postgres://u:p@host/db"}
	assert.True(t, c.IsPostgres())
	c.DatabaseURL = "/var/lib/fixmylib.db"
	assert.False(t, c.IsPostgres())
}

func TestLoad_InvalidThreadCount(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("INPUT_FOLDER", "/in")
	t.Setenv("OUTPUT_FOLDER", "/out")
	t.Setenv("SCANNER_THREADS", "0")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scanner_threads")
}

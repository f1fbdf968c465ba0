// Package config loads the process configuration from environment
// variables, with an optional YAML overlay file, applying defaults and
// validating required keys (SPEC_FULL.md §2 C12, §6).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete, validated process configuration. Precedence is
// env > YAML file > built-in default, grounded on the teacher's
// env-tag-over-yaml-tag config loader (internal/config/config.go).
type Config struct {
	DatabaseURL  string `yaml:"database_url" env:"DATABASE_URL"`
	InputFolder  string `yaml:"input_folder" env:"INPUT_FOLDER"`
	OutputFolder string `yaml:"output_folder" env:"OUTPUT_FOLDER"`

	ScannerThreads        int `yaml:"scanner_threads" env:"SCANNER_THREADS" default:"4"`
	ImageConverterThreads int `yaml:"image_converter_threads" env:"IMAGE_CONVERTER_THREADS" default:"4"`
	VideoConverterThreads int `yaml:"video_converter_threads" env:"VIDEO_CONVERTER_THREADS" default:"2"`

	SecondsBetweenFileScans     int `yaml:"seconds_between_file_scans" env:"SECONDS_BETWEEN_FILE_SCANS" default:"60"`
	SecondsBetweenProcessorRuns int `yaml:"seconds_between_processor_runs" env:"SECONDS_BETWEEN_PROCESSOR_RUNS" default:"30"`

	EnableThumbnailPreset bool `yaml:"enable_thumbnail_preset" env:"ENABLE_THUMBNAIL_PRESET" default:"true"`
	EnablePreviewPreset   bool `yaml:"enable_preview_preset" env:"ENABLE_PREVIEW_PRESET" default:"true"`

	// Ambient, optional (SPEC_FULL.md §6).
	LogLevel          string `yaml:"log_level" env:"LOG_LEVEL" default:"info"`
	LogJSON           bool   `yaml:"log_json" env:"LOG_JSON" default:"false"`
	EnableFSWatch     bool   `yaml:"enable_fs_watch" env:"ENABLE_FS_WATCH" default:"true"`
	EnableLoadSampler bool   `yaml:"enable_load_sampler" env:"ENABLE_LOAD_SAMPLER" default:"false"`
}

// Load builds a Config from environment variables, optionally overlaid with
// a YAML file named by the configFile argument (empty string skips the
// overlay), and validates required keys.
func Load(configFile string) (*Config, error) {
	cfg := &Config{}
	applyDefaults(cfg)

	if configFile != "" {
		if err := applyYAMLFile(cfg, configFile); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyDefaults(cfg *Config) {
	cfg.ScannerThreads = 4
	cfg.ImageConverterThreads = 4
	cfg.VideoConverterThreads = 2
	cfg.SecondsBetweenFileScans = 60
	cfg.SecondsBetweenProcessorRuns = 30
	cfg.EnableThumbnailPreset = true
	cfg.EnablePreviewPreset = true
	cfg.LogLevel = "info"
	cfg.EnableFSWatch = true
}

func applyEnv(cfg *Config) {
	if v, ok := lookupEnv("DATABASE_URL"); ok {
		cfg.DatabaseURL = v
	}
	if v, ok := lookupEnv("INPUT_FOLDER"); ok {
		cfg.InputFolder = v
	}
	if v, ok := lookupEnv("OUTPUT_FOLDER"); ok {
		cfg.OutputFolder = v
	}
	setIntEnv("SCANNER_THREADS", &cfg.ScannerThreads)
	setIntEnv("IMAGE_CONVERTER_THREADS", &cfg.ImageConverterThreads)
	setIntEnv("VIDEO_CONVERTER_THREADS", &cfg.VideoConverterThreads)
	setIntEnv("SECONDS_BETWEEN_FILE_SCANS", &cfg.SecondsBetweenFileScans)
	setIntEnv("SECONDS_BETWEEN_PROCESSOR_RUNS", &cfg.SecondsBetweenProcessorRuns)
	setBoolEnv("ENABLE_THUMBNAIL_PRESET", &cfg.EnableThumbnailPreset)
	setBoolEnv("ENABLE_PREVIEW_PRESET", &cfg.EnablePreviewPreset)
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	setBoolEnv("LOG_JSON", &cfg.LogJSON)
	setBoolEnv("ENABLE_FS_WATCH", &cfg.EnableFSWatch)
	setBoolEnv("ENABLE_LOAD_SAMPLER", &cfg.EnableLoadSampler)
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func setIntEnv(key string, dst *int) {
	if v, ok := lookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBoolEnv(key string, dst *bool) {
	if v, ok := lookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func (c *Config) validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "database_url")
	}
	if c.InputFolder == "" {
		missing = append(missing, "input_folder")
	}
	if c.OutputFolder == "" {
		missing = append(missing, "output_folder")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.ScannerThreads <= 0 {
		return fmt.Errorf("config: scanner_threads must be positive, got %d", c.ScannerThreads)
	}
	if c.ImageConverterThreads <= 0 {
		return fmt.Errorf("config: image_converter_threads must be positive, got %d", c.ImageConverterThreads)
	}
	if c.VideoConverterThreads <= 0 {
		return fmt.Errorf("config: video_converter_threads must be positive, got %d", c.VideoConverterThreads)
	}
	if c.SecondsBetweenFileScans < 0 {
		return fmt.Errorf("config: seconds_between_file_scans must be non-negative, got %d", c.SecondsBetweenFileScans)
	}
	if c.SecondsBetweenProcessorRuns < 0 {
		return fmt.Errorf("config: seconds_between_processor_runs must be non-negative, got %d", c.SecondsBetweenProcessorRuns)
	}
	return nil
}

// IsPostgres reports whether DatabaseURL names a PostgreSQL connection
// string, by the same prefix rule catalogue.Open applies when it picks its
// GORM driver (Open does its own check and does not call this method).
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// Package catalogue is the durable entity store (SPEC_FULL.md §2 C3): scan
// jobs, folders, files and per-preset file jobs, backed by GORM. It is the
// only component that touches persistence — every other component holds
// read-only snapshots or builds records handed to this package (spec §3).
package catalogue

import "time"

// ScanJob is a single sweep of the input tree (spec §3).
type ScanJob struct {
	ID         string `gorm:"column:id;primaryKey"`
	RootPath   string `gorm:"column:root_path;not null"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
}

// TableName overrides GORM's pluralisation to match the schema named in
// spec §6.
func (ScanJob) TableName() string { return "filescan_jobs" }

// Folder is one directory discovered under a scan root (spec §3).
type Folder struct {
	FullPath       string `gorm:"column:full_path;primaryKey"`
	RelativePath   string `gorm:"column:relative_path;not null"`
	Name           string `gorm:"column:name;not null"`
	ParentFullPath string `gorm:"column:parent_full_path;not null;index"`
	JobID          string `gorm:"column:job_id;not null;index"`
}

func (Folder) TableName() string { return "folders" }

// File is one regular file discovered during a scan pass (spec §3). Its
// FolderFullPath must reference an extant Folder.
type File struct {
	FullPath         string    `gorm:"column:full_path;primaryKey"`
	FolderFullPath   string    `gorm:"column:folder_full_path;not null;index"`
	RelativePath     string    `gorm:"column:relative_path;not null"`
	Size             int64     `gorm:"column:size;not null"`
	Stem             string    `gorm:"column:stem;not null"`
	Extension        string    `gorm:"column:extension;not null;index"`
	Name             string    `gorm:"column:name;not null"`
	HasBeenProcessed bool      `gorm:"column:has_been_processed;not null;default:false"`
	CreatedAt        time.Time `gorm:"column:created_at;not null"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null"`
	ModifiedAt       time.Time `gorm:"column:modified_at;not null"`
	JobID            string    `gorm:"column:job_id;not null;index"`
}

func (File) TableName() string { return "files" }

// FileJob is a per-file, per-preset unit of processing work, durable until
// completion (spec §3). FinishedAt is set iff HasSucceeded is set; a row
// with FinishedAt == nil is "pending" and eligible for processing.
type FileJob struct {
	FileFullPath string  `gorm:"column:file_full_path;primaryKey"`
	PresetName   string  `gorm:"column:preset_name;primaryKey"`
	CreatedAt    time.Time  `gorm:"column:created_at;not null"`
	FinishedAt   *time.Time `gorm:"column:finished_at;index"`
	Command      *string    `gorm:"column:command"`
	CommandLog   *string    `gorm:"column:command_log"`
	HasSucceeded *bool      `gorm:"column:has_succeeded"`
}

func (FileJob) TableName() string { return "file_jobs" }

// MigrationRecord is ambient bookkeeping for the schema migrator (C14); it is
// never read by the scanner or processor loops.
type MigrationRecord struct {
	ID          string    `gorm:"column:id;primaryKey"`
	Description string    `gorm:"column:description;not null"`
	AppliedAt   time.Time `gorm:"column:applied_at;not null"`
}

func (MigrationRecord) TableName() string { return "schema_migrations" }

// FilePendingPair is one row of PagePending: a File paired with its
// per-preset FileJob.
type FilePendingPair struct {
	File    File
	FileJob FileJob
}

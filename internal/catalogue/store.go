package catalogue

import (
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// Store is the sole owner of persistence (spec §3). Every exported method is
// a single transaction and every upsert is idempotent.
type Store struct {
	db *gorm.DB
}

// Open connects to databaseURL, dispatching to the postgres driver for a
// postgres:// or postgresql:// URL and to sqlite otherwise (a bare
// filesystem path, grounded on the teacher's DatabaseFullConfig dual-driver
// setup in internal/database/database.go).
func Open(databaseURL string) (*Store, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(databaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, wrapErr("open", err)
	}
	return &Store{db: db}, nil
}

// UpsertScanJob inserts j or, if a row with the same ID exists, refreshes
// its mutable columns (last-writer-wins, spec §3).
func (s *Store) UpsertScanJob(j ScanJob) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"root_path", "finished_at"}),
	}).Create(&j).Error
	return wrapErr("upsert_scan_job", err)
}

// ListUnfinishedScanJobs returns every ScanJob with FinishedAt == nil,
// oldest created_at first.
func (s *Store) ListUnfinishedScanJobs() ([]ScanJob, error) {
	var jobs []ScanJob
	err := s.db.Where("finished_at IS NULL").Order("created_at ASC").Find(&jobs).Error
	return jobs, wrapErr("list_unfinished_scan_jobs", err)
}

// GetFolder returns the Folder at fullPath, or nil if none exists.
func (s *Store) GetFolder(fullPath string) (*Folder, error) {
	var f Folder
	err := s.db.Where("full_path = ?", fullPath).First(&f).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, wrapErr("get_folder", err)
	}
	return &f, nil
}

// ListFolders returns every known Folder.
func (s *Store) ListFolders() ([]Folder, error) {
	var folders []Folder
	err := s.db.Find(&folders).Error
	return folders, wrapErr("list_folders", err)
}

// UpsertFolder creates f or, for a pre-existing full_path, refreshes its
// job_id (and other mutable columns) while preserving identity (spec §4.2 —
// "pre-existing folders retain their identity; only job_id is refreshed").
func (s *Store) UpsertFolder(f Folder) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "full_path"}},
		DoUpdates: clause.AssignmentColumns([]string{"relative_path", "name", "parent_full_path", "job_id"}),
	}).Create(&f).Error
	return wrapErr("upsert_folder", err)
}

// UpsertFile creates f or refreshes its mutable columns for a pre-existing
// full_path.
func (s *Store) UpsertFile(f File) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "full_path"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"folder_full_path", "relative_path", "size", "stem", "extension",
			"name", "has_been_processed", "updated_at", "modified_at", "job_id",
		}),
	}).Create(&f).Error
	return wrapErr("upsert_file", err)
}

// UpsertFileJob inserts or updates j, keyed on (file_full_path,
// preset_name); on conflict it updates finished_at, command, command_log
// and has_succeeded while preserving created_at (spec §4.1).
func (s *Store) UpsertFileJob(j FileJob) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_full_path"}, {Name: "preset_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"finished_at", "command", "command_log", "has_succeeded"}),
	}).Create(&j).Error
	return wrapErr("upsert_file_job", err)
}

// BulkUpsertFileJobs applies UpsertFileJob's conflict semantics to every
// job in jobs within a single transaction.
func (s *Store) BulkUpsertFileJobs(jobs []FileJob) error {
	if len(jobs) == 0 {
		return nil
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_full_path"}, {Name: "preset_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"finished_at", "command", "command_log", "has_succeeded"}),
		}).Create(&jobs).Error
	})
	return wrapErr("bulk_upsert_file_jobs", err)
}

// EnsurePendingFileJob guarantees a pending FileJob row exists for
// (fileFullPath, preset): it inserts one with CreatedAt=now and all terminal
// fields null, doing nothing if a row already exists — Phase A's contract is
// "ensure a pending FileJob exists", never to clobber one already present
// (spec §4.6).
func (s *Store) EnsurePendingFileJob(fileFullPath, preset string, now time.Time) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "file_full_path"}, {Name: "preset_name"}},
		DoNothing: true,
	}).Create(&FileJob{
		FileFullPath: fileFullPath,
		PresetName:   preset,
		CreatedAt:    now,
	}).Error
	return wrapErr("ensure_pending_file_job", err)
}

// PageFilesWithoutFinishedJob returns, ordered by folder_full_path, the
// files that have no finished FileJob for preset — i.e. no FileJob row at
// all, or one still pending (spec §4.6 Phase A's synthesis predicate).
func (s *Store) PageFilesWithoutFinishedJob(preset string, offset, limit int) ([]File, error) {
	var files []File
	err := s.db.
		Joins("LEFT JOIN file_jobs ON file_jobs.file_full_path = files.full_path AND file_jobs.preset_name = ?", preset).
		Where("file_jobs.file_full_path IS NULL OR file_jobs.finished_at IS NULL").
		Order("files.folder_full_path ASC").
		Offset(offset).Limit(limit).
		Find(&files).Error
	return files, wrapErr("page_files_without_finished_job", err)
}

// PagePending returns, ordered by folder_full_path ascending, the
// (File, FileJob) pairs whose joined FileJob for preset has FinishedAt ==
// nil (spec §4.1, §4.6 Phase B).
func (s *Store) PagePending(preset string, offset, limit int) ([]FilePendingPair, error) {
	type row struct {
		File
		JobFileFullPath string     `gorm:"column:job_file_full_path"`
		JobPresetName   string     `gorm:"column:job_preset_name"`
		JobCreatedAt    time.Time  `gorm:"column:job_created_at"`
		JobFinishedAt   *time.Time `gorm:"column:job_finished_at"`
		JobCommand      *string    `gorm:"column:job_command"`
		JobCommandLog   *string    `gorm:"column:job_command_log"`
		JobHasSucceeded *bool      `gorm:"column:job_has_succeeded"`
	}

	var rows []row
	err := s.db.Table("files").
		Select(`files.*,
			file_jobs.file_full_path AS job_file_full_path,
			file_jobs.preset_name AS job_preset_name,
			file_jobs.created_at AS job_created_at,
			file_jobs.finished_at AS job_finished_at,
			file_jobs.command AS job_command,
			file_jobs.command_log AS job_command_log,
			file_jobs.has_succeeded AS job_has_succeeded`).
		Joins("JOIN file_jobs ON file_jobs.file_full_path = files.full_path AND file_jobs.preset_name = ?", preset).
		Where("file_jobs.finished_at IS NULL").
		Order("files.folder_full_path ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr("page_pending", err)
	}

	pairs := make([]FilePendingPair, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, FilePendingPair{
			File: r.File,
			FileJob: FileJob{
				FileFullPath: r.JobFileFullPath,
				PresetName:   r.JobPresetName,
				CreatedAt:    r.JobCreatedAt,
				FinishedAt:   r.JobFinishedAt,
				Command:      r.JobCommand,
				CommandLog:   r.JobCommandLog,
				HasSucceeded: r.JobHasSucceeded,
			},
		})
	}
	return pairs, nil
}

// DB exposes the underlying *gorm.DB for direct inspection (the tests use
// it to read rows back); domain components go through the methods above.
func (s *Store) DB() *gorm.DB { return s.db }

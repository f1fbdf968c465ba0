package catalogue

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// migration is one ordered, idempotent schema step (C14), grounded on the
// teacher's MigrationManager (internal/modules/databasemodule/migration_manager.go)
// but trimmed to this module's four domain tables plus its own bookkeeping
// table.
type migration struct {
	ID          string
	Description string
	Up          func(*gorm.DB) error
}

var migrations = []migration{
	{
		ID:          "0001_scan_jobs",
		Description: "create filescan_jobs table",
		Up:          func(db *gorm.DB) error { return db.AutoMigrate(&ScanJob{}) },
	},
	{
		ID:          "0002_folders",
		Description: "create folders table",
		Up:          func(db *gorm.DB) error { return db.AutoMigrate(&Folder{}) },
	},
	{
		ID:          "0003_files",
		Description: "create files table",
		Up:          func(db *gorm.DB) error { return db.AutoMigrate(&File{}) },
	},
	{
		ID:          "0004_file_jobs",
		Description: "create file_jobs table",
		Up:          func(db *gorm.DB) error { return db.AutoMigrate(&FileJob{}) },
	},
}

// Migrate applies every registered migration not yet recorded in
// schema_migrations, in order. It is safe to call on every startup
// (fatal-startup error kind per spec §7 if it fails).
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("catalogue: bootstrapping schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var existing MigrationRecord
		err := s.db.Where("id = ?", m.ID).First(&existing).Error
		if err == nil {
			continue // already applied
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("catalogue: checking migration %s: %w", m.ID, err)
		}

		if err := m.Up(s.db); err != nil {
			return fmt.Errorf("catalogue: applying migration %s: %w", m.ID, err)
		}

		record := MigrationRecord{ID: m.ID, Description: m.Description, AppliedAt: time.Now().UTC()}
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("catalogue: recording migration %s: %w", m.ID, err)
		}
	}
	return nil
}

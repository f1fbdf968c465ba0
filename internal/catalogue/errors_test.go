package catalogue

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestUpsertScanJob_TransientErrorClassified drives the store against a
// sqlmock connection that fails with a driver-level "connection reset"
// error, the way a dropped PostgreSQL connection would, and checks the
// resulting error is classified transient (spec §7 "store-transient" kind).
func TestUpsertScanJob_TransientErrorClassified(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	s := &Store{db: gormDB}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "filescan_jobs"`).
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	err = s.UpsertScanJob(ScanJob{ID: "job-1", RootPath: "/in"})
	require.Error(t, err)
	require.True(t, IsTransient(err))
}

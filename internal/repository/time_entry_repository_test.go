package repository

import (
	"testing"
	"time"

	"github.com/AidanBoudreau/TimeLink/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepository(t *testing.T) (*GormTimeEntryRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return &GormTimeEntryRepository{db: gdb}, mock
}

func TestCreate_UniqueViolationBecomesDuplicateActiveEntry(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "time_entries"`).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "uq_time_entries_one_active_per_user",
		})
	mock.ExpectRollback()

	err := repo.Create(&models.TimeEntry{
		UserID:  1,
		ClockIn: time.Now(),
		Status:  models.TimeEntryStatusActive,
	})
	require.ErrorIs(t, err, ErrDuplicateActiveEntry)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDForUpdate_LocksRowOnPostgres(t *testing.T) {
	repo, mock := newMockRepository(t)

	clockIn := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	entryRows := sqlmock.NewRows([]string{"id", "user_id", "clock_in", "status", "break_duration"}).
		AddRow(int64(42), int64(1), clockIn, "active", 0)
	mock.ExpectQuery(`SELECT \* FROM "time_entries" WHERE .* FOR UPDATE`).
		WillReturnRows(entryRows)

	breakRows := sqlmock.NewRows([]string{"id", "time_entry_id", "break_start"}).
		AddRow(int64(7), int64(42), clockIn.Add(3*time.Hour))
	mock.ExpectQuery(`SELECT \* FROM "break_entries" WHERE time_entry_id`).
		WillReturnRows(breakRows)

	entry, err := repo.FindByIDForUpdate(42)
	require.NoError(t, err)
	require.Equal(t, uint64(42), entry.ID)
	require.Equal(t, models.TimeEntryStatusActive, entry.Status)
	require.Len(t, entry.BreakEntries, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDForUpdate_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT \* FROM "time_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByIDForUpdate(999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

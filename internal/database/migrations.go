package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds indexes that AutoMigrate cannot express.
//
// The partial unique index on time_entries is the storage-level guard for
// the "at most one active entry per user" invariant: two concurrent
// clock-in inserts cannot both commit, regardless of what the application
// layer checked beforehand. Both postgres and sqlite support partial
// indexes with this syntax.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		name string
		sql  string
	}{
		{
			"uq_time_entries_one_active_per_user",
			`CREATE UNIQUE INDEX IF NOT EXISTS uq_time_entries_one_active_per_user
			 ON time_entries (user_id)
			 WHERE status = 'active' AND deleted_at IS NULL`,
		},
		{
			"idx_time_entries_user_clock_in",
			`CREATE INDEX IF NOT EXISTS idx_time_entries_user_clock_in
			 ON time_entries (user_id, clock_in)`,
		},
		{
			"idx_break_entries_time_entry_id",
			`CREATE INDEX IF NOT EXISTS idx_break_entries_time_entry_id
			 ON break_entries (time_entry_id)`,
		},
		{
			"idx_task_entries_time_entry_id",
			`CREATE INDEX IF NOT EXISTS idx_task_entries_time_entry_id
			 ON task_entries (time_entry_id)`,
		},
		{
			"idx_reports_generated_by",
			`CREATE INDEX IF NOT EXISTS idx_reports_generated_by
			 ON reports (generated_by)`,
		},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

package database

import (
	"fmt"

	"gorm.io/gorm"
)

// compositeIndexes are the performance-critical indexes beyond what
// AutoMigrate tags create.
var compositeIndexes = []struct {
	table   string
	name    string
	columns string
}{
	{"tasks", "idx_tasks_project_status", "project_id, status"},
	{"tasks", "idx_tasks_assigned_status", "assigned_to_id, status"},
	{"tasks", "idx_tasks_due_date", "due_date"},
	{"task_reviews", "idx_task_reviews_task_id", "task_id"},
	{"review_criteria", "idx_review_criteria_review_id", "review_id"},
	{"notifications", "idx_notifications_recipient_read", "recipient_id, is_read"},
	{"task_comments", "idx_task_comments_task_parent", "task_id, parent_id"},
}

// AddIndexes creates the composite indexes, skipping any that already
// exist. The existence check depends on the dialect's catalog; dialects
// without one here (sqlite in tests) rely on the tag-declared indexes
// alone.
func AddIndexes(db *gorm.DB) error {
	for _, idx := range compositeIndexes {
		var count int64
		var err error

		switch db.Dialector.Name() {
		case "postgres":
			err = db.Raw(`
				SELECT COUNT(*)
				FROM pg_indexes
				WHERE tablename = ? AND indexname = ?
			`, idx.table, idx.name).Count(&count).Error
		case "mysql":
			err = db.Raw(`
				SELECT COUNT(*)
				FROM information_schema.statistics
				WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
			`, idx.table, idx.name).Count(&count).Error
		default:
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

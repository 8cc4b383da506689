package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/task-board-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the indexes used by list sorting and per-group ordering.
// Indexes declared on the model are created by AutoMigrate; these are the
// extra single-column ones.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		name    string
		columns string
	}{
		{"idx_tasks_due_date", "due_date"},
		{"idx_tasks_created_at", "created_at"},
		{"idx_tasks_priority", "priority"},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.WithFields(log.Fields{"index": idx.name, "columns": idx.columns}).Info("Created index")
	}

	return nil
}

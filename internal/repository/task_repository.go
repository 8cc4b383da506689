package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/yukikurage/task-board-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// List returns every task, newest first
func (r *GormTaskRepository) List(ctx context.Context) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("status").
		Order("sort_order").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Create inserts a task at the end of its status group. The order is
// computed inside the same transaction as the insert.
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		next, err := nextOrder(tx, task.Status)
		if err != nil {
			return err
		}
		task.Order = next
		return tx.Create(task).Error
	})
}

// Update saves every field of an existing task
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// Delete removes a task; it reports false when no row matched
func (r *GormTaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// NextOrder returns max(order)+1 within a status group, 0 when empty
func (r *GormTaskRepository) NextOrder(ctx context.Context, status models.TaskStatus) (int, error) {
	return nextOrder(r.db.WithContext(ctx), status)
}

// BulkReorder persists order and status of the given tasks in one
// transaction. An unknown ID rolls back the whole batch.
func (r *GormTaskRepository) BulkReorder(ctx context.Context, tasks []models.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, t := range tasks {
			result := tx.Model(&models.Task{}).
				Where("id = ?", t.ID).
				Updates(map[string]interface{}{
					"status":     t.Status,
					"sort_order": t.Order,
				})
			if result.Error != nil {
				return fmt.Errorf("failed to reorder task %s: %w", t.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("failed to reorder task %s: %w", t.ID, gorm.ErrRecordNotFound)
			}
		}
		return nil
	})
}

// Count returns the number of stored tasks
func (r *GormTaskRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).Count(&count).Error
	return count, err
}

func nextOrder(db *gorm.DB, status models.TaskStatus) (int, error) {
	var highest sql.NullInt64
	if err := db.Model(&models.Task{}).
		Where("status = ?", status).
		Select("MAX(sort_order)").
		Row().
		Scan(&highest); err != nil {
		return 0, err
	}
	if !highest.Valid {
		return 0, nil
	}
	return int(highest.Int64) + 1, nil
}

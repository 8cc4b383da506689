package repository

import (
	"context"

	"github.com/yukikurage/task-board-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// List returns every task, newest first
	List(ctx context.Context) ([]models.Task, error)

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// Create inserts a task at the end of its status group
	Create(ctx context.Context, task *models.Task) error

	// Update saves every field of an existing task
	Update(ctx context.Context, task *models.Task) error

	// Delete removes a task; it reports false when no row matched
	Delete(ctx context.Context, id string) (bool, error)

	// NextOrder returns max(order)+1 within a status group, 0 when empty
	NextOrder(ctx context.Context, status models.TaskStatus) (int, error)

	// BulkReorder persists order and status of the given tasks in one transaction
	BulkReorder(ctx context.Context, tasks []models.Task) error

	// Count returns the number of stored tasks
	Count(ctx context.Context) (int64, error)
}

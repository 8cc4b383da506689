package dto

import (
	"github.com/yukikurage/task-board-api/internal/board"
	"github.com/yukikurage/task-board-api/internal/models"
)

// CreateTaskRequest is the body of POST /api/tasks. Fields are plain
// strings so that missing and malformed values can be told apart.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"dueDate"`
}

// UpdateTaskRequest is the body of PUT/PATCH /api/tasks/:id. Nil fields
// are left unchanged. Unknown keys such as id or createdAt are ignored.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

// ReorderRequest is the body of PUT /api/tasks/reorder. Columns maps each
// status to its ordered task IDs. Tasks is accepted instead of Columns:
// the arrangement is then read from each task's status and order.
type ReorderRequest struct {
	Columns map[models.TaskStatus][]string `json:"columns"`
	Tasks   []ReorderTask                  `json:"tasks"`
}

// ReorderTask carries the fields of a task that matter for reordering.
type ReorderTask struct {
	ID     string            `json:"id"`
	Status models.TaskStatus `json:"status"`
	Order  int               `json:"order"`
}

// MoveTaskRequest is the body of POST /api/tasks/:id/move.
type MoveTaskRequest struct {
	Status string `json:"status" binding:"required"`
	Index  *int   `json:"index"`
}

// GenerateTasksRequest is the body of POST /api/tasks/generate.
type GenerateTasksRequest struct {
	Text string `json:"text" binding:"required"`
}

// PreferencesDTO is the remembered list view of a browser session.
type PreferencesDTO struct {
	Status string `json:"status"`
	Sort   string `json:"sort"`
}

// ReorderResponse reports the reconciled board.
type ReorderResponse struct {
	Tasks   []models.Task        `json:"tasks"`
	Changes []board.StatusChange `json:"changes"`
}

// BoardResponse is the board grouped into columns.
type BoardResponse struct {
	Columns map[models.TaskStatus][]models.Task `json:"columns"`
}

// Arrangement converts the request into a board arrangement.
func (r ReorderRequest) Arrangement() board.Arrangement {
	if r.Columns != nil {
		return board.Arrangement(r.Columns)
	}

	tasks := make([]models.Task, len(r.Tasks))
	for i, t := range r.Tasks {
		tasks[i] = models.Task{ID: t.ID, Status: t.Status, Order: t.Order}
	}
	return board.ArrangementOf(tasks)
}

// Empty reports whether neither form was supplied.
func (r ReorderRequest) Empty() bool {
	return r.Columns == nil && r.Tasks == nil
}

// ToReorderResponse converts a reconciliation result
func ToReorderResponse(res board.Result) ReorderResponse {
	changes := res.Changes
	if changes == nil {
		changes = []board.StatusChange{}
	}
	return ReorderResponse{
		Tasks:   res.Tasks,
		Changes: changes,
	}
}

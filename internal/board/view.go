package board

import (
	"fmt"
	"sort"

	"github.com/yukikurage/task-board-api/internal/models"
)

type SortKey string

const (
	SortNone      SortKey = ""
	SortDueDate   SortKey = "dueDate"
	SortPriority  SortKey = "priority"
	SortCreatedAt SortKey = "createdAt"
)

// ParseSortKey validates a sort key from a query string. An empty value
// selects SortDueDate.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case SortNone:
		return SortDueDate, nil
	case SortDueDate, SortPriority, SortCreatedAt:
		return SortKey(s), nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q", s)
}

// ViewOptions selects the list projection. A nil Status keeps every group.
type ViewOptions struct {
	Status *models.TaskStatus
	Sort   SortKey
}

// View filters and sorts tasks for display. It returns a new slice and
// leaves Order untouched; sorting is stable so equal keys keep list order.
func View(tasks []models.Task, opts ViewOptions) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if opts.Status != nil && t.Status != *opts.Status {
			continue
		}
		out = append(out, t)
	}

	switch opts.Sort {
	case SortDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DueDate.Before(out[j].DueDate)
		})
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.Rank() < out[j].Priority.Rank()
		})
	case SortCreatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// Columns groups tasks by status, each group ordered for the board.
// Every known status is present, possibly empty.
func Columns(tasks []models.Task) map[models.TaskStatus][]models.Task {
	cols := make(map[models.TaskStatus][]models.Task, len(models.TaskStatuses))
	for _, s := range models.TaskStatuses {
		cols[s] = Column(tasks, s)
	}
	return cols
}

// Column returns the tasks of one status group ordered for the board.
func Column(tasks []models.Task, status models.TaskStatus) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

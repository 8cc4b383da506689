package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-board-api/internal/models"
)

func TestSummarize(t *testing.T) {
	today := models.NewDate(2025, 1, 8)

	overdue := task("overdue", models.TaskStatusTodo, 0)
	overdue.DueDate = models.NewDate(2025, 1, 7)
	overdue.Priority = models.TaskPriorityHigh
	overdue.CreatedAt = today

	soon := task("soon", models.TaskStatusInProgress, 0)
	soon.DueDate = models.NewDate(2025, 1, 12)
	soon.CreatedAt = today.AddDays(-2)

	sooner := task("sooner", models.TaskStatusTodo, 1)
	sooner.DueDate = today
	sooner.Priority = models.TaskPriorityLow
	sooner.CreatedAt = today.AddDays(-10)

	later := task("later", models.TaskStatusTodo, 2)
	later.DueDate = today.AddDays(30)

	done := task("done", models.TaskStatusCompleted, 0)
	done.DueDate = models.NewDate(2024, 12, 1)
	done.CreatedAt = today

	s := Summarize([]models.Task{overdue, soon, sooner, later, done}, today)

	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.ByStatus[models.TaskStatusTodo])
	assert.Equal(t, 1, s.ByStatus[models.TaskStatusInProgress])
	assert.Equal(t, 1, s.ByStatus[models.TaskStatusCompleted])
	assert.Equal(t, 1, s.ByPriority[models.TaskPriorityHigh])
	assert.Equal(t, 3, s.ByPriority[models.TaskPriorityMedium])
	assert.Equal(t, 1, s.ByPriority[models.TaskPriorityLow])

	assert.Equal(t, 20, s.CompletionRate)
	assert.Equal(t, 30, s.ProductivityScore)

	assert.Equal(t, []string{"sooner", "soon"}, ids(s.Upcoming))
	assert.Equal(t, []string{"overdue"}, ids(s.Overdue))

	require.Len(t, s.WeeklyProgress, 7)
	last := s.WeeklyProgress[6]
	assert.True(t, last.Date.Equal(today))
	assert.Equal(t, "Wed", last.Day)
	assert.Equal(t, 2, last.Created)
	assert.Equal(t, 1, last.Completed)
	assert.Equal(t, 1, s.WeeklyProgress[4].Created)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, models.NewDate(2025, 1, 8))

	assert.Zero(t, s.Total)
	assert.Zero(t, s.CompletionRate)
	assert.Zero(t, s.ProductivityScore)
	assert.NotNil(t, s.Upcoming)
	assert.NotNil(t, s.Overdue)
	assert.Len(t, s.WeeklyProgress, 7)
	assert.Equal(t, 0, s.ByStatus[models.TaskStatusCompleted])
}

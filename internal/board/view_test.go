package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-board-api/internal/models"
)

func viewFixture() []models.Task {
	a := task("a", models.TaskStatusTodo, 0)
	a.Priority = models.TaskPriorityLow
	a.DueDate = models.NewDate(2025, 1, 20)
	a.CreatedAt = models.NewDate(2024, 12, 19)

	b := task("b", models.TaskStatusInProgress, 0)
	b.Priority = models.TaskPriorityHigh
	b.DueDate = models.NewDate(2025, 1, 5)
	b.CreatedAt = models.NewDate(2024, 12, 10)

	c := task("c", models.TaskStatusTodo, 1)
	c.Priority = models.TaskPriorityMedium
	c.DueDate = models.NewDate(2025, 1, 10)
	c.CreatedAt = models.NewDate(2024, 12, 22)

	d := task("d", models.TaskStatusCompleted, 0)
	d.Priority = models.TaskPriorityHigh
	d.DueDate = models.NewDate(2024, 12, 22)
	d.CreatedAt = models.NewDate(2024, 12, 15)

	return []models.Task{a, b, c, d}
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestView_Sorts(t *testing.T) {
	tasks := viewFixture()

	assert.Equal(t, []string{"d", "b", "c", "a"}, ids(View(tasks, ViewOptions{Sort: SortDueDate})))
	assert.Equal(t, []string{"b", "d", "c", "a"}, ids(View(tasks, ViewOptions{Sort: SortPriority})))
	assert.Equal(t, []string{"c", "a", "d", "b"}, ids(View(tasks, ViewOptions{Sort: SortCreatedAt})))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(View(tasks, ViewOptions{})))
}

func TestView_FiltersByStatus(t *testing.T) {
	todo := models.TaskStatusTodo
	got := View(viewFixture(), ViewOptions{Status: &todo, Sort: SortDueDate})
	assert.Equal(t, []string{"c", "a"}, ids(got))
}

func TestView_DoesNotMutate(t *testing.T) {
	tasks := viewFixture()
	snapshot := append([]models.Task(nil), tasks...)

	got := View(tasks, ViewOptions{Sort: SortPriority})
	assert.Equal(t, snapshot, tasks)
	for _, tk := range got {
		assert.Equal(t, byID(snapshot)[tk.ID].Order, tk.Order)
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortDueDate, key)

	key, err = ParseSortKey("priority")
	require.NoError(t, err)
	assert.Equal(t, SortPriority, key)

	_, err = ParseSortKey("title")
	assert.Error(t, err)
}

func TestColumns(t *testing.T) {
	tasks := []models.Task{
		task("x", models.TaskStatusTodo, 2),
		task("y", models.TaskStatusTodo, 0),
		task("z", models.TaskStatusCompleted, 0),
	}

	cols := Columns(tasks)
	assert.Equal(t, []string{"y", "x"}, ids(cols[models.TaskStatusTodo]))
	assert.Empty(t, cols[models.TaskStatusInProgress])
	assert.NotNil(t, cols[models.TaskStatusInProgress])
	assert.Equal(t, []string{"z"}, ids(cols[models.TaskStatusCompleted]))
}

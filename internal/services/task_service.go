package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/task-board-api/internal/board"
	"github.com/yukikurage/task-board-api/internal/constants"
	"github.com/yukikurage/task-board-api/internal/models"
	"github.com/yukikurage/task-board-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrMissingRequiredFields  = errors.New("missing required fields")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidPriority        = errors.New("invalid priority")
	ErrInvalidDate            = errors.New("invalid date")
	ErrInvalidSort            = errors.New("invalid sort key")
	ErrTitleEmpty             = errors.New("title cannot be empty")
	ErrTextRequired           = errors.New("text is required")
	ErrTextTooLong            = errors.New("text is too long")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

// MissingFieldsError lists the required fields that were absent or blank.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingRequiredFields
}

// ReorderError is returned when a reconciled arrangement could not be
// persisted. Tasks holds the canonical list read back from the store, or
// nil when the store could not be re-read.
type ReorderError struct {
	Err   error
	Tasks []models.Task
}

func (e *ReorderError) Error() string {
	return e.Err.Error()
}

func (e *ReorderError) Unwrap() error {
	return e.Err
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo  repository.TaskRepository
	aiService *AIService
	today     func() models.Date
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		aiService: aiService,
		today:     models.Today,
	}
}

// ListTasksInput selects the list projection
type ListTasksInput struct {
	Status string
	Sort   string
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     string
}

// UpdateTaskInput represents input for updating a task; nil fields are kept
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	DueDate     *string
}

// ListTasks returns the canonical list filtered and sorted for display
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, error) {
	opts, err := viewOptions(input)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return board.View(tasks, opts), nil
}

// Board returns every task grouped into ordered columns
func (s *TaskService) Board(ctx context.Context) (map[models.TaskStatus][]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return board.Columns(tasks), nil
}

// GetTask returns a single task
func (s *TaskService) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates input and appends the new task to its status group
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", input.Title},
		{"description", input.Description},
		{"status", input.Status},
		{"priority", input.Priority},
		{"dueDate", input.DueDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	status, err := parseStatus(input.Status)
	if err != nil {
		return nil, err
	}
	priority, err := parsePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      status,
		Priority:    priority,
		DueDate:     dueDate,
		CreatedAt:   s.today(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update. A status change moves the task to
// the end of its new group.
func (s *TaskService) UpdateTask(ctx context.Context, id string, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = strings.TrimSpace(*input.Title)
	}

	var missing []string
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			missing = append(missing, "description")
		}
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.DueDate != nil {
		if strings.TrimSpace(*input.DueDate) == "" {
			missing = append(missing, "dueDate")
		} else {
			due, err := parseDate(*input.DueDate)
			if err != nil {
				return nil, err
			}
			task.DueDate = due
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	if input.Priority != nil {
		priority, err := parsePriority(*input.Priority)
		if err != nil {
			return nil, err
		}
		task.Priority = priority
	}
	if input.Status != nil {
		status, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		if status != task.Status {
			next, err := s.taskRepo.NextOrder(ctx, status)
			if err != nil {
				return nil, fmt.Errorf("failed to compute order: %w", err)
			}
			task.Status = status
			task.Order = next
		}
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	deleted, err := s.taskRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}

// ReorderTasks reconciles arr against the stored tasks and persists the
// result. An invalid arrangement fails with board.ErrInvalidArrangement
// before anything is written. A failed write returns a *ReorderError
// carrying the re-read canonical list.
func (s *TaskService) ReorderTasks(ctx context.Context, arr board.Arrangement) (board.Result, error) {
	b, err := board.Load(ctx, s.taskRepo)
	if err != nil {
		return board.Result{}, err
	}
	return s.rearrange(b, func() (board.Result, error) {
		return b.Rearrange(ctx, arr)
	})
}

// MoveTask drags a single task into status, at index when given
func (s *TaskService) MoveTask(ctx context.Context, id, status string, index *int) (board.Result, error) {
	target, err := parseStatus(status)
	if err != nil {
		return board.Result{}, err
	}

	b, err := board.Load(ctx, s.taskRepo)
	if err != nil {
		return board.Result{}, err
	}
	return s.rearrange(b, func() (board.Result, error) {
		res, err := b.Move(ctx, id, target, index)
		if errors.Is(err, board.ErrTaskNotFound) {
			return board.Result{}, ErrTaskNotFound
		}
		return res, err
	})
}

func (s *TaskService) rearrange(b *board.Board, apply func() (board.Result, error)) (board.Result, error) {
	before := b.Tasks()
	res, err := apply()
	if err != nil {
		if errors.Is(err, board.ErrInvalidArrangement) || errors.Is(err, ErrTaskNotFound) {
			return board.Result{}, err
		}
		if errors.Is(err, board.ErrResyncFailed) {
			log.WithError(err).Error("Reorder was not persisted and the board could not be re-read")
			return board.Result{}, &ReorderError{Err: err}
		}
		log.WithError(err).Warn("Reorder was not persisted; board re-read from store")
		return board.Result{}, &ReorderError{Err: err, Tasks: b.Tasks()}
	}

	log.WithFields(log.Fields{
		"moved":          len(res.Changed(before)),
		"status_changes": len(res.Changes),
	}).Info("Board reordered")
	return res, nil
}

// Dashboard summarizes the board as of today
func (s *TaskService) Dashboard(ctx context.Context) (board.Summary, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return board.Summary{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	return board.Summarize(tasks, s.today()), nil
}

// SuggestTasks extracts task drafts from free text. Drafts without a
// title are dropped, unknown priorities become medium, and due dates in
// the past are cleared.
func (s *TaskService) SuggestTasks(ctx context.Context, text string) ([]TaskDraft, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}
	if len(text) > constants.MaxAIInputLength {
		return nil, ErrTextTooLong
	}

	today := s.today()
	drafts, err := s.aiService.ExtractTasks(ctx, text, today)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	valid := make([]TaskDraft, 0, len(drafts))
	for _, d := range drafts {
		if d.Title == "" {
			continue
		}
		if !d.Priority.Valid() {
			d.Priority = models.TaskPriorityMedium
		}
		if d.DueDate != nil && d.DueDate.Before(today) {
			d.DueDate = nil
		}
		valid = append(valid, d)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}
	return valid, nil
}

func viewOptions(input ListTasksInput) (board.ViewOptions, error) {
	var opts board.ViewOptions
	if input.Status != "" && input.Status != "all" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return opts, err
		}
		opts.Status = &status
	}

	sortKey, err := board.ParseSortKey(input.Sort)
	if err != nil {
		return opts, fmt.Errorf("%w: %v", ErrInvalidSort, err)
	}
	opts.Sort = sortKey
	return opts, nil
}

func parseStatus(s string) (models.TaskStatus, error) {
	status := models.TaskStatus(strings.TrimSpace(s))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return status, nil
}

func parsePriority(s string) (models.TaskPriority, error) {
	priority := models.TaskPriority(strings.TrimSpace(s))
	if !priority.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return priority, nil
}

func parseDate(s string) (models.Date, error) {
	d, err := models.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return d, nil
}

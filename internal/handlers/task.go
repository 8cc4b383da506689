package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/task-board-api/internal/board"
	"github.com/yukikurage/task-board-api/internal/dto"
	apierrors "github.com/yukikurage/task-board-api/internal/errors"
	"github.com/yukikurage/task-board-api/internal/middleware"
	"github.com/yukikurage/task-board-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns every task, optionally filtered by status and sorted.
// Query parameters win over the view stored in the session.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	prefs := loadPreferences(c)
	if status, ok := c.GetQuery("status"); ok {
		prefs.Status = status
	}
	if sortKey, ok := c.GetQuery("sort"); ok {
		prefs.Sort = sortKey
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		Status: prefs.Status,
		Sort:   prefs.Sort,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
	})
}

// GetBoard returns the tasks grouped into ordered columns
func (h *TaskHandler) GetBoard(c *gin.Context) {
	columns, err := h.taskService.Board(c.Request.Context())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BoardResponse{Columns: columns})
}

// GetTask returns the task loaded by RequireTask
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, task)
}

// CreateTask creates a new task at the end of its status group
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies the fields present in the body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task.ID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// ReorderTasks saves a whole board arrangement
func (h *TaskHandler) ReorderTasks(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.Empty() {
		apierrors.BadRequest(c, "Either columns or tasks is required")
		return
	}

	res, err := h.taskService.ReorderTasks(c.Request.Context(), req.Arrangement())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReorderResponse(res))
}

// MoveTask drags one task into a status group
func (h *TaskHandler) MoveTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	res, err := h.taskService.MoveTask(c.Request.Context(), task.ID, req.Status, req.Index)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReorderResponse(res))
}

// GetDashboard returns the board summary
func (h *TaskHandler) GetDashboard(c *gin.Context) {
	summary, err := h.taskService.Dashboard(c.Request.Context())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GenerateTasks suggests task drafts from free text using AI
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	var req dto.GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.taskService.SuggestTasks(c.Request.Context(), req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": drafts,
	})
}

func respondTaskError(c *gin.Context, err error) {
	var missing *services.MissingFieldsError
	var reorderErr *services.ReorderError

	switch {
	case errors.As(err, &missing):
		apierrors.MissingFields(c, "Missing required fields", missing.Fields)
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrInvalidSort):
		apierrors.InvalidFormat(c, err.Error())
	case errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrTextRequired),
		errors.Is(err, services.ErrTextTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, board.ErrInvalidArrangement):
		apierrors.InvalidArrangement(c, err.Error())
	case errors.As(err, &reorderErr):
		if reorderErr.Tasks == nil {
			apierrors.OperationFailed(c, "Failed to save task order; reload the board", nil)
			return
		}
		apierrors.OperationFailed(c, "Failed to save task order", gin.H{"tasks": reorderErr.Tasks})
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
	case errors.Is(err, services.ErrAINoTasksGenerated),
		errors.Is(err, services.ErrAINoValidTasks):
		apierrors.RespondWithError(c, http.StatusUnprocessableEntity,
			apierrors.NewAPIError(apierrors.ErrCodeOperationFailed, err.Error()))
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("Task request failed")
		_ = c.Error(err)
		apierrors.InternalError(c, "Internal server error")
	}
}

package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/task-board-api/internal/constants"
	apierrors "github.com/yukikurage/task-board-api/internal/errors"
	"github.com/yukikurage/task-board-api/internal/models"
	"github.com/yukikurage/task-board-api/internal/services"
)

// TaskFinder loads a single task by ID.
type TaskFinder interface {
	GetTask(ctx context.Context, id string) (*models.Task, error)
}

// RequireTask loads the task named by the :id parameter into the context.
// Missing tasks end the request with 404.
func RequireTask(finder TaskFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID := c.Param("id")
		if taskID == "" {
			apierrors.BadRequest(c, "Task ID is required")
			c.Abort()
			return
		}

		task, err := finder.GetTask(c.Request.Context(), taskID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				log.WithError(err).WithField("task_id", taskID).Error("Failed to load task")
				apierrors.InternalError(c, "Failed to load task")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTask, *task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTask
func GetTask(c *gin.Context) (models.Task, bool) {
	v, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := v.(models.Task)
	return task, ok
}

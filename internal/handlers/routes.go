package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-board-api/internal/middleware"
)

// Handlers bundles everything RegisterRoutes mounts.
type Handlers struct {
	Health      *HealthHandler
	Tasks       *TaskHandler
	Preferences *PreferencesHandler
	TaskFinder  middleware.TaskFinder
}

// RegisterRoutes mounts the API. Preferences need the sessions middleware
// installed on r.
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/health", h.Health.Health)

	api := r.Group("/api")
	{
		api.GET("/board", h.Tasks.GetBoard)
		api.GET("/dashboard", h.Tasks.GetDashboard)

		api.GET("/preferences", h.Preferences.GetPreferences)
		api.PUT("/preferences", h.Preferences.UpdatePreferences)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.Tasks.ListTasks)
			tasks.POST("", h.Tasks.CreateTask)
			tasks.PUT("/reorder", h.Tasks.ReorderTasks)
			tasks.POST("/generate", h.Tasks.GenerateTasks)
			tasks.GET("/:id", middleware.RequireTask(h.TaskFinder), h.Tasks.GetTask)
			tasks.PUT("/:id", middleware.RequireTask(h.TaskFinder), h.Tasks.UpdateTask)
			tasks.PATCH("/:id", middleware.RequireTask(h.TaskFinder), h.Tasks.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTask(h.TaskFinder), h.Tasks.DeleteTask)
			tasks.POST("/:id/move", middleware.RequireTask(h.TaskFinder), h.Tasks.MoveTask)
		}
	}
}

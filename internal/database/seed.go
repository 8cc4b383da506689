package database

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yukikurage/task-board-api/internal/models"
	"github.com/yukikurage/task-board-api/internal/repository"
	"gorm.io/gorm"
)

// SeedTasks is the starter board inserted into an empty database.
func SeedTasks() []models.Task {
	return []models.Task{
		{
			Title:       "Design new landing page",
			Description: "Create wireframes and high-fidelity mockups for the new marketing landing page. Include mobile and desktop versions.",
			Status:      models.TaskStatusInProgress,
			Priority:    models.TaskPriorityHigh,
			DueDate:     models.NewDate(2025, 1, 15),
			CreatedAt:   models.NewDate(2024, 12, 20),
			Order:       0,
		},
		{
			Title:       "Set up CI/CD pipeline",
			Description: "Configure GitHub Actions for automated testing and deployment to staging environment.",
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityHigh,
			DueDate:     models.NewDate(2025, 1, 10),
			CreatedAt:   models.NewDate(2024, 12, 18),
			Order:       0,
		},
		{
			Title:       "Write API documentation",
			Description: "Document all REST API endpoints using OpenAPI/Swagger specification.",
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityMedium,
			DueDate:     models.NewDate(2025, 1, 20),
			CreatedAt:   models.NewDate(2024, 12, 19),
			Order:       1,
		},
		{
			Title:       "Fix navigation bug on mobile",
			Description: "The hamburger menu doesn't close after selecting a menu item on iOS devices.",
			Status:      models.TaskStatusCompleted,
			Priority:    models.TaskPriorityMedium,
			DueDate:     models.NewDate(2024, 12, 22),
			CreatedAt:   models.NewDate(2024, 12, 15),
			Order:       0,
		},
		{
			Title:       "Implement user authentication",
			Description: "Add login, registration, and password reset functionality.",
			Status:      models.TaskStatusInProgress,
			Priority:    models.TaskPriorityHigh,
			DueDate:     models.NewDate(2025, 1, 5),
			CreatedAt:   models.NewDate(2024, 12, 10),
			Order:       1,
		},
		{
			Title:       "Optimize database queries",
			Description: "Review and optimize slow database queries identified in the performance audit.",
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityLow,
			DueDate:     models.NewDate(2025, 2, 1),
			CreatedAt:   models.NewDate(2024, 12, 21),
			Order:       2,
		},
		{
			Title:       "Update dependencies",
			Description: "Update all packages to their latest stable versions and fix any breaking changes.",
			Status:      models.TaskStatusCompleted,
			Priority:    models.TaskPriorityLow,
			DueDate:     models.NewDate(2024, 12, 20),
			CreatedAt:   models.NewDate(2024, 12, 12),
			Order:       1,
		},
		{
			Title:       "Create onboarding flow",
			Description: "Design and implement a step-by-step onboarding experience for new users.",
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityMedium,
			DueDate:     models.NewDate(2025, 1, 25),
			CreatedAt:   models.NewDate(2024, 12, 22),
			Order:       3,
		},
	}
}

// Seed inserts SeedTasks when the tasks table is empty. It reports how
// many rows were written.
func Seed(ctx context.Context, db *gorm.DB) (int, error) {
	count, err := repository.NewTaskRepository(db).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tasks := SeedTasks()
	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tasks).Error
	}); err != nil {
		return 0, fmt.Errorf("failed to seed tasks: %w", err)
	}

	log.WithField("count", len(tasks)).Info("Seeded starter tasks")
	return len(tasks), nil
}

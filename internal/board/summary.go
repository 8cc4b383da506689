package board

import (
	"math"
	"sort"

	"github.com/yukikurage/task-board-api/internal/models"
)

const (
	upcomingWindowDays = 7
	weeklyProgressDays = 7
)

// DayProgress counts tasks created on a day, and how many of those are
// already completed.
type DayProgress struct {
	Date      models.Date `json:"date"`
	Day       string      `json:"day"`
	Created   int         `json:"created"`
	Completed int         `json:"completed"`
}

// Summary is the derived state behind the dashboard.
type Summary struct {
	Total             int                         `json:"total"`
	ByStatus          map[models.TaskStatus]int   `json:"byStatus"`
	ByPriority        map[models.TaskPriority]int `json:"byPriority"`
	CompletionRate    int                         `json:"completionRate"`
	ProductivityScore int                         `json:"productivityScore"`
	Upcoming          []models.Task               `json:"upcoming"`
	Overdue           []models.Task               `json:"overdue"`
	WeeklyProgress    []DayProgress               `json:"weeklyProgress"`
}

// Summarize computes dashboard figures for tasks as of today.
func Summarize(tasks []models.Task, today models.Date) Summary {
	s := Summary{
		Total:      len(tasks),
		ByStatus:   make(map[models.TaskStatus]int, len(models.TaskStatuses)),
		ByPriority: make(map[models.TaskPriority]int, 3),
		Upcoming:   []models.Task{},
		Overdue:    []models.Task{},
	}
	for _, st := range models.TaskStatuses {
		s.ByStatus[st] = 0
	}
	for _, p := range []models.TaskPriority{models.TaskPriorityHigh, models.TaskPriorityMedium, models.TaskPriorityLow} {
		s.ByPriority[p] = 0
	}

	horizon := today.AddDays(upcomingWindowDays)
	for _, t := range tasks {
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++

		if t.Status == models.TaskStatusCompleted {
			continue
		}
		switch {
		case t.DueDate.Before(today):
			s.Overdue = append(s.Overdue, t)
		case !t.DueDate.After(horizon):
			s.Upcoming = append(s.Upcoming, t)
		}
	}
	sort.SliceStable(s.Upcoming, func(i, j int) bool {
		return s.Upcoming[i].DueDate.Before(s.Upcoming[j].DueDate)
	})

	if s.Total > 0 {
		completed := s.ByStatus[models.TaskStatusCompleted]
		inProgress := s.ByStatus[models.TaskStatusInProgress]
		s.CompletionRate = percent(float64(completed), float64(s.Total))
		s.ProductivityScore = percent(float64(completed)+0.5*float64(inProgress), float64(s.Total))
	}

	s.WeeklyProgress = weeklyProgress(tasks, today)
	return s
}

func weeklyProgress(tasks []models.Task, today models.Date) []DayProgress {
	days := make([]DayProgress, 0, weeklyProgressDays)
	for i := weeklyProgressDays - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		p := DayProgress{Date: day, Day: day.Weekday().String()[:3]}
		for _, t := range tasks {
			if !t.CreatedAt.Equal(day) {
				continue
			}
			p.Created++
			if t.Status == models.TaskStatusCompleted {
				p.Completed++
			}
		}
		days = append(days, p)
	}
	return days
}

func percent(part, total float64) int {
	return int(math.Round(part / total * 100))
}

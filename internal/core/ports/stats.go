package ports

import (
	"context"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/stats"
)

// DashboardStats is the headline view: status counts plus the most
// recently created tasks.
type DashboardStats struct {
	Counts stats.StatusCounts
	Recent []domain.Task
}

// ProjectOverview is the projects view: status counts, the archived
// (soft-deleted) figure, the past-week creation count and per-category
// progress.
type ProjectOverview struct {
	Counts     stats.StatusCounts
	Deleted    int
	PastWeek   int
	Categories []stats.CategoryStats
}

type StatsService interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
	Projects(ctx context.Context) (ProjectOverview, error)
}

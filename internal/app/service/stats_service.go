package service

import (
	"context"
	"time"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
	"github.com/Ganderlu/taskmate/internal/core/stats"
)

const (
	recentTaskLimit  = 5
	recentWindowDays = 7
)

// StatsService feeds the dashboard and projects views. It fetches a
// fresh snapshot per call and hands it to the pure aggregation
// functions; it never caches derived figures.
type StatsService struct {
	session    domain.Session
	tasks      ports.TaskRepository
	categories ports.CategoryService
}

var _ ports.StatsService = (*StatsService)(nil)

func NewStatsService(session domain.Session, tasks ports.TaskRepository, categories ports.CategoryService) *StatsService {
	return &StatsService{session: session, tasks: tasks, categories: categories}
}

func (s *StatsService) Dashboard(ctx context.Context) (ports.DashboardStats, error) {
	active, err := s.tasks.ListActive(ctx, s.session.UserID)
	if err != nil {
		return ports.DashboardStats{}, err
	}

	recent, err := s.tasks.ListRecent(ctx, s.session.UserID, time.Time{}, recentTaskLimit)
	if err != nil {
		return ports.DashboardStats{}, err
	}

	return ports.DashboardStats{
		Counts: stats.ComputeStatusCounts(active),
		Recent: recent,
	}, nil
}

func (s *StatsService) Projects(ctx context.Context) (ports.ProjectOverview, error) {
	active, err := s.tasks.ListActive(ctx, s.session.UserID)
	if err != nil {
		return ports.ProjectOverview{}, err
	}

	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		return ports.ProjectOverview{}, err
	}

	deleted, err := s.tasks.CountDeleted(ctx, s.session.UserID)
	if err != nil {
		return ports.ProjectOverview{}, err
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -recentWindowDays)
	return ports.ProjectOverview{
		Counts:     stats.ComputeStatusCounts(active),
		Deleted:    deleted,
		PastWeek:   len(stats.ComputeRecentWindow(active, weekAgo)),
		Categories: stats.ComputeCategoryProgress(active, categories),
	}, nil
}

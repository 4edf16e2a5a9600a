// Package stats computes derived, read-only figures from task snapshots.
// Every function is pure: same snapshot in, same result out, no store
// access and no retained references.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/Ganderlu/taskmate/internal/core/domain"
)

// StatusCounts are per-status totals over the non-deleted subset of a
// snapshot. Pending and ongoing are tracked separately for the projects
// view and merged through Active for the headline dashboard figure.
type StatusCounts struct {
	Total     int
	Pending   int
	Ongoing   int
	Completed int
	Cancelled int
}

// Active is the combined pending+ongoing dashboard metric.
func (c StatusCounts) Active() int {
	return c.Pending + c.Ongoing
}

// CategoryStats is the per-category progress row for the projects view.
type CategoryStats struct {
	Name      string
	Total     int
	Completed int
	Progress  int
}

// ComputeStatusCounts counts tasks by status, skipping soft-deleted ones.
func ComputeStatusCounts(tasks []domain.Task) StatusCounts {
	var counts StatusCounts
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		counts.Total++
		switch t.Status {
		case domain.TaskStatusPending:
			counts.Pending++
		case domain.TaskStatusOngoing:
			counts.Ongoing++
		case domain.TaskStatusCompleted:
			counts.Completed++
		case domain.TaskStatusCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

// ComputeCategoryProgress builds one row per registry category over the
// non-deleted subset, grouping by the effective category so tasks with
// no category land in the default bucket. Progress is 0 for an empty
// category, never NaN. Rows are ordered by descending total; ties keep
// the registry's input order.
func ComputeCategoryProgress(tasks []domain.Task, categories []string) []CategoryStats {
	byCategory := make(map[string]*CategoryStats, len(categories))
	rows := make([]CategoryStats, 0, len(categories))
	for _, name := range categories {
		rows = append(rows, CategoryStats{Name: name})
	}
	for i := range rows {
		byCategory[rows[i].Name] = &rows[i]
	}

	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		row, ok := byCategory[t.EffectiveCategory()]
		if !ok {
			continue
		}
		row.Total++
		if t.Status == domain.TaskStatusCompleted {
			row.Completed++
		}
	}

	for i := range rows {
		if rows[i].Total > 0 {
			rows[i].Progress = int(math.Round(float64(rows[i].Completed) / float64(rows[i].Total) * 100))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows
}

// ComputeRecentWindow returns the non-deleted tasks created at or after
// since, preserving snapshot order.
func ComputeRecentWindow(tasks []domain.Task, since time.Time) []domain.Task {
	recent := make([]domain.Task, 0)
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		if t.CreatedAt.Before(since) {
			continue
		}
		recent = append(recent, t)
	}
	return recent
}

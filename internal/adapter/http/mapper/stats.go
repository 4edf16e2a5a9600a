package mapper

import (
	"github.com/Ganderlu/taskmate/internal/adapter/http/dto"
	"github.com/Ganderlu/taskmate/internal/core/ports"
	"github.com/Ganderlu/taskmate/internal/core/stats"
)

func ToStatusCounts(counts stats.StatusCounts) dto.StatusCounts {
	return dto.StatusCounts{
		Total:     counts.Total,
		Pending:   counts.Pending,
		Ongoing:   counts.Ongoing,
		Completed: counts.Completed,
		Cancelled: counts.Cancelled,
		Active:    counts.Active(),
	}
}

func ToDashboardResponse(dashboard ports.DashboardStats) dto.DashboardResponse {
	return dto.DashboardResponse{
		Counts: ToStatusCounts(dashboard.Counts),
		Recent: ToTaskItems(dashboard.Recent),
	}
}

func ToProjectsResponse(overview ports.ProjectOverview) dto.ProjectsResponse {
	projects := make([]dto.ProjectStatsItem, 0, len(overview.Categories))
	for _, row := range overview.Categories {
		projects = append(projects, dto.ProjectStatsItem{
			Name:      row.Name,
			Total:     row.Total,
			Completed: row.Completed,
			Progress:  row.Progress,
		})
	}

	return dto.ProjectsResponse{
		Counts:   ToStatusCounts(overview.Counts),
		Deleted:  overview.Deleted,
		PastWeek: overview.PastWeek,
		Projects: projects,
	}
}

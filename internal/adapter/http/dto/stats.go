package dto

type StatusCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
	Active    int `json:"active"`
}

type DashboardResponse struct {
	Counts StatusCounts `json:"counts"`
	Recent []TaskItem   `json:"recent"`
}

type ProjectStatsItem struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Progress  int    `json:"progress"`
}

type ProjectsResponse struct {
	Counts   StatusCounts       `json:"counts"`
	Deleted  int                `json:"deleted"`
	PastWeek int                `json:"past_week"`
	Projects []ProjectStatsItem `json:"projects"`
}

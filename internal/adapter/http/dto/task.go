package dto

type TaskItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Priority    *string `json:"priority,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime   *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time" binding:"omitempty,datetime=15:04"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time" binding:"omitempty,datetime=15:04"`
	Category    *string `json:"category" binding:"omitempty,max=100"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending ongoing completed cancelled"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type DraftRequest struct {
	Prompt string `json:"prompt" binding:"required,max=2000"`
}

type TaskDraftResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

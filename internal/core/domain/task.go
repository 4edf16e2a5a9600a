package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusOngoing   TaskStatus = "ongoing"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Dates are stored as plain calendar strings, times as 24h wall-clock
// strings. A task without a start time sorts before any timed task since
// the empty string is the lowest key in ascending lexical order.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Task struct {
	ID          string
	OwnerID     string
	Title       string
	Description *string
	Date        string
	StartTime   *string
	EndTime     *string
	Category    *string
	Status      TaskStatus
	Priority    *TaskPriority
	Deleted     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Date        string
	StartTime   *string
	EndTime     *string
	Category    *string
	Priority    *TaskPriority
}

type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Date           *string
	StartTime      *string
	StartTimeSet   bool
	EndTime        *string
	EndTimeSet     bool
	Category       *string
	CategorySet    bool
	Status         *TaskStatus
	Priority       *TaskPriority
	PrioritySet    bool
}

// TaskDraft is the structured output of the generative task extractor.
// It is untrusted input and goes through the same validation as a
// manually filled creation form.
type TaskDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// EffectiveCategory applies the category fallback used for grouping and
// filtering. A task's category is free text and need not exist in the
// registry.
func (t Task) EffectiveCategory() string {
	if t.Category == nil || *t.Category == "" {
		return DefaultCategory
	}
	return *t.Category
}

// StartKey is the sort key for the daily list.
func (t Task) StartKey() string {
	if t.StartTime == nil {
		return ""
	}
	return *t.StartTime
}

package mapper

import (
	"time"

	"github.com/Ganderlu/taskmate/internal/adapter/http/dto"
	"github.com/Ganderlu/taskmate/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Date:      task.Date,
		Category:  task.EffectiveCategory(),
		Status:    string(task.Status),
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.StartTime != nil {
		value := *task.StartTime
		item.StartTime = &value
	}

	if task.EndTime != nil {
		value := *task.EndTime
		item.EndTime = &value
	}

	if task.Priority != nil {
		value := string(*task.Priority)
		item.Priority = &value
	}

	return item
}

func ToTaskDraftResponse(draft domain.TaskDraft) dto.TaskDraftResponse {
	return dto.TaskDraftResponse{
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Date:        draft.Date,
		StartTime:   draft.StartTime,
		EndTime:     draft.EndTime,
	}
}

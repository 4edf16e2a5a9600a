package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Ganderlu/taskmate/internal/adapter/http/dto"
	"github.com/Ganderlu/taskmate/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.CreateTaskInput{
		Title:       title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Category:    req.Category,
	}

	if req.Priority != nil {
		value := domain.TaskPriority(*req.Priority)
		input.Priority = &value
	}

	return input, nil
}

// BuildUpdateTaskInput distinguishes omitted fields from fields set to
// null by inspecting the raw payload: an explicit null clears an
// optional field, an absent key leaves it alone, and a present key that
// failed binding is rejected.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var title *string
	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		title = &value
	}

	if hasJSONField(raw, "date") && req.Date == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var status *domain.TaskStatus
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Status != nil {
		value := domain.TaskStatus(*req.Status)
		switch value {
		case domain.TaskStatusPending, domain.TaskStatusOngoing, domain.TaskStatusCompleted, domain.TaskStatusCancelled:
		default:
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		status = &value
	}

	descriptionSet := hasJSONField(raw, "description")
	if descriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	startTimeSet := hasJSONField(raw, "start_time")
	if startTimeSet && !isJSONNull(raw["start_time"]) && req.StartTime == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	endTimeSet := hasJSONField(raw, "end_time")
	if endTimeSet && !isJSONNull(raw["end_time"]) && req.EndTime == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	categorySet := hasJSONField(raw, "category")
	if categorySet && !isJSONNull(raw["category"]) && req.Category == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var priority *domain.TaskPriority
	prioritySet := hasJSONField(raw, "priority")
	if prioritySet && !isJSONNull(raw["priority"]) {
		if req.Priority == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		value := domain.TaskPriority(*req.Priority)
		switch value {
		case domain.TaskPriorityLow, domain.TaskPriorityMedium, domain.TaskPriorityHigh:
		default:
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		priority = &value
	}

	return domain.UpdateTaskInput{
		Title:          title,
		Description:    req.Description,
		DescriptionSet: descriptionSet,
		Date:           req.Date,
		StartTime:      req.StartTime,
		StartTimeSet:   startTimeSet,
		EndTime:        req.EndTime,
		EndTimeSet:     endTimeSet,
		Category:       req.Category,
		CategorySet:    categorySet,
		Status:         status,
		Priority:       priority,
		PrioritySet:    prioritySet,
	}, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "date") ||
		hasJSONField(raw, "start_time") ||
		hasJSONField(raw, "end_time") ||
		hasJSONField(raw, "category") ||
		hasJSONField(raw, "status") ||
		hasJSONField(raw, "priority")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}

package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

// TaskService owns the daily task list for one principal. The cache is
// scoped to the currently selected date and is rebuilt whenever the
// selection changes; mutations are applied optimistically against the
// cache before the store write resolves, with rollback (toggle) or a
// full resync (delete) when the write fails.
type TaskService struct {
	session domain.Session
	tasks   ports.TaskRepository

	mu      sync.Mutex
	date    string
	loadGen uint64
	cache   []domain.Task
}

var _ ports.TaskService = (*TaskService)(nil)

func NewTaskService(session domain.Session, tasks ports.TaskRepository) *TaskService {
	return &TaskService{session: session, tasks: tasks}
}

// LoadForDate replaces the cache with the non-deleted tasks for the
// given date, sorted ascending by start time with untimed tasks first.
// Concurrent loads race on a generation counter: a result that arrives
// after the selection moved on is discarded, never merged into the
// wrong date's cache.
func (s *TaskService) LoadForDate(ctx context.Context, date string) ([]domain.Task, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.date = date
	s.loadGen++
	gen := s.loadGen
	s.mu.Unlock()

	list, err := s.tasks.ListForDate(ctx, s.session.UserID, date)
	if err != nil {
		return nil, err
	}
	sortByStartTime(list)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadGen != gen || s.date != date {
		return nil, domain.ErrStaleSelection
	}
	s.cache = list
	return snapshot(s.cache), nil
}

// Tasks returns a copy of the current cache.
func (s *TaskService) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.cache)
}

func (s *TaskService) Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	input.Title = strings.TrimSpace(input.Title)
	if err := validateCreateTaskInput(input); err != nil {
		return domain.Task{}, err
	}

	task, err := s.tasks.Create(ctx, s.session.UserID, input)
	if err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	if task.Date == s.date {
		s.cache = append(s.cache, task)
		sortByStartTime(s.cache)
	}
	s.mu.Unlock()
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (domain.Task, error) {
	return s.getOwned(ctx, id)
}

// getOwned fetches a task and rejects ids belonging to another
// principal. A foreign task reads as not-found so the response never
// confirms that the id exists.
func (s *TaskService) getOwned(ctx context.Context, id string) (domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if task.OwnerID != s.session.UserID {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	if err := validateUpdateTaskInput(input); err != nil {
		return domain.Task{}, err
	}

	// The edit view fetched this task already, but re-check here so a
	// task deleted in between fails as not-found instead of silently
	// resurrecting fields on a dead record. The ownership check rides
	// along: only the owner may write.
	if _, err := s.getOwned(ctx, id); err != nil {
		return domain.Task{}, err
	}
	if err := s.tasks.Update(ctx, id, input); err != nil {
		return domain.Task{}, err
	}

	updated, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		if updated.Date == s.date {
			s.cache[idx] = updated
			sortByStartTime(s.cache)
		} else {
			s.cache = append(s.cache[:idx], s.cache[idx+1:]...)
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// ToggleStatus flips a task between completed and pending, applying the
// new status locally before the store write resolves. A failed write
// rolls the cache entry back to its pre-toggle status, so the caller
// observes no net change. Ongoing and cancelled tasks complete on first
// toggle like pending ones; only the completed state is ever toggled
// off.
func (s *TaskService) ToggleStatus(ctx context.Context, id string) (domain.Task, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return domain.Task{}, domain.ErrTaskNotFound
	}

	prior := s.cache[idx].Status
	next := domain.TaskStatusCompleted
	if prior == domain.TaskStatusCompleted {
		next = domain.TaskStatusPending
	}
	s.cache[idx].Status = next
	toggled := s.cache[idx]
	s.mu.Unlock()

	err := s.tasks.Update(ctx, id, domain.UpdateTaskInput{Status: &next})
	if err == nil {
		return toggled, nil
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 && s.cache[idx].Status == next {
		s.cache[idx].Status = prior
	}
	s.mu.Unlock()
	return domain.Task{}, fmt.Errorf("toggle task status: %w", err)
}

// SoftDelete removes the task from the cache immediately and marks it
// deleted in the store. A failed write cannot be safely un-applied by
// reinserting stale data, so the cache is resynchronized from the store
// instead and the failure still surfaces to the caller.
func (s *TaskService) SoftDelete(ctx context.Context, id string) error {
	if _, err := s.getOwned(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	if idx := s.indexOf(id); idx >= 0 {
		s.cache = append(s.cache[:idx], s.cache[idx+1:]...)
	}
	date := s.date
	s.mu.Unlock()

	err := s.tasks.SoftDelete(ctx, id)
	if err == nil {
		return nil
	}

	if date != "" {
		if _, reloadErr := s.LoadForDate(ctx, date); reloadErr != nil {
			zap.L().Warn("failed to resync after delete failure",
				zap.String("date", date), zap.Error(reloadErr))
		}
	}
	return fmt.Errorf("soft delete task: %w", err)
}

// Duplicate copies a task into a fresh pending one.
func (s *TaskService) Duplicate(ctx context.Context, id string) (domain.Task, error) {
	original, err := s.getOwned(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	return s.Create(ctx, domain.CreateTaskInput{
		Title:       original.Title,
		Description: original.Description,
		Date:        original.Date,
		StartTime:   original.StartTime,
		EndTime:     original.EndTime,
		Category:    original.Category,
		Priority:    original.Priority,
	})
}

// indexOf must be called with s.mu held.
func (s *TaskService) indexOf(id string) int {
	for i := range s.cache {
		if s.cache[i].ID == id {
			return i
		}
	}
	return -1
}

func sortByStartTime(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].StartKey() < tasks[j].StartKey()
	})
}

func snapshot(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}

func validateDate(date string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	return nil
}

func validateTime(value string) error {
	if _, err := time.Parse(domain.TimeLayout, value); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", domain.ErrInvalidInput)
	}
	return nil
}

func validateCreateTaskInput(input domain.CreateTaskInput) error {
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if err := validateDate(input.Date); err != nil {
		return err
	}
	for _, value := range []*string{input.StartTime, input.EndTime} {
		if value == nil {
			continue
		}
		if err := validateTime(*value); err != nil {
			return err
		}
	}
	return nil
}

func validateUpdateTaskInput(input domain.UpdateTaskInput) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
	}
	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return err
		}
	}
	for _, value := range []*string{input.StartTime, input.EndTime} {
		if value == nil {
			continue
		}
		if err := validateTime(*value); err != nil {
			return err
		}
	}
	return nil
}

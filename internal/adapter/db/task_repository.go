package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

const insertTaskQuery = `
INSERT INTO tasks (id, owner_id, title, description, date, start_time, end_time, category, status, priority, deleted, created_at, updated_at)
VALUES (:id, :owner_id, :title, :description, :date, :start_time, :end_time, :category, :status, :priority, :deleted, :created_at, :updated_at);
`

const getTaskQuery = `
SELECT * FROM tasks WHERE id = ?;
`

const listTasksForDateQuery = `
SELECT * FROM tasks
WHERE owner_id = ? AND date = ? AND deleted = FALSE;
`

const listActiveTasksQuery = `
SELECT * FROM tasks
WHERE owner_id = ? AND deleted = FALSE;
`

const listRecentTasksQuery = `
SELECT * FROM tasks
WHERE owner_id = ? AND deleted = FALSE AND created_at >= ?
ORDER BY created_at DESC
LIMIT ?;
`

const countDeletedTasksQuery = `
SELECT COUNT(*) FROM tasks WHERE owner_id = ? AND deleted = TRUE;
`

const softDeleteTaskQuery = `
UPDATE tasks SET deleted = TRUE, updated_at = ? WHERE id = ?;
`

type TaskRepository struct {
	db  *sqlx.DB
	bus ports.ChangeBus
}

type taskRow struct {
	ID          string         `db:"id"`
	OwnerID     string         `db:"owner_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Date        string         `db:"date"`
	StartTime   sql.NullString `db:"start_time"`
	EndTime     sql.NullString `db:"end_time"`
	Category    sql.NullString `db:"category"`
	Status      string         `db:"status"`
	Priority    sql.NullString `db:"priority"`
	Deleted     bool           `db:"deleted"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB, bus ports.ChangeBus) *TaskRepository {
	return &TaskRepository{db: db, bus: bus}
}

func (r *TaskRepository) Create(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error) {
	now := time.Now().UTC().Truncate(time.Second)
	row := taskRow{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: toNullString(input.Description),
		Date:        input.Date,
		StartTime:   toNullString(input.StartTime),
		EndTime:     toNullString(input.EndTime),
		Category:    toNullString(input.Category),
		Status:      string(domain.TaskStatusPending),
		Priority:    priorityToNullString(input.Priority),
		Deleted:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.db.NamedExecContext(ctx, insertTaskQuery, row); err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	r.notify(ctx)
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, input domain.UpdateTaskInput) error {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC().Truncate(time.Second)}

	if input.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *input.Title)
	}
	if input.DescriptionSet {
		sets = append(sets, "description = ?")
		args = append(args, toNullString(input.Description))
	}
	if input.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *input.Date)
	}
	if input.StartTimeSet {
		sets = append(sets, "start_time = ?")
		args = append(args, toNullString(input.StartTime))
	}
	if input.EndTimeSet {
		sets = append(sets, "end_time = ?")
		args = append(args, toNullString(input.EndTime))
	}
	if input.CategorySet {
		sets = append(sets, "category = ?")
		args = append(args, toNullString(input.Category))
	}
	if input.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*input.Status))
	}
	if input.PrioritySet {
		sets = append(sets, "priority = ?")
		args = append(args, priorityToNullString(input.Priority))
	}

	query := fmt.Sprintf("UPDATE tasks SET %s WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	r.notify(ctx)
	return nil
}

func (r *TaskRepository) SoftDelete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, softDeleteTaskQuery, time.Now().UTC().Truncate(time.Second), id); err != nil {
		return fmt.Errorf("soft delete task: %w", err)
	}

	r.notify(ctx)
	return nil
}

// GetByID treats a soft-deleted task the same as a missing one: callers
// asking for a single task are edit/detail views, which must never render
// a deleted record.
func (r *TaskRepository) GetByID(ctx context.Context, id string) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, getTaskQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("get task: %w", err)
	}
	if row.Deleted {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) ListForDate(ctx context.Context, ownerID, date string) ([]domain.Task, error) {
	return r.selectTasks(ctx, listTasksForDateQuery, ownerID, date)
}

func (r *TaskRepository) ListActive(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return r.selectTasks(ctx, listActiveTasksQuery, ownerID)
}

func (r *TaskRepository) ListRecent(ctx context.Context, ownerID string, since time.Time, limit int) ([]domain.Task, error) {
	return r.selectTasks(ctx, listRecentTasksQuery, ownerID, since, limit)
}

func (r *TaskRepository) CountDeleted(ctx context.Context, ownerID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, countDeletedTasksQuery, ownerID); err != nil {
		return 0, fmt.Errorf("count deleted tasks: %w", err)
	}
	return count, nil
}

func (r *TaskRepository) selectTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	return tasks, nil
}

func (r *TaskRepository) notify(ctx context.Context) {
	if r.bus == nil {
		return
	}
	if err := r.bus.Publish(ctx, ports.CollectionTasks); err != nil {
		zap.L().Warn("failed to publish task change", zap.Error(err))
	}
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Title:     row.Title,
		Date:      row.Date,
		Status:    domain.TaskStatus(row.Status),
		Deleted:   row.Deleted,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	task.Description = fromNullString(row.Description)
	task.StartTime = fromNullString(row.StartTime)
	task.EndTime = fromNullString(row.EndTime)
	task.Category = fromNullString(row.Category)

	if row.Priority.Valid {
		value := domain.TaskPriority(row.Priority.String)
		task.Priority = &value
	}

	return task
}

func toNullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func fromNullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	result := value.String
	return &result
}

func priorityToNullString(value *domain.TaskPriority) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*value), Valid: true}
}

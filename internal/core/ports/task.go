package ports

import (
	"context"
	"time"

	"github.com/Ganderlu/taskmate/internal/core/domain"
)

type TaskRepository interface {
	Create(ctx context.Context, ownerID string, input domain.CreateTaskInput) (domain.Task, error)
	Update(ctx context.Context, id string, input domain.UpdateTaskInput) error
	SoftDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (domain.Task, error)
	ListForDate(ctx context.Context, ownerID, date string) ([]domain.Task, error)
	ListActive(ctx context.Context, ownerID string) ([]domain.Task, error)
	ListRecent(ctx context.Context, ownerID string, since time.Time, limit int) ([]domain.Task, error)
	CountDeleted(ctx context.Context, ownerID string) (int, error)
}

type TaskService interface {
	LoadForDate(ctx context.Context, date string) ([]domain.Task, error)
	Tasks() []domain.Task
	Create(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	Update(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error)
	ToggleStatus(ctx context.Context, id string) (domain.Task, error)
	SoftDelete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (domain.Task, error)
}

package ports

import (
	"context"

	"github.com/Ganderlu/taskmate/internal/core/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, ownerID, name string) (domain.Category, error)
	ListNames(ctx context.Context, ownerID string) ([]string, error)
}

type CategoryService interface {
	ListCategories(ctx context.Context) ([]string, error)
	AddCategory(ctx context.Context, name string) ([]string, error)
}

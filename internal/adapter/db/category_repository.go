package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

const insertCategoryQuery = `
INSERT INTO categories (id, owner_id, name, created_at)
VALUES (:id, :owner_id, :name, :created_at);
`

const listCategoryNamesQuery = `
SELECT name FROM categories WHERE owner_id = ? GROUP BY name ORDER BY MIN(created_at);
`

type CategoryRepository struct {
	db  *sqlx.DB
	bus ports.ChangeBus
}

type categoryRow struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *sqlx.DB, bus ports.ChangeBus) *CategoryRepository {
	return &CategoryRepository{db: db, bus: bus}
}

func (r *CategoryRepository) Create(ctx context.Context, ownerID, name string) (domain.Category, error) {
	row := categoryRow{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}

	if _, err := r.db.NamedExecContext(ctx, insertCategoryQuery, row); err != nil {
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}

	if r.bus != nil {
		if err := r.bus.Publish(ctx, ports.CollectionCategories); err != nil {
			zap.L().Warn("failed to publish category change", zap.Error(err))
		}
	}

	return domain.Category{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *CategoryRepository) ListNames(ctx context.Context, ownerID string) ([]string, error) {
	var names []string
	if err := r.db.SelectContext(ctx, &names, listCategoryNamesQuery, ownerID); err != nil {
		return nil, fmt.Errorf("select category names: %w", err)
	}
	return names, nil
}

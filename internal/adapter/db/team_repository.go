package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

const insertTeamQuery = `
INSERT INTO teams (id, owner_id, name, description, created_at)
VALUES (:id, :owner_id, :name, :description, :created_at);
`

const getTeamQuery = `
SELECT * FROM teams WHERE id = ?;
`

const listTeamsByOwnerQuery = `
SELECT * FROM teams WHERE owner_id = ? ORDER BY created_at;
`

type TeamRepository struct {
	db  *sqlx.DB
	bus ports.ChangeBus
}

type teamRow struct {
	ID          string         `db:"id"`
	OwnerID     string         `db:"owner_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedAt   time.Time      `db:"created_at"`
}

var _ ports.TeamRepository = (*TeamRepository)(nil)

func NewTeamRepository(db *sqlx.DB, bus ports.ChangeBus) *TeamRepository {
	return &TeamRepository{db: db, bus: bus}
}

func (r *TeamRepository) Create(ctx context.Context, ownerID string, input domain.CreateTeamInput) (domain.Team, error) {
	row := teamRow{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: toNullString(input.Description),
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	if _, err := r.db.NamedExecContext(ctx, insertTeamQuery, row); err != nil {
		return domain.Team{}, fmt.Errorf("insert team: %w", err)
	}

	if r.bus != nil {
		if err := r.bus.Publish(ctx, ports.CollectionTeams); err != nil {
			zap.L().Warn("failed to publish team change", zap.Error(err))
		}
	}

	return mapTeamRowToDomainTeam(row), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (domain.Team, error) {
	var row teamRow
	if err := r.db.GetContext(ctx, &row, getTeamQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Team{}, domain.ErrTeamNotFound
		}
		return domain.Team{}, fmt.Errorf("get team: %w", err)
	}
	return mapTeamRowToDomainTeam(row), nil
}

func (r *TeamRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Team, error) {
	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, listTeamsByOwnerQuery, ownerID); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	teams := make([]domain.Team, 0, len(rows))
	for _, row := range rows {
		teams = append(teams, mapTeamRowToDomainTeam(row))
	}
	return teams, nil
}

func mapTeamRowToDomainTeam(row teamRow) domain.Team {
	return domain.Team{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		Name:        row.Name,
		Description: fromNullString(row.Description),
		CreatedAt:   row.CreatedAt,
	}
}

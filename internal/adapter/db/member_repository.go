package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

const insertMemberQuery = `
INSERT INTO team_members (id, team_id, owner_id, email, role, status, user_id, added_at, joined_at)
VALUES (:id, :team_id, :owner_id, :email, :role, :status, :user_id, :added_at, :joined_at);
`

const activateMemberQuery = `
UPDATE team_members SET status = ?, user_id = ?, joined_at = ? WHERE id = ?;
`

const deleteMemberQuery = `
DELETE FROM team_members WHERE id = ?;
`

const getMemberQuery = `
SELECT * FROM team_members WHERE id = ?;
`

const listMembersByTeamQuery = `
SELECT * FROM team_members WHERE team_id = ? ORDER BY added_at;
`

const countMembersByTeamQuery = `
SELECT COUNT(*) FROM team_members WHERE team_id = ?;
`

const findMemberByTeamAndEmailQuery = `
SELECT * FROM team_members WHERE team_id = ? AND email = ? LIMIT 1;
`

const listPendingMembersByEmailQuery = `
SELECT * FROM team_members WHERE email = ? AND status = 'pending' ORDER BY added_at;
`

type MemberRepository struct {
	db  *sqlx.DB
	bus ports.ChangeBus
}

type memberRow struct {
	ID       string         `db:"id"`
	TeamID   string         `db:"team_id"`
	OwnerID  string         `db:"owner_id"`
	Email    string         `db:"email"`
	Role     string         `db:"role"`
	Status   string         `db:"status"`
	UserID   sql.NullString `db:"user_id"`
	AddedAt  time.Time      `db:"added_at"`
	JoinedAt sql.NullTime   `db:"joined_at"`
}

var _ ports.MemberRepository = (*MemberRepository)(nil)

func NewMemberRepository(db *sqlx.DB, bus ports.ChangeBus) *MemberRepository {
	return &MemberRepository{db: db, bus: bus}
}

func (r *MemberRepository) Create(ctx context.Context, member domain.TeamMember) (domain.TeamMember, error) {
	member.ID = uuid.NewString()
	if member.AddedAt.IsZero() {
		member.AddedAt = time.Now().UTC().Truncate(time.Second)
	}

	row := memberRow{
		ID:      member.ID,
		TeamID:  member.TeamID,
		OwnerID: member.OwnerID,
		Email:   member.Email,
		Role:    string(member.Role),
		Status:  string(member.Status),
		UserID:  toNullString(member.UserID),
		AddedAt: member.AddedAt,
	}
	if member.JoinedAt != nil {
		row.JoinedAt = sql.NullTime{Time: *member.JoinedAt, Valid: true}
	}

	if _, err := r.db.NamedExecContext(ctx, insertMemberQuery, row); err != nil {
		// The unique key on (team_id, email) catches the race where two
		// sessions invite the same address concurrently.
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return domain.TeamMember{}, domain.ErrAlreadyInvited
		}
		return domain.TeamMember{}, fmt.Errorf("insert team member: %w", err)
	}

	r.notify(ctx)
	return member, nil
}

func (r *MemberRepository) Activate(ctx context.Context, id, userID string, joinedAt time.Time) error {
	result, err := r.db.ExecContext(ctx, activateMemberQuery, string(domain.MemberStatusActive), userID, joinedAt, id)
	if err != nil {
		return fmt.Errorf("activate team member: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrMemberNotFound
	}

	r.notify(ctx)
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, deleteMemberQuery, id); err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}

	r.notify(ctx)
	return nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (domain.TeamMember, error) {
	var row memberRow
	if err := r.db.GetContext(ctx, &row, getMemberQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TeamMember{}, domain.ErrMemberNotFound
		}
		return domain.TeamMember{}, fmt.Errorf("get team member: %w", err)
	}
	return mapMemberRowToDomainMember(row), nil
}

func (r *MemberRepository) ListByTeam(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	return r.selectMembers(ctx, listMembersByTeamQuery, teamID)
}

func (r *MemberRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, countMembersByTeamQuery, teamID); err != nil {
		return 0, fmt.Errorf("count team members: %w", err)
	}
	return count, nil
}

func (r *MemberRepository) FindByTeamAndEmail(ctx context.Context, teamID, email string) (domain.TeamMember, error) {
	var row memberRow
	if err := r.db.GetContext(ctx, &row, findMemberByTeamAndEmailQuery, teamID, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TeamMember{}, domain.ErrMemberNotFound
		}
		return domain.TeamMember{}, fmt.Errorf("find team member: %w", err)
	}
	return mapMemberRowToDomainMember(row), nil
}

func (r *MemberRepository) ListPendingByEmail(ctx context.Context, email string) ([]domain.TeamMember, error) {
	return r.selectMembers(ctx, listPendingMembersByEmailQuery, email)
}

func (r *MemberRepository) selectMembers(ctx context.Context, query string, args ...any) ([]domain.TeamMember, error) {
	var rows []memberRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team members: %w", err)
	}

	members := make([]domain.TeamMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, mapMemberRowToDomainMember(row))
	}
	return members, nil
}

func (r *MemberRepository) notify(ctx context.Context) {
	if r.bus == nil {
		return
	}
	if err := r.bus.Publish(ctx, ports.CollectionTeamMembers); err != nil {
		zap.L().Warn("failed to publish team member change", zap.Error(err))
	}
}

func mapMemberRowToDomainMember(row memberRow) domain.TeamMember {
	member := domain.TeamMember{
		ID:      row.ID,
		TeamID:  row.TeamID,
		OwnerID: row.OwnerID,
		Email:   row.Email,
		Role:    domain.MemberRole(row.Role),
		Status:  domain.MemberStatus(row.Status),
		AddedAt: row.AddedAt,
	}

	member.UserID = fromNullString(row.UserID)
	if row.JoinedAt.Valid {
		value := row.JoinedAt.Time
		member.JoinedAt = &value
	}

	return member
}

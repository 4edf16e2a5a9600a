package ports

import (
	"context"
	"time"

	"github.com/Ganderlu/taskmate/internal/core/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, ownerID string, input domain.CreateTeamInput) (domain.Team, error)
	GetByID(ctx context.Context, id string) (domain.Team, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Team, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member domain.TeamMember) (domain.TeamMember, error)
	Activate(ctx context.Context, id, userID string, joinedAt time.Time) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (domain.TeamMember, error)
	ListByTeam(ctx context.Context, teamID string) ([]domain.TeamMember, error)
	CountByTeam(ctx context.Context, teamID string) (int, error)
	FindByTeamAndEmail(ctx context.Context, teamID, email string) (domain.TeamMember, error)
	ListPendingByEmail(ctx context.Context, email string) ([]domain.TeamMember, error)
}

type TeamService interface {
	CreateTeam(ctx context.Context, input domain.CreateTeamInput) (domain.TeamSummary, error)
	ListTeams(ctx context.Context) ([]domain.TeamSummary, error)
	OpenTeam(ctx context.Context, teamID string) ([]domain.TeamMember, error)
	Members() []domain.TeamMember
	Invite(ctx context.Context, teamID, email string, role domain.MemberRole) (domain.TeamMember, error)
	Accept(ctx context.Context, inviteID string) (domain.TeamMember, error)
	Decline(ctx context.Context, inviteID string) error
	Remove(ctx context.Context, memberID string) error
	PendingInvites(ctx context.Context) ([]domain.Invite, error)
	WatchMembers(ctx context.Context, teamID string) (*Subscription[[]domain.TeamMember], error)
	WatchInvites(ctx context.Context) (*Subscription[[]domain.Invite], error)
}

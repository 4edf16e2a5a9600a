package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
)

// TeamService drives team workspaces and the invite lifecycle: a record
// starts pending when an owner invites an email, turns active when the
// invited principal accepts, and is deleted outright on decline or
// removal. It keeps a live member cache for the currently open team so
// invite conflict checks see fresh state.
type TeamService struct {
	session domain.Session
	teams   ports.TeamRepository
	members ports.MemberRepository
	bus     ports.ChangeBus

	mu         sync.Mutex
	openTeamID string
	cache      []domain.TeamMember
	cacheSub   *ports.Subscription[[]domain.TeamMember]
}

var _ ports.TeamService = (*TeamService)(nil)

func NewTeamService(session domain.Session, teams ports.TeamRepository, members ports.MemberRepository, bus ports.ChangeBus) *TeamService {
	return &TeamService{session: session, teams: teams, members: members, bus: bus}
}

// CreateTeam creates the team record and then the owner's own active
// admin membership. The second write is retryable on its own: it
// re-checks for an existing owner record before inserting, so a repair
// after a partial failure never produces a duplicate.
func (s *TeamService) CreateTeam(ctx context.Context, input domain.CreateTeamInput) (domain.TeamSummary, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return domain.TeamSummary{}, fmt.Errorf("%w: team name is required", domain.ErrInvalidInput)
	}

	team, err := s.teams.Create(ctx, s.session.UserID, input)
	if err != nil {
		return domain.TeamSummary{}, err
	}

	if err := s.EnsureOwnerMember(ctx, team.ID); err != nil {
		// The team exists without an owner membership; the caller can
		// retry EnsureOwnerMember without re-creating the team.
		return domain.TeamSummary{Team: team}, err
	}

	return domain.TeamSummary{Team: team, MemberCount: 1}, nil
}

// EnsureOwnerMember inserts the creator's active admin membership unless
// one already exists. Idempotent by construction.
func (s *TeamService) EnsureOwnerMember(ctx context.Context, teamID string) error {
	email := normalizeEmail(s.session.Email)
	_, err := s.members.FindByTeamAndEmail(ctx, teamID, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrMemberNotFound) {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	userID := s.session.UserID
	_, err = s.members.Create(ctx, domain.TeamMember{
		TeamID:   teamID,
		OwnerID:  s.session.UserID,
		Email:    email,
		Role:     domain.MemberRoleAdmin,
		Status:   domain.MemberStatusActive,
		UserID:   &userID,
		AddedAt:  now,
		JoinedAt: &now,
	})
	return err
}

func (s *TeamService) ListTeams(ctx context.Context) ([]domain.TeamSummary, error) {
	teams, err := s.teams.ListByOwner(ctx, s.session.UserID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.TeamSummary, 0, len(teams))
	for _, team := range teams {
		count, err := s.members.CountByTeam(ctx, team.ID)
		if err != nil {
			// The card count is display-only; never fail the listing
			// over it.
			zap.L().Warn("failed to count team members", zap.String("team_id", team.ID), zap.Error(err))
		}
		summaries = append(summaries, domain.TeamSummary{Team: team, MemberCount: count})
	}
	return summaries, nil
}

// OpenTeam selects a team as the current view: it replaces the member
// cache with a fresh fetch and re-subscribes the cache to the team's
// member feed, dropping the previous team's subscription first.
func (s *TeamService) OpenTeam(ctx context.Context, teamID string) ([]domain.TeamMember, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	members, err := s.members.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	// The cache subscription must outlive the request that opened the
	// team; it is released by Close or by the next OpenTeam.
	sub, err := s.watchTeamMembers(context.WithoutCancel(ctx), teamID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.cacheSub != nil {
		s.cacheSub.Unsubscribe()
	}
	s.openTeamID = teamID
	s.cache = members
	s.cacheSub = sub
	s.mu.Unlock()

	go func() {
		for snapshot := range sub.C {
			s.mu.Lock()
			if s.openTeamID == teamID {
				s.cache = snapshot
			}
			s.mu.Unlock()
		}
	}()

	return members, nil
}

// Members returns a copy of the open team's member cache.
func (s *TeamService) Members() []domain.TeamMember {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TeamMember, len(s.cache))
	copy(out, s.cache)
	return out
}

// Close drops the open team's live subscription. Called when the view
// navigates away.
func (s *TeamService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cacheSub != nil {
		s.cacheSub.Unsubscribe()
		s.cacheSub = nil
	}
	s.openTeamID = ""
	s.cache = nil
}

// Invite creates a pending membership for an email. At most one record
// may exist per (team, email): the fresh member cache is checked first
// for the open team, then the store is asked again before inserting so
// the invariant holds even when the cache lags.
func (s *TeamService) Invite(ctx context.Context, teamID, email string, role domain.MemberRole) (domain.TeamMember, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.TeamMember{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return domain.TeamMember{}, err
	}
	if team.OwnerID != s.session.UserID {
		return domain.TeamMember{}, domain.ErrNotTeamOwner
	}

	s.mu.Lock()
	if s.openTeamID == teamID {
		for _, member := range s.cache {
			if member.Email == email {
				s.mu.Unlock()
				return domain.TeamMember{}, domain.ErrAlreadyInvited
			}
		}
	}
	s.mu.Unlock()

	if _, err := s.members.FindByTeamAndEmail(ctx, teamID, email); err == nil {
		return domain.TeamMember{}, domain.ErrAlreadyInvited
	} else if !errors.Is(err, domain.ErrMemberNotFound) {
		return domain.TeamMember{}, err
	}

	member, err := s.members.Create(ctx, domain.TeamMember{
		TeamID:  teamID,
		OwnerID: s.session.UserID,
		Email:   email,
		Role:    role,
		Status:  domain.MemberStatusPending,
		AddedAt: time.Now().UTC().Truncate(time.Second),
	})
	if err != nil {
		return domain.TeamMember{}, err
	}

	s.mu.Lock()
	if s.openTeamID == teamID {
		s.cache = append(s.cache, member)
	}
	s.mu.Unlock()
	return member, nil
}

// Accept turns a pending invite into an active membership bound to the
// accepting principal. The session email must match the invite email;
// this is a caller-side equality check, not a cryptographic binding.
// Accepting an invite that is already active for the same principal is
// a no-op success so a retried accept converges.
func (s *TeamService) Accept(ctx context.Context, inviteID string) (domain.TeamMember, error) {
	invite, err := s.members.GetByID(ctx, inviteID)
	if err != nil {
		return domain.TeamMember{}, err
	}
	if invite.Email != normalizeEmail(s.session.Email) {
		return domain.TeamMember{}, domain.ErrInviteEmailMismatch
	}

	if invite.Status == domain.MemberStatusActive {
		if invite.UserID != nil && *invite.UserID == s.session.UserID {
			return invite, nil
		}
		return domain.TeamMember{}, domain.ErrInviteEmailMismatch
	}

	joinedAt := time.Now().UTC().Truncate(time.Second)
	if err := s.members.Activate(ctx, inviteID, s.session.UserID, joinedAt); err != nil {
		return domain.TeamMember{}, err
	}

	userID := s.session.UserID
	invite.Status = domain.MemberStatusActive
	invite.UserID = &userID
	invite.JoinedAt = &joinedAt
	return invite, nil
}

// Decline deletes the membership record. The policy here is lenient:
// decline works whatever the record's status, doubling as "leave team"
// for an active membership, and declining an already-removed record is
// a no-op success.
func (s *TeamService) Decline(ctx context.Context, inviteID string) error {
	invite, err := s.members.GetByID(ctx, inviteID)
	if errors.Is(err, domain.ErrMemberNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if invite.Email != normalizeEmail(s.session.Email) {
		return domain.ErrInviteEmailMismatch
	}

	return s.members.Delete(ctx, inviteID)
}

// Remove deletes a membership record on behalf of the team owner.
func (s *TeamService) Remove(ctx context.Context, memberID string) error {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return err
	}

	team, err := s.teams.GetByID(ctx, member.TeamID)
	if err != nil {
		return err
	}
	if team.OwnerID != s.session.UserID {
		return domain.ErrNotTeamOwner
	}

	return s.members.Delete(ctx, memberID)
}

// PendingInvites lists the session principal's incoming invites across
// all teams, each enriched with the owning team's display name.
func (s *TeamService) PendingInvites(ctx context.Context) ([]domain.Invite, error) {
	pending, err := s.members.ListPendingByEmail(ctx, normalizeEmail(s.session.Email))
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(pending))
	invites := make([]domain.Invite, 0, len(pending))
	for _, member := range pending {
		name, ok := names[member.TeamID]
		if !ok {
			team, err := s.teams.GetByID(ctx, member.TeamID)
			if err != nil {
				// An invite to a vanished team still shows up, just
				// without a display name.
				zap.L().Warn("failed to resolve team for invite",
					zap.String("team_id", member.TeamID), zap.Error(err))
			} else {
				name = team.Name
			}
			names[member.TeamID] = name
		}
		invites = append(invites, domain.Invite{TeamMember: member, TeamName: name})
	}
	return invites, nil
}

// WatchMembers yields full membership snapshots for a team on every
// underlying change.
func (s *TeamService) WatchMembers(ctx context.Context, teamID string) (*ports.Subscription[[]domain.TeamMember], error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.watchTeamMembers(ctx, teamID)
}

// WatchInvites yields the session principal's pending-invite feed.
func (s *TeamService) WatchInvites(ctx context.Context) (*ports.Subscription[[]domain.Invite], error) {
	return ports.Watch(ctx, s.bus, ports.CollectionTeamMembers, func(ctx context.Context) ([]domain.Invite, error) {
		return s.PendingInvites(ctx)
	})
}

func (s *TeamService) watchTeamMembers(ctx context.Context, teamID string) (*ports.Subscription[[]domain.TeamMember], error) {
	return ports.Watch(ctx, s.bus, ports.CollectionTeamMembers, func(ctx context.Context) ([]domain.TeamMember, error) {
		return s.members.ListByTeam(ctx, teamID)
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

package domain

import "time"

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
	MemberRoleViewer MemberRole = "viewer"
)

type MemberStatus string

const (
	MemberStatusPending MemberStatus = "pending"
	MemberStatusActive  MemberStatus = "active"
)

type Team struct {
	ID          string
	OwnerID     string
	Name        string
	Description *string
	CreatedAt   time.Time
}

// TeamSummary is a team card enriched with its live member count. The
// count comes from a separate COUNT query and may transiently disagree
// with the member list right after a mutation.
type TeamSummary struct {
	Team
	MemberCount int
}

// TeamMember is a membership record. An invite starts as pending with no
// UserID; acceptance flips it to active and binds the accepting
// principal. Decline and removal delete the record outright, there is no
// removed status value.
type TeamMember struct {
	ID       string
	TeamID   string
	OwnerID  string
	Email    string
	Role     MemberRole
	Status   MemberStatus
	UserID   *string
	AddedAt  time.Time
	JoinedAt *time.Time
}

// Invite is a pending membership record enriched with the owning team's
// display name for the notification feed.
type Invite struct {
	TeamMember
	TeamName string
}

type CreateTeamInput struct {
	Name        string
	Description *string
}

package mapper

import (
	"time"

	"github.com/Ganderlu/taskmate/internal/adapter/http/dto"
	"github.com/Ganderlu/taskmate/internal/core/domain"
)

func ToTeamItems(teams []domain.TeamSummary) []dto.TeamItem {
	items := make([]dto.TeamItem, 0, len(teams))
	for _, team := range teams {
		items = append(items, ToTeamItem(team))
	}
	return items
}

func ToTeamItem(team domain.TeamSummary) dto.TeamItem {
	item := dto.TeamItem{
		ID:          team.ID,
		Name:        team.Name,
		OwnerID:     team.OwnerID,
		MemberCount: team.MemberCount,
		CreatedAt:   team.CreatedAt.Format(time.RFC3339),
	}

	if team.Description != nil {
		value := *team.Description
		item.Description = &value
	}

	return item
}

func ToMemberItems(members []domain.TeamMember) []dto.MemberItem {
	items := make([]dto.MemberItem, 0, len(members))
	for _, member := range members {
		items = append(items, ToMemberItem(member))
	}
	return items
}

func ToMemberItem(member domain.TeamMember) dto.MemberItem {
	item := dto.MemberItem{
		ID:      member.ID,
		TeamID:  member.TeamID,
		Email:   member.Email,
		Role:    string(member.Role),
		Status:  string(member.Status),
		AddedAt: member.AddedAt.Format(time.RFC3339),
	}

	if member.UserID != nil {
		value := *member.UserID
		item.UserID = &value
	}

	if member.JoinedAt != nil {
		value := member.JoinedAt.Format(time.RFC3339)
		item.JoinedAt = &value
	}

	return item
}

func ToInviteItems(invites []domain.Invite) []dto.InviteItem {
	items := make([]dto.InviteItem, 0, len(invites))
	for _, invite := range invites {
		items = append(items, dto.InviteItem{
			MemberItem: ToMemberItem(invite.TeamMember),
			TeamName:   invite.TeamName,
		})
	}
	return items
}

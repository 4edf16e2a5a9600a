package dto

type TeamItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	OwnerID     string  `json:"owner_id"`
	MemberCount int     `json:"member_count"`
	CreatedAt   string  `json:"created_at"`
}

type MemberItem struct {
	ID       string  `json:"id"`
	TeamID   string  `json:"team_id"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Status   string  `json:"status"`
	UserID   *string `json:"user_id,omitempty"`
	AddedAt  string  `json:"added_at"`
	JoinedAt *string `json:"joined_at,omitempty"`
}

type InviteItem struct {
	MemberItem
	TeamName string `json:"team_name"`
}

type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

type InviteRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin member viewer"`
}

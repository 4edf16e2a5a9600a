package dto

type TokenRequest struct {
	UserID      string `json:"user_id" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"omitempty,max=255"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

package domain

// Session identifies the current principal. It is passed explicitly to
// services and repositories stamp ownership from it, never from caller
// supplied payload fields.
type Session struct {
	UserID      string
	Email       string
	DisplayName string
}

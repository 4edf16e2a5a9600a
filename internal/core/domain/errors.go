package domain

import "errors"

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrMemberNotFound = errors.New("team member not found")

	// ErrAlreadyInvited is raised when a membership record for the same
	// (team, email) pair already exists, whatever its status.
	ErrAlreadyInvited = errors.New("email already invited to team")

	// ErrInviteEmailMismatch is raised when the accepting session's email
	// does not match the invite's email.
	ErrInviteEmailMismatch = errors.New("invite addressed to a different email")

	// ErrNotTeamOwner guards owner-only mutations.
	ErrNotTeamOwner = errors.New("not the team owner")

	ErrInvalidInput = errors.New("invalid input")

	// ErrStaleSelection marks a fetch whose result arrived after the view
	// moved on to another selection; its payload was discarded.
	ErrStaleSelection = errors.New("selection changed while loading")
)

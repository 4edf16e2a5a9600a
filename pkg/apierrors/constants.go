package apierrors

const (
	MsgUnauthorized       = "unauthorized"
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgTaskNotFound       = "taskNotFound"
	MsgFailListTask       = "errorListTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailToggleTask     = "failToggleTask"

	MsgInvalidCategory  = "invalidCategory"
	MsgFailListCategory = "failListCategory"

	MsgInvalidTeamPayload = "invalidTeamPayload"
	MsgTeamNotFound       = "teamNotFound"
	MsgMemberNotFound     = "memberNotFound"
	MsgAlreadyInvited     = "alreadyInvited"
	MsgInviteMismatch     = "inviteMismatch"
	MsgNotTeamOwner       = "notTeamOwner"
	MsgFailTeamOp         = "failTeamOperation"

	MsgFailStats = "failStats"
	MsgFailDraft = "failTaskDraft"
)

package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/adapter/http/dto"
	"github.com/Ganderlu/taskmate/internal/adapter/http/mapper"
	"github.com/Ganderlu/taskmate/internal/adapter/http/middleware"
	"github.com/Ganderlu/taskmate/internal/app/service"
	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
	"github.com/Ganderlu/taskmate/pkg/apierrors"
)

type TeamHandler struct {
	registry *service.Registry
}

func NewTeamHandler(registry *service.Registry) *TeamHandler {
	return &TeamHandler{registry: registry}
}

func (h *TeamHandler) teamsFor(c *gin.Context) (ports.TeamService, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		lang := middleware.GetLang(c)
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
		)
		return nil, false
	}
	return h.registry.ForSession(session).Teams, true
}

func (h *TeamHandler) Create(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTeamPayload, lang),
		)
		return
	}

	team, err := teams.CreateTeam(c.Request.Context(), domain.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTeamPayload, lang),
			)
			return
		}

		zap.L().Error("failed to create team", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTeamItem(team))
}

func (h *TeamHandler) List(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	summaries, err := teams.ListTeams(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to list teams", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTeamItems(summaries))
}

// Members opens the team as the current view: the member cache is
// rebuilt and re-subscribed to this team's feed.
func (h *TeamHandler) Members(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	members, err := teams.OpenTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTeamNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to open team", zap.String("team_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToMemberItems(members))
}

func (h *TeamHandler) Invite(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTeamPayload, lang),
		)
		return
	}

	member, err := teams.Invite(c.Request.Context(), c.Param("id"), req.Email, domain.MemberRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyInvited):
			c.JSON(
				http.StatusConflict,
				apierrors.CreateError(http.StatusConflict, apierrors.MsgAlreadyInvited, lang),
			)
		case errors.Is(err, domain.ErrTeamNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTeamNotFound, lang),
			)
		case errors.Is(err, domain.ErrNotTeamOwner):
			c.JSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgNotTeamOwner, lang),
			)
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTeamPayload, lang),
			)
		default:
			zap.L().Error("failed to invite member", zap.String("team_id", c.Param("id")), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
			)
		}
		return
	}

	c.JSON(http.StatusCreated, mapper.ToMemberItem(member))
}

func (h *TeamHandler) Accept(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	member, err := teams.Accept(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgMemberNotFound, lang),
			)
		case errors.Is(err, domain.ErrInviteEmailMismatch):
			c.JSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgInviteMismatch, lang),
			)
		default:
			zap.L().Error("failed to accept invite", zap.String("invite_id", c.Param("id")), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
			)
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToMemberItem(member))
}

func (h *TeamHandler) Decline(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	if err := teams.Decline(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrInviteEmailMismatch) {
			c.JSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgInviteMismatch, lang),
			)
			return
		}

		zap.L().Error("failed to decline invite", zap.String("invite_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
		)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TeamHandler) Remove(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	if err := teams.Remove(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, domain.ErrMemberNotFound):
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgMemberNotFound, lang),
			)
		case errors.Is(err, domain.ErrNotTeamOwner):
			c.JSON(
				http.StatusForbidden,
				apierrors.CreateError(http.StatusForbidden, apierrors.MsgNotTeamOwner, lang),
			)
		default:
			zap.L().Error("failed to remove member", zap.String("member_id", c.Param("id")), zap.Error(err))
			c.JSON(
				http.StatusInternalServerError,
				apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
			)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TeamHandler) PendingInvites(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	invites, err := teams.PendingInvites(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to list pending invites", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToInviteItems(invites))
}

// MembersFeed streams full membership snapshots for a team as
// server-sent events until the client disconnects.
func (h *TeamHandler) MembersFeed(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	sub, err := teams.WatchMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrTeamNotFound) {
			c.JSON(
				http.StatusNotFound,
				apierrors.CreateError(http.StatusNotFound, apierrors.MsgTeamNotFound, lang),
			)
			return
		}

		zap.L().Error("failed to watch members", zap.String("team_id", c.Param("id")), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
		)
		return
	}
	defer sub.Unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("members", mapper.ToMemberItems(snapshot))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// InvitesFeed streams the principal's pending-invite snapshots.
func (h *TeamHandler) InvitesFeed(c *gin.Context) {
	lang := middleware.GetLang(c)
	teams, ok := h.teamsFor(c)
	if !ok {
		return
	}

	sub, err := teams.WatchInvites(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to watch invites", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailTeamOp, lang),
		)
		return
	}
	defer sub.Unsubscribe()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("invites", mapper.ToInviteItems(snapshot))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

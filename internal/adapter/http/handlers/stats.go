package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/adapter/http/mapper"
	"github.com/Ganderlu/taskmate/internal/adapter/http/middleware"
	"github.com/Ganderlu/taskmate/internal/app/service"
	"github.com/Ganderlu/taskmate/internal/core/ports"
	"github.com/Ganderlu/taskmate/pkg/apierrors"
)

type StatsHandler struct {
	registry *service.Registry
}

func NewStatsHandler(registry *service.Registry) *StatsHandler {
	return &StatsHandler{registry: registry}
}

func (h *StatsHandler) statsFor(c *gin.Context) (ports.StatsService, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		lang := middleware.GetLang(c)
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
		)
		return nil, false
	}
	return h.registry.ForSession(session).Stats, true
}

func (h *StatsHandler) Dashboard(c *gin.Context) {
	lang := middleware.GetLang(c)
	stats, ok := h.statsFor(c)
	if !ok {
		return
	}

	overview, err := stats.Dashboard(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to compute dashboard stats", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailStats, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToDashboardResponse(overview))
}

func (h *StatsHandler) Projects(c *gin.Context) {
	lang := middleware.GetLang(c)
	stats, ok := h.statsFor(c)
	if !ok {
		return
	}

	overview, err := stats.Projects(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to compute project stats", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailStats, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToProjectsResponse(overview))
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/adapter/http/dto"
	"github.com/Ganderlu/taskmate/internal/adapter/http/mapper"
	"github.com/Ganderlu/taskmate/internal/adapter/http/middleware"
	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
	"github.com/Ganderlu/taskmate/pkg/apierrors"
)

type DraftHandler struct {
	extractor ports.DraftExtractor
}

func NewDraftHandler(extractor ports.DraftExtractor) *DraftHandler {
	return &DraftHandler{extractor: extractor}
}

func (h *DraftHandler) Extract(c *gin.Context) {
	lang := middleware.GetLang(c)
	if _, ok := middleware.GetSession(c); !ok {
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
		)
		return
	}

	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgFailDraft, lang),
		)
		return
	}

	draft, err := h.extractor.ExtractDraft(c.Request.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgFailDraft, lang),
			)
			return
		}

		zap.L().Error("failed to extract task draft", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailDraft, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskDraftResponse(draft))
}

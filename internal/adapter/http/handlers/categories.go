package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/adapter/http/dto"
	"github.com/Ganderlu/taskmate/internal/adapter/http/middleware"
	"github.com/Ganderlu/taskmate/internal/app/service"
	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/internal/core/ports"
	"github.com/Ganderlu/taskmate/pkg/apierrors"
)

type CategoryHandler struct {
	registry *service.Registry
}

func NewCategoryHandler(registry *service.Registry) *CategoryHandler {
	return &CategoryHandler{registry: registry}
}

func (h *CategoryHandler) categoriesFor(c *gin.Context) (ports.CategoryService, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		lang := middleware.GetLang(c)
		c.JSON(
			http.StatusUnauthorized,
			apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
		)
		return nil, false
	}
	return h.registry.ForSession(session).Categories, true
}

func (h *CategoryHandler) List(c *gin.Context) {
	lang := middleware.GetLang(c)
	categories, ok := h.categoriesFor(c)
	if !ok {
		return
	}

	names, err := categories.ListCategories(c.Request.Context())
	if err != nil {
		zap.L().Error("failed to list categories", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListCategory, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.CategoryList{Categories: names})
}

func (h *CategoryHandler) Add(c *gin.Context) {
	lang := middleware.GetLang(c)
	categories, ok := h.categoriesFor(c)
	if !ok {
		return
	}

	var req dto.AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategory, lang),
		)
		return
	}

	names, err := categories.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			c.JSON(
				http.StatusBadRequest,
				apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidCategory, lang),
			)
			return
		}

		zap.L().Error("failed to add category", zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListCategory, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, dto.CategoryList{Categories: names})
}

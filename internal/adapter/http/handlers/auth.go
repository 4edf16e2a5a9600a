package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ganderlu/taskmate/internal/adapter/http/dto"
	"github.com/Ganderlu/taskmate/internal/adapter/http/middleware"
	"github.com/Ganderlu/taskmate/pkg/apierrors"
	"github.com/Ganderlu/taskmate/pkg/authtoken"
)

type AuthHandler struct {
	tokens *authtoken.Manager
}

func NewAuthHandler(tokens *authtoken.Manager) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Token exchanges a user identity for a signed bearer token. Identity
// verification is delegated to the deployment's upstream auth proxy.
func (h *AuthHandler) Token(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgUnauthorized, lang),
		)
		return
	}

	token, err := h.tokens.Generate(req.UserID, req.Email, req.DisplayName)
	if err != nil {
		zap.L().Error("failed to sign token", zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgUnauthorized, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

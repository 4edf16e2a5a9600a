package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Ganderlu/taskmate/internal/core/domain"
	"github.com/Ganderlu/taskmate/pkg/apierrors"
	"github.com/Ganderlu/taskmate/pkg/authtoken"
)

const sessionContextKey = "session"

// SessionMiddleware resolves the bearer token into a session and aborts
// unauthenticated requests. Every write downstream stamps ownership from
// this session, never from request payloads.
func SessionMiddleware(tokens *authtoken.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
		if token == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		c.Set(sessionContextKey, domain.Session{
			UserID:      claims.UserID,
			Email:       claims.Email,
			DisplayName: claims.DisplayName,
		})
		c.Next()
	}
}

func GetSession(c *gin.Context) (domain.Session, bool) {
	value, exists := c.Get(sessionContextKey)
	if !exists {
		return domain.Session{}, false
	}
	session, ok := value.(domain.Session)
	return session, ok
}

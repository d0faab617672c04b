package middleware

import (
	"errors"
	"net/http"

	"recipe_api/internal/apperr"
	"recipe_api/internal/auth"
	"recipe_api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequireSession resolves the session cookie into a user id exactly
// once per request and aborts with 401 when there is no valid session.
func RequireSession(sessions session.Manager, cookies *session.CookieHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := cookies.GetSessionToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, apperr.ErrUnauthorized) {
				logrus.WithError(err).Error("Failed to resolve session")
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(auth.UserIDKey, userID)
		c.Set(auth.SessionTokenKey, token)
		c.Next()
	}
}

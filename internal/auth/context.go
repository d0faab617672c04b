package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDKey is the gin context key holding the authenticated user id.
	UserIDKey = "userID"
	// SessionTokenKey is the gin context key holding the resolved session token.
	SessionTokenKey = "sessionToken"
)

var ErrNoIdentity = errors.New("no authenticated user in context")

// GetUserIDFromContext returns the user id placed in the context by the
// session middleware.
func GetUserIDFromContext(c *gin.Context) (int, error) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, ErrNoIdentity
	}

	id, ok := v.(int)
	if !ok {
		return 0, ErrNoIdentity
	}

	return id, nil
}

// GetSessionTokenFromContext returns the opaque session token for the
// current request.
func GetSessionTokenFromContext(c *gin.Context) (string, error) {
	v, exists := c.Get(SessionTokenKey)
	if !exists {
		return "", ErrNoIdentity
	}

	token, ok := v.(string)
	if !ok {
		return "", ErrNoIdentity
	}

	return token, nil
}

package user

import (
	"errors"
	"net/http"

	"recipe_api/internal/apperr"
	"recipe_api/internal/auth"
	"recipe_api/internal/observability"
	"recipe_api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService UserServiceInterface
	sessions    session.Manager
	cookies     *session.CookieHelper
}

func NewUserController(userService UserServiceInterface, sessions session.Manager, cookies *session.CookieHelper) *UserController {
	return &UserController{
		userService: userService,
		sessions:    sessions,
		cookies:     cookies,
	}
}

// Signup handles account creation and logs the new user in.
func (a *UserController) Signup(c *gin.Context) {
	var req struct {
		Username string  `json:"username"`
		Password string  `json:"password"`
		ImageURL *string `json:"image_url"`
		Bio      *string `json:"bio"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Username == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "username is required"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "password is required"})
		return
	}

	user, err := a.userService.Register(req.Username, req.Password, req.ImageURL, req.Bio)
	if err != nil {
		var ve *apperr.ValidationError
		var ce *apperr.ConflictError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Message})
		case errors.As(err, &ce):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ce.Message})
		default:
			logrus.WithError(err).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		}
		return
	}

	observability.IncSignup()

	// The account exists either way; a session failure only means the
	// client has to log in explicitly.
	if err := a.establishSession(c, user.ID); err != nil {
		logrus.WithError(err).Warn("Failed to establish session after signup")
	}

	c.JSON(http.StatusCreated, user.Profile(nil))
}

// Login verifies credentials and establishes a session.
func (a *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Username and password are required"})
		return
	}

	user, recipes, err := a.userService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			observability.IncLogin("failure")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		logrus.WithError(err).Error("Failed to log user in")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := a.establishSession(c, user.ID); err != nil {
		logrus.WithError(err).Error("Failed to establish session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	observability.IncLogin("success")
	c.JSON(http.StatusOK, user.Profile(recipes))
}

// CheckSession returns the user the current session belongs to.
func (a *UserController) CheckSession(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	user, recipes, err := a.userService.CurrentUser(userID)
	if err != nil {
		// A session pointing at a deleted user is unauthorized, not an error.
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		logrus.WithError(err).Error("Failed to load current user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, user.Profile(recipes))
}

// Logout destroys the current session and clears the cookie.
func (a *UserController) Logout(c *gin.Context) {
	token, err := auth.GetSessionTokenFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := a.sessions.Destroy(c.Request.Context(), token); err != nil {
		if errors.Is(err, apperr.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		logrus.WithError(err).Error("Failed to destroy session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	a.cookies.ClearSessionCookie(c)
	observability.IncSessionDestroyed()
	c.Status(http.StatusNoContent)
}

func (a *UserController) establishSession(c *gin.Context, userID int) error {
	token, err := a.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}

	a.cookies.SetSessionCookie(c, token)
	return nil
}

package recipe

import (
	"errors"
	"net/http"

	"recipe_api/internal/apperr"
	"recipe_api/internal/auth"
	"recipe_api/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RecipeController struct {
	service RecipeServiceInterface
}

func NewRecipeController(service RecipeServiceInterface) *RecipeController {
	return &RecipeController{
		service: service,
	}
}

// List handles GET /recipes. Authorization is enforced by the session
// middleware before this runs.
func (rc *RecipeController) List(c *gin.Context) {
	recipes, err := rc.service.List()
	if err != nil {
		logrus.WithError(err).Error("Failed to list recipes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recipes"})
		return
	}

	if recipes == nil {
		recipes = []*Response{}
	}

	c.JSON(http.StatusOK, recipes)
}

// Create handles POST /recipes for the authenticated user.
func (rc *RecipeController) Create(c *gin.Context) {
	userID, err := auth.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Title             *string `json:"title"`
		Instructions      *string `json:"instructions"`
		MinutesToComplete *int    `json:"minutes_to_complete"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body"})
		return
	}

	switch {
	case req.Title == nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing required field: 'title'"})
		return
	case req.Instructions == nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing required field: 'instructions'"})
		return
	case req.MinutesToComplete == nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Missing required field: 'minutes_to_complete'"})
		return
	}

	recipe, err := rc.service.Create(userID, *req.Title, *req.Instructions, *req.MinutesToComplete)
	if err != nil {
		var ve *apperr.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Message})
			return
		}
		logrus.WithError(err).Error("Failed to create recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	observability.IncRecipeCreated()
	c.JSON(http.StatusCreated, recipe)
}

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"recipe_api/internal/config"
	"recipe_api/internal/middleware"
	"recipe_api/internal/observability"
	"recipe_api/internal/recipe"
	"recipe_api/internal/session"
	"recipe_api/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// SetupHandler initializes all dependencies and routes
func SetupHandler(db *sql.DB, redisClient *redis.Client, cfg *config.Config) *gin.Engine {

	r := gin.Default()

	if observability.GlobalMetrics != nil {
		r.Use(middleware.PrometheusMiddleware(observability.GlobalMetrics))
	}

	// Initialize repositories
	userRepo := user.NewUserRepository()
	recipeRepo := recipe.NewRecipeRepository()

	// Initialize services
	userService := user.NewUserService(userRepo, db)
	recipeService := recipe.NewRecipeService(recipeRepo, db, redisClient)

	// Session store and cookie helper
	sessions := session.NewStore(redisClient)
	cookies := session.NewCookieHelper(cfg.Cookie)

	// Initialize controllers
	userController := user.NewUserController(userService, sessions, cookies)
	recipeController := recipe.NewRecipeController(recipeService)

	setupRoutes(r, userController, recipeController, sessions, cookies, redisClient)

	r.GET("/health", healthHandler(db, redisClient))

	return r
}

// setupRoutes configures all application routes
func setupRoutes(r *gin.Engine, userCtrl *user.UserController, recipeCtrl *recipe.RecipeController, sessions session.Manager, cookies *session.CookieHelper, redisClient *redis.Client) {

	// Public routes - credential endpoints, rate limited per client IP
	strict := middleware.RateLimiterMiddleware(redisClient, middleware.StrictRateLimiter(), middleware.ByClientIP())
	r.POST("/signup", strict, userCtrl.Signup)
	r.POST("/login", strict, userCtrl.Login)

	// Protected routes - require a valid session cookie
	authed := r.Group("/")
	authed.Use(middleware.RequireSession(sessions, cookies))
	authed.Use(middleware.RateLimiterMiddleware(redisClient, middleware.DefaultRateLimiterConfig(), middleware.ByUserID()))
	{
		authed.GET("/check_session", userCtrl.CheckSession)
		authed.DELETE("/logout", userCtrl.Logout)
		authed.GET("/recipes", recipeCtrl.List)
		authed.POST("/recipes", recipeCtrl.Create)
	}
}

func healthHandler(db *sql.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "database"})
			return
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "redis"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

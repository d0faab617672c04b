package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"recipe_api/internal/cache"
	"recipe_api/internal/observability"
	"recipe_api/internal/utils"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type RecipeServiceInterface interface {
	List() ([]*Response, error)
	Create(userID int, title, instructions string, minutesToComplete int) (*Response, error)
}

type RecipeService struct {
	repo  RecipeRepositoryInterface
	db    *sql.DB
	cache *cache.RecipeCache
}

func NewRecipeService(repo RecipeRepositoryInterface, db *sql.DB, redisClient *redis.Client) RecipeServiceInterface {
	return &RecipeService{
		repo:  repo,
		db:    db,
		cache: cache.NewRecipeCache(redisClient),
	}
}

// List returns every recipe with its owner, serving from cache when
// possible.
func (s *RecipeService) List() ([]*Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	cachedData, err := s.cache.Get(ctx, cache.RecipeListKey)
	if err == nil && cachedData != nil {
		var recipes []*Response
		if json.Unmarshal(cachedData, &recipes) == nil {
			observability.IncCacheHit("recipe_list")
			return recipes, nil
		}
	}
	observability.IncCacheMiss("recipe_list")

	recipes, err := s.repo.ListAll(s.db)
	if err != nil {
		return nil, err
	}

	// Cache failures are not critical
	if err := s.cache.Set(ctx, cache.RecipeListKey, recipes); err != nil {
		logrus.WithError(err).Warn("Failed to cache recipe list")
	}

	return recipes, nil
}

// Create validates, persists and returns the new recipe serialized
// with its owner's public fields.
func (s *RecipeService) Create(userID int, title, instructions string, minutesToComplete int) (*Response, error) {
	recipe, err := New(title, instructions, minutesToComplete, userID)
	if err != nil {
		return nil, err
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		id, err := s.repo.Create(tx, recipe)
		if err != nil {
			return err
		}
		recipe.ID = id
		return nil
	}); err != nil {
		return nil, err
	}

	owner, err := s.repo.GetOwner(s.db, userID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, cache.RecipeListKey); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate recipe list cache")
	}

	logrus.WithFields(logrus.Fields{
		"recipe_id": recipe.ID,
		"user_id":   userID,
	}).Info("Recipe created successfully")

	return &Response{
		ID:                recipe.ID,
		Title:             recipe.Title,
		Instructions:      recipe.Instructions,
		MinutesToComplete: recipe.MinutesToComplete,
		User:              *owner,
	}, nil
}

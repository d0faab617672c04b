package recipe

import (
	"database/sql"
	"errors"

	"recipe_api/internal/apperr"

	"github.com/sirupsen/logrus"
)

type RecipeRepository struct{}

type RecipeRepositoryInterface interface {
	Create(tx *sql.Tx, recipe *Recipe) (int, error)
	ListAll(db *sql.DB) ([]*Response, error)
	GetOwner(db *sql.DB, userID int) (*Owner, error)
}

func NewRecipeRepository() RecipeRepositoryInterface {
	return &RecipeRepository{}
}

func (r *RecipeRepository) Create(tx *sql.Tx, recipe *Recipe) (int, error) {
	query := `
		INSERT INTO recipes (
			title, instructions, minutes_to_complete, user_id, created_at
		)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`

	var id int
	err := tx.QueryRow(
		query,
		recipe.Title,
		recipe.Instructions,
		recipe.MinutesToComplete,
		recipe.UserID,
	).Scan(&id)

	if err != nil {
		logrus.WithError(err).Error("Failed to create recipe")
		return 0, err
	}

	return id, nil
}

// ListAll returns every recipe joined with its owner's public fields.
func (r *RecipeRepository) ListAll(db *sql.DB) ([]*Response, error) {
	query := `
		SELECT
			r.id, r.title, r.instructions, r.minutes_to_complete,
			u.id, u.username, u.image_url, u.bio
		FROM recipes r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.id
	`

	rows, err := db.Query(query)
	if err != nil {
		logrus.WithError(err).Error("Failed to list recipes")
		return nil, err
	}
	defer rows.Close()

	recipes := []*Response{}
	for rows.Next() {
		var rec Response
		err := rows.Scan(
			&rec.ID,
			&rec.Title,
			&rec.Instructions,
			&rec.MinutesToComplete,
			&rec.User.ID,
			&rec.User.Username,
			&rec.User.ImageURL,
			&rec.User.Bio,
		)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, &rec)
	}

	return recipes, rows.Err()
}

// GetOwner loads the public fields of the user owning a recipe.
func (r *RecipeRepository) GetOwner(db *sql.DB, userID int) (*Owner, error) {
	query := `
		SELECT id, username, image_url, bio
		FROM users
		WHERE id = $1
	`

	owner := &Owner{}
	err := db.QueryRow(query, userID).Scan(
		&owner.ID,
		&owner.Username,
		&owner.ImageURL,
		&owner.Bio,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		logrus.WithError(err).Error("Failed to get recipe owner")
		return nil, err
	}

	return owner, nil
}

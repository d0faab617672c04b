package user

import (
	"database/sql"
	"errors"

	"recipe_api/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

type UserRepository struct{}

type UserRepositoryInterface interface {
	Create(tx *sql.Tx, user *User) (int, error)
	GetByID(db *sql.DB, id int) (*User, error)
	GetByUsername(db *sql.DB, username string) (*User, error)
	ListRecipes(db *sql.DB, userID int) ([]RecipeSummary, error)
}

func NewUserRepository() UserRepositoryInterface {
	return &UserRepository{}
}

// Create inserts a new user. A concurrent insert of the same username
// surfaces as a ConflictError from the unique constraint, which is the
// source of truth for uniqueness.
func (r *UserRepository) Create(tx *sql.Tx, user *User) (int, error) {
	query := `
		INSERT INTO users (
			username, password_hash, image_url, bio, created_at
		)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`

	var id int
	err := tx.QueryRow(
		query,
		user.Username,
		user.PasswordHash,
		user.ImageURL,
		user.Bio,
	).Scan(&id)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, apperr.Conflict("Username already exists")
		}
		logrus.WithError(err).Error("Failed to create user")
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  id,
		"username": user.Username,
	}).Info("User created successfully")

	return id, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(db *sql.DB, id int) (*User, error) {
	query := `
		SELECT id, username, password_hash, image_url, bio, created_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.ImageURL,
		&user.Bio,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		logrus.WithError(err).Error("Failed to get user by ID")
		return nil, err
	}

	return user, nil
}

// GetByUsername retrieves a user by username (case-sensitive).
func (r *UserRepository) GetByUsername(db *sql.DB, username string) (*User, error) {
	query := `
		SELECT id, username, password_hash, image_url, bio, created_at
		FROM users
		WHERE username = $1
	`

	user := &User{}
	err := db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.ImageURL,
		&user.Bio,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		logrus.WithError(err).Error("Failed to get user by username")
		return nil, err
	}

	return user, nil
}

// ListRecipes returns the recipes owned by userID, shaped for
// embedding in the user's profile.
func (r *UserRepository) ListRecipes(db *sql.DB, userID int) ([]RecipeSummary, error) {
	query := `
		SELECT id, title, instructions, minutes_to_complete
		FROM recipes
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to list user recipes")
		return nil, err
	}
	defer rows.Close()

	recipes := []RecipeSummary{}
	for rows.Next() {
		var rec RecipeSummary
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Instructions, &rec.MinutesToComplete); err != nil {
			return nil, err
		}
		recipes = append(recipes, rec)
	}

	return recipes, rows.Err()
}

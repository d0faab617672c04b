package user

import (
	"database/sql"
	"errors"

	"recipe_api/internal/apperr"
	"recipe_api/internal/utils"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo UserRepositoryInterface
	db   *sql.DB
}

type UserServiceInterface interface {
	Register(username, password string, imageURL, bio *string) (*User, error)
	Login(username, password string) (*User, []RecipeSummary, error)
	CurrentUser(id int) (*User, []RecipeSummary, error)
}

func NewUserService(repo UserRepositoryInterface, db *sql.DB) UserServiceInterface {
	return &UserService{
		repo: repo,
		db:   db,
	}
}

// Register creates a new user with a hashed password. The username
// lookup is a fast-path check only; the unique constraint decides
// races between concurrent signups.
func (s *UserService) Register(username, password string, imageURL, bio *string) (*User, error) {
	_, err := s.repo.GetByUsername(s.db, username)
	if err == nil {
		return nil, apperr.Validation("Username must be unique.")
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	user, err := New(username, imageURL, bio, password)
	if err != nil {
		return nil, err
	}

	if err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		id, err := s.repo.Create(tx, user)
		if err != nil {
			return err
		}
		user.ID = id
		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and returns the user with their
// recipes. Unknown username and wrong password are indistinguishable
// to the caller.
func (s *UserService) Login(username, password string) (*User, []RecipeSummary, error) {
	user, err := s.repo.GetByUsername(s.db, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, nil, apperr.ErrUnauthorized
		}
		return nil, nil, err
	}

	if !user.Authenticate(password) {
		return nil, nil, apperr.ErrUnauthorized
	}

	recipes, err := s.repo.ListRecipes(s.db, user.ID)
	if err != nil {
		return nil, nil, err
	}

	logrus.WithField("user_id", user.ID).Info("User logged in")
	return user, recipes, nil
}

// CurrentUser resolves a session's user id to a live record. A stale
// id (user deleted since login) comes back as ErrNotFound.
func (s *UserService) CurrentUser(id int) (*User, []RecipeSummary, error) {
	user, err := s.repo.GetByID(s.db, id)
	if err != nil {
		return nil, nil, err
	}

	recipes, err := s.repo.ListRecipes(s.db, id)
	if err != nil {
		return nil, nil, err
	}

	return user, recipes, nil
}

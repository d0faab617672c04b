package recipe

import (
	"time"
	"unicode/utf8"

	"recipe_api/internal/apperr"
)

// MinInstructionsLength is the minimum number of characters a recipe's
// instructions must have.
const MinInstructionsLength = 50

type Recipe struct {
	ID                int
	Title             string
	Instructions      string
	MinutesToComplete int
	UserID            int
	CreatedAt         time.Time
}

// New validates and builds a Recipe owned by userID. Construction does
// not persist; the caller commits through the repository.
func New(title, instructions string, minutesToComplete, userID int) (*Recipe, error) {
	if instructions == "" {
		return nil, apperr.Validation("Instructions are required.")
	}
	if utf8.RuneCountInString(instructions) < MinInstructionsLength {
		return nil, apperr.Validation("Instructions must be at least 50 characters long.")
	}

	return &Recipe{
		Title:             title,
		Instructions:      instructions,
		MinutesToComplete: minutesToComplete,
		UserID:            userID,
	}, nil
}

// Owner is the public slice of the owning user embedded in recipe
// responses. It never carries the password hash or the owner's own
// recipe list.
type Owner struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	ImageURL *string `json:"image_url"`
	Bio      *string `json:"bio"`
}

// Response is the wire shape of a recipe with its owner.
type Response struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete int    `json:"minutes_to_complete"`
	User              Owner  `json:"user"`
}

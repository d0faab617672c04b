package user

import (
	"time"

	"recipe_api/internal/apperr"
	"recipe_api/internal/auth"
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose the hash in JSON
	ImageURL     *string   `json:"image_url"`
	Bio          *string   `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
}

// New validates profile fields and builds a User with the plaintext
// password already hashed. The plaintext is never stored.
func New(username string, imageURL, bio *string, password string) (*User, error) {
	if username == "" {
		return nil, apperr.Validation("Username is required.")
	}

	u := &User{
		Username: username,
		ImageURL: imageURL,
		Bio:      bio,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	return u, nil
}

// SetPassword hashes plaintext and stores the hash. There is no
// corresponding getter; only Authenticate can use the stored hash.
func (u *User) SetPassword(plaintext string) error {
	hash, err := auth.GeneratePasswordHash(plaintext)
	if err != nil {
		return err
	}

	u.PasswordHash = hash
	return nil
}

// Authenticate reports whether plaintext matches the stored hash.
func (u *User) Authenticate(plaintext string) bool {
	return auth.ComparePasswordHash([]byte(u.PasswordHash), plaintext) == nil
}

// RecipeSummary is a recipe as embedded in a user profile, without the
// owner to avoid a serialization cycle.
type RecipeSummary struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Instructions      string `json:"instructions"`
	MinutesToComplete int    `json:"minutes_to_complete"`
}

// Profile is the public wire shape of a user.
type Profile struct {
	ID       int             `json:"id"`
	Username string          `json:"username"`
	ImageURL *string         `json:"image_url"`
	Bio      *string         `json:"bio"`
	Recipes  []RecipeSummary `json:"recipes"`
}

// Profile builds the response representation of u. A nil recipe list
// serializes as an empty array, not null.
func (u *User) Profile(recipes []RecipeSummary) *Profile {
	if recipes == nil {
		recipes = []RecipeSummary{}
	}

	return &Profile{
		ID:       u.ID,
		Username: u.Username,
		ImageURL: u.ImageURL,
		Bio:      u.Bio,
		Recipes:  recipes,
	}
}

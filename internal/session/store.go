package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"recipe_api/internal/apperr"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SessionTTL bounds how long a login stays valid without re-authenticating.
const SessionTTL = 24 * time.Hour

// Manager is the server-side session store: it maps opaque tokens to
// user ids. A request is Anonymous until its token resolves here.
type Manager interface {
	Create(ctx context.Context, userID int) (string, error)
	Resolve(ctx context.Context, token string) (int, error)
	Destroy(ctx context.Context, token string) error
}

type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Create issues a fresh opaque token for userID and persists the
// association with a TTL.
func (s *Store) Create(ctx context.Context, userID int) (string, error) {
	token := uuid.NewString()

	if err := s.client.Set(ctx, sessionKey(token), userID, SessionTTL).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Resolve returns the user id a token was issued for. Unknown or
// expired tokens are unauthorized, not errors.
func (s *Store) Resolve(ctx context.Context, token string) (int, error) {
	val, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return 0, apperr.ErrUnauthorized
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.Atoi(val)
	if err != nil {
		return 0, apperr.ErrUnauthorized
	}

	return userID, nil
}

// Destroy clears the token's identity, returning the session to Anonymous.
func (s *Store) Destroy(ctx context.Context, token string) error {
	deleted, err := s.client.Del(ctx, sessionKey(token)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.ErrUnauthorized
	}

	return nil
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

//go:build integration

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"testing"

	"recipe_api/internal/config"
	"recipe_api/internal/db"

	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
)

// TestEnv holds the external dependencies for the integration suite.
// Tests skip when Postgres or Redis is not reachable.
type TestEnv struct {
	DB          *sql.DB
	RedisClient *redis.Client
	Config      *config.Config
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getenv("TEST_DB_HOST", "localhost"),
		getenv("TEST_DB_PORT", "5432"),
		getenv("TEST_DB_USER", "postgres"),
		getenv("TEST_DB_PASSWORD", "postgres"),
		getenv("TEST_DB_NAME", "recipe_api_test"),
	)

	database, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	if err := database.Ping(); err != nil {
		t.Skipf("Postgres not available, skipping integration test: %v", err)
	}

	require.NoError(t, db.Migrate(database))

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", getenv("TEST_REDIS_HOST", "localhost"), getenv("TEST_REDIS_PORT", "6379")),
		DB:   1,
	})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available, skipping integration test: %v", err)
	}

	// Start from a clean slate
	_, err = database.Exec("TRUNCATE recipes, users RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	require.NoError(t, rdb.FlushDB(ctx).Err())

	cfg := &config.Config{
		Cookie: config.CookieConfig{
			Path:     "/",
			SameSite: http.SameSiteLaxMode,
		},
	}

	return &TestEnv{
		DB:          database,
		RedisClient: rdb,
		Config:      cfg,
	}
}

func (e *TestEnv) Cleanup(t *testing.T) {
	t.Helper()

	if err := e.RedisClient.Close(); err != nil {
		t.Logf("failed to close redis client: %v", err)
	}
	if err := e.DB.Close(); err != nil {
		t.Logf("failed to close database: %v", err)
	}
}

// CountUsers returns the number of rows in the users table.
func (e *TestEnv) CountUsers(t *testing.T) int {
	t.Helper()

	var count int
	require.NoError(t, e.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	return count
}

// CountRecipes returns the number of rows in the recipes table.
func (e *TestEnv) CountRecipes(t *testing.T) int {
	t.Helper()

	var count int
	require.NoError(t, e.DB.QueryRow("SELECT COUNT(*) FROM recipes").Scan(&count))
	return count
}

package service

import (
	"context"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/store"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

func createTestCasino(t *testing.T, db *sqlx.DB, name string) *model.Casino {
	t.Helper()
	casino := &model.Casino{
		ID:      uuid.New(),
		Name:    name,
		City:    "Vienna",
		Country: "Austria",
		Lat:     48.2,
		Lng:     16.37,
	}
	require.NoError(t, store.NewCasinoStore(db).CreateCasino(context.Background(), casino))
	return casino
}

func createTestUser(t *testing.T, db *sqlx.DB, role model.Role, casinos ...uuid.UUID) *model.User {
	t.Helper()
	user := &model.User{
		ID:                uuid.New(),
		Name:              "Test User",
		Email:             uuid.NewString() + "@example.com",
		PasswordHash:      "x",
		Role:              role,
		AssignedCasinoIDs: casinos,
	}
	require.NoError(t, store.NewUserStore(db).CreateUser(context.Background(), user))
	return user
}

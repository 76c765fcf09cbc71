// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"callhelper/internal/db"
	"callhelper/internal/matching"
	"callhelper/internal/models"
)

// ErrUnreachable is returned by FailingStorage and failing sources.
var ErrUnreachable = errors.New("unreachable")

// TestDB connects to TEST_DATABASE_URL, runs migrations and empties the
// tables. The test is skipped when no database is configured.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database)

	return database, func() {
		cleanupTestData(ctx, database)
		database.Close()
	}
}

func cleanupTestData(ctx context.Context, database *db.DB) {
	database.Pool.Exec(ctx, "DELETE FROM interaction_logs")
	database.Pool.Exec(ctx, "DELETE FROM cases")
}

// StubSource serves a fixed case snapshot.
type StubSource struct {
	Cases []models.Case
	Err   error
}

// FetchAllCases returns the configured cases or error.
func (s StubSource) FetchAllCases(context.Context) ([]models.Case, error) {
	return s.Cases, s.Err
}

// Gate returns a gate routing the built-in labels to a keyword policy over cases.
func Gate(cases ...models.Case) *matching.Gate {
	policy := matching.NewKeywordPolicy(matching.PolicyUmrah, StubSource{Cases: cases}, nil)
	return matching.NewGate(nil, matching.DefaultRoutes(policy)...)
}

// FailingStorage is a session storage whose every call fails.
type FailingStorage struct{}

func (FailingStorage) Get(string) ([]byte, error) { return nil, ErrUnreachable }
func (FailingStorage) Set(string, []byte, time.Duration) error { return ErrUnreachable }
func (FailingStorage) Delete(string) error { return ErrUnreachable }

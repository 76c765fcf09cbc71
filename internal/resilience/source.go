package resilience

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"callhelper/internal/matching"
	"callhelper/internal/models"
)

const opFetchAllCases = "cases.fetch_all"

// GuardedSource wraps a CaseSource with retry and circuit breaking.
type GuardedSource struct {
	source matching.CaseSource
	guard  *Guard
}

// NewGuardedSource wraps source.
func NewGuardedSource(source matching.CaseSource, guard *Guard) *GuardedSource {
	return &GuardedSource{source: source, guard: guard}
}

// FetchAllCases fetches a snapshot through the guard.
func (s *GuardedSource) FetchAllCases(ctx context.Context) ([]models.Case, error) {
	var cases []models.Case
	err := s.guard.Do(ctx, opFetchAllCases, func(ctx context.Context) error {
		var err error
		cases, err = s.source.FetchAllCases(ctx)
		return err
	}, ClassifyRepositoryError)
	if err != nil {
		return nil, err
	}
	return cases, nil
}

// ClassifyRepositoryError retries connection-level Postgres failures.
// Caller cancellation is neither retried nor held against the repository.
func ClassifyRepositoryError(err error) Verdict {
	switch {
	case errors.Is(err, context.Canceled):
		return Verdict{Retry: false, CountAsFailure: false}
	case errors.Is(err, context.DeadlineExceeded):
		return Verdict{Retry: false, CountAsFailure: true}
	case pgconn.SafeToRetry(err), pgconn.Timeout(err):
		return Verdict{Retry: true, CountAsFailure: true}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception. Class 57P: operator intervention.
		retry := strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P")
		return Verdict{Retry: retry, CountAsFailure: true}
	}

	return Verdict{Retry: false, CountAsFailure: true}
}

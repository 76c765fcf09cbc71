package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"callhelper/internal/matching"
	"callhelper/internal/models"
)

type flakySource struct {
	failures int
	err      error
	calls    int
}

func (s *flakySource) FetchAllCases(context.Context) ([]models.Case, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, s.err
	}
	return []models.Case{{CaseID: "TEST-003", MainKeywords: []string{"تفعيل"}}}, nil
}

func TestGuardedSource_RetriesConnectionErrors(t *testing.T) {
	src := &flakySource{failures: 2, err: &pgconn.PgError{Code: "08006"}}
	guarded := NewGuardedSource(src, NewGuard(fastConfig(true)))

	cases, err := guarded.FetchAllCases(context.Background())
	if err != nil {
		t.Fatalf("FetchAllCases() error = %v", err)
	}
	if len(cases) != 1 || src.calls != 3 {
		t.Errorf("got %d cases after %d calls", len(cases), src.calls)
	}
}

func TestGuardedSource_DoesNotRetryQueryErrors(t *testing.T) {
	src := &flakySource{failures: 5, err: &pgconn.PgError{Code: "42P01"}}
	guarded := NewGuardedSource(src, NewGuard(fastConfig(false)))

	if _, err := guarded.FetchAllCases(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if src.calls != 1 {
		t.Errorf("expected 1 call, got %d", src.calls)
	}
}

func TestGuardedSource_FeedsPolicy(t *testing.T) {
	src := &flakySource{failures: 1, err: &pgconn.PgError{Code: "57P01"}}
	guarded := NewGuardedSource(src, NewGuard(Config{InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond}))

	policy := matching.NewKeywordPolicy(matching.PolicyUmrah, guarded, nil)
	best, _ := policy.FindBestRow(context.Background(), "تفعيل")
	if best == nil || best.Case.CaseID != "TEST-003" {
		t.Errorf("FindBestRow() = %v, want TEST-003", best)
	}
}

func TestClassifyRepositoryError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Verdict
	}{
		{"canceled", context.Canceled, Verdict{Retry: false, CountAsFailure: false}},
		{"wrapped canceled", fmt.Errorf("query: %w", context.Canceled), Verdict{Retry: false, CountAsFailure: false}},
		{"deadline", context.DeadlineExceeded, Verdict{Retry: false, CountAsFailure: true}},
		{"connection failure", &pgconn.PgError{Code: "08006"}, Verdict{Retry: true, CountAsFailure: true}},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, Verdict{Retry: true, CountAsFailure: true}},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, Verdict{Retry: false, CountAsFailure: true}},
		{"generic", errors.New("boom"), Verdict{Retry: false, CountAsFailure: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRepositoryError(tt.err); got != tt.want {
				t.Errorf("ClassifyRepositoryError(%v) = %+v, want %+v", tt.err, got, tt.want)
			}
		})
	}
}

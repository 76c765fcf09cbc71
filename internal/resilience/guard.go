// Package resilience retries transient repository failures and stops calling
// a repository that keeps failing.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Verdict says how a failed call is treated.
type Verdict struct {
	Retry          bool
	CountAsFailure bool
}

// Classifier maps an error to a Verdict.
type Classifier func(err error) Verdict

// Guard runs operations with retry and a per-operation circuit breaker.
type Guard struct {
	cfg Config

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

// NewGuard creates a guard. Zero fields in cfg take their defaults.
func NewGuard(cfg Config) *Guard {
	return &Guard{
		cfg:      cfg.withDefaults(),
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// Do runs fn under the named operation's breaker, retrying errors the
// classifier marks retryable. A nil classifier never retries.
func (g *Guard) Do(ctx context.Context, operation string, fn func(context.Context) error, classify Classifier) error {
	if fn == nil {
		return fmt.Errorf("resilience: nil operation %q", operation)
	}
	op := strings.TrimSpace(operation)
	if op == "" {
		op = "unnamed"
	}
	if classify == nil {
		classify = neverRetry
	}

	if !g.cfg.BreakerEnabled {
		return g.retry(ctx, op, fn, classify)
	}

	_, err := g.breaker(op, classify).Execute(func() (any, error) {
		return nil, g.retry(ctx, op, fn, classify)
	})
	return err
}

func (g *Guard) retry(ctx context.Context, op string, fn func(context.Context) error, classify Classifier) error {
	backoff := g.cfg.InitialBackoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= g.cfg.Attempts || !classify(err).Retry {
			return err
		}

		wait := min(backoff, g.cfg.MaxBackoff)
		slog.Warn("retrying operation",
			"operation", op,
			"attempt", attempt,
			"max_attempts", g.cfg.Attempts,
			"backoff", wait,
			"error", err,
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}

		backoff = min(time.Duration(float64(backoff)*g.cfg.Multiplier), g.cfg.MaxBackoff)
	}
}

func (g *Guard) breaker(op string, classify Classifier) *gobreaker.CircuitBreaker[any] {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cb, ok := g.breakers[op]; ok {
		return cb
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        op,
		MaxRequests: g.cfg.BreakerHalfOpenCalls,
		Timeout:     g.cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < g.cfg.BreakerMinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= g.cfg.BreakerFailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !classify(err).CountAsFailure
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed", "operation", name, "from", from.String(), "to", to.String())
		},
	})
	g.breakers[op] = cb
	return cb
}

// IsCircuitOpen reports whether err was returned without calling the
// operation because its breaker is open or half-open and saturated.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func neverRetry(error) Verdict {
	return Verdict{Retry: false, CountAsFailure: true}
}

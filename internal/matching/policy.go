package matching

import (
	"context"
	"fmt"
	"log/slog"

	"callhelper/internal/models"
)

// CaseSource supplies a full, unfiltered snapshot of the knowledge base.
type CaseSource interface {
	FetchAllCases(ctx context.Context) ([]models.Case, error)
}

// Policy is a matching strategy selected for a caller classification.
type Policy interface {
	Name() string
	FindAllMatches(ctx context.Context, query string, limit int) []ScoredCase
	FindBestRow(ctx context.Context, query string) (*ScoredCase, string)
}

// KeywordPolicy ranks a fresh snapshot with the keyword engine on every call.
type KeywordPolicy struct {
	name     string
	source   CaseSource
	messages Messages
}

// NewKeywordPolicy creates a keyword policy reading cases from source.
func NewKeywordPolicy(name string, source CaseSource, messages Messages) *KeywordPolicy {
	if messages == nil {
		messages = DefaultMessages()
	}
	return &KeywordPolicy{name: name, source: source, messages: messages}
}

// Name returns the policy name used in routing tables.
func (p *KeywordPolicy) Name() string {
	return p.name
}

// FindAllMatches returns up to limit ranked cases for query. Repository
// failures are logged and yield an empty result.
func (p *KeywordPolicy) FindAllMatches(ctx context.Context, query string, limit int) []ScoredCase {
	if Normalize(query) == "" {
		slog.Debug("skipping match", "policy", p.name, "reason", ErrEmptyNormalizedQuery)
		return nil
	}
	if p.source == nil {
		slog.Error("case snapshot unavailable", "policy", p.name, "error", ErrRepositoryUnavailable)
		return nil
	}

	snapshot, err := p.source.FetchAllCases(ctx)
	if err != nil {
		slog.Error("case snapshot unavailable", "policy", p.name,
			"error", fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err))
		return nil
	}

	matches := Rank(query, snapshot, limit)
	slog.Debug("ranked cases", "policy", p.name, "candidates", len(snapshot), "matches", len(matches))
	return matches
}

// FindBestRow returns the top-ranked case with the success message, or nil
// with the no-match message.
func (p *KeywordPolicy) FindBestRow(ctx context.Context, query string) (*ScoredCase, string) {
	matches := p.FindAllMatches(ctx, query, DefaultLimit)
	if len(matches) == 0 {
		return nil, p.messages.Get(MessageNoMatch)
	}
	best := matches[0]
	return &best, p.messages.Get(MessageSuccess)
}

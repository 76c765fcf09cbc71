package jobs

import (
	"context"
	"log/slog"
	"time"
)

// InteractionPruner deletes interaction log rows older than a cutoff.
type InteractionPruner interface {
	DeleteInteractionsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionPruner periodically removes expired interaction logs.
type RetentionPruner struct {
	store    InteractionPruner
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time
}

// NewRetentionPruner creates a pruner keeping retentionDays of history.
// It returns nil when retentionDays is not positive, meaning keep forever.
func NewRetentionPruner(store InteractionPruner, interval time.Duration, retentionDays int) *RetentionPruner {
	if retentionDays <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &RetentionPruner{
		store:    store,
		interval: interval,
		maxAge:   time.Duration(retentionDays) * 24 * time.Hour,
		now:      time.Now,
	}
}

// Start runs the prune loop until ctx is canceled.
func (p *RetentionPruner) Start(ctx context.Context) {
	slog.Info("retention pruner started", "interval", p.interval, "max_age", p.maxAge)

	// Run immediately on start
	p.pruneOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention pruner stopped")
			return
		case <-ticker.C:
			p.pruneOnce(ctx)
		}
	}
}

// pruneOnce deletes everything older than maxAge and returns the row count.
func (p *RetentionPruner) pruneOnce(ctx context.Context) int64 {
	cutoff := p.now().UTC().Add(-p.maxAge)
	removed, err := p.store.DeleteInteractionsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("retention pruner: failed to delete old interactions", "cutoff", cutoff, "error", err)
		return 0
	}
	if removed > 0 {
		slog.Info("retention pruner: deleted old interactions", "count", removed, "cutoff", cutoff)
	}
	return removed
}

package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"callhelper/internal/models"
)

var (
	interactionsDesc = prometheus.NewDesc(
		"callhelper_interactions_total",
		"Total logged interactions by type and outcome",
		[]string{"type", "outcome"},
		nil,
	)
)

// recordTimeout bounds a single asynchronous log write.
const recordTimeout = 5 * time.Second

// InteractionStore is the interaction log the metrics package reads and writes.
type InteractionStore interface {
	LogInteraction(ctx context.Context, in *models.Interaction) error
	GetInteractionCounts(ctx context.Context) ([]models.InteractionCount, error)
}

// InteractionCollector is a custom Prometheus collector that reads
// interaction counts from the database on each scrape.
type InteractionCollector struct {
	store InteractionStore
}

// NewInteractionCollector creates a collector over store.
func NewInteractionCollector(store InteractionStore) *InteractionCollector {
	return &InteractionCollector{store: store}
}

// Describe sends the metric descriptor to the channel.
func (c *InteractionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- interactionsDesc
}

// Collect queries the interaction log and emits one counter per type/outcome.
func (c *InteractionCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.store.GetInteractionCounts(context.Background())
	if err != nil {
		slog.Error("failed to collect interaction metrics", "error", err)
		return
	}
	for _, n := range counts {
		ch <- prometheus.MustNewConstMetric(
			interactionsDesc,
			prometheus.CounterValue,
			float64(n.Count),
			n.Type,
			n.Outcome,
		)
	}
}

// Recorder writes interactions to the log in the background.
type Recorder struct {
	store InteractionStore
	wg    sync.WaitGroup
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(store InteractionStore) {
	recorderOnce.Do(func() {
		recorder = &Recorder{store: store}
		prometheus.MustRegister(NewInteractionCollector(store))
	})
}

// RecordInteraction asynchronously appends an interaction to the log.
// It is a no-op until Init has been called.
func RecordInteraction(in models.Interaction) {
	if recorder == nil {
		return
	}
	recorder.wg.Add(1)
	go func() {
		defer recorder.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := recorder.store.LogInteraction(ctx, &in); err != nil {
			slog.Error("failed to record interaction", "type", in.Type, "success", in.Success, "error", err)
		}
	}()
}

// Wait blocks until in-flight recordings finish. Called on shutdown.
func Wait() {
	if recorder == nil {
		return
	}
	recorder.wg.Wait()
}

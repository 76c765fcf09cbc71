package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"callhelper/internal/models"
)

type fakeStore struct {
	mu     sync.Mutex
	logged []models.Interaction
	counts []models.InteractionCount
	err    error
}

func (f *fakeStore) LogInteraction(_ context.Context, in *models.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logged = append(f.logged, *in)
	return f.err
}

func (f *fakeStore) GetInteractionCounts(context.Context) ([]models.InteractionCount, error) {
	return f.counts, f.err
}

func TestInteractionCollector(t *testing.T) {
	store := &fakeStore{counts: []models.InteractionCount{
		{Type: models.InteractionResolve, Outcome: models.OutcomeSuccess, Count: 7},
		{Type: models.InteractionChat, Outcome: models.OutcomeFailure, Count: 2},
	}}

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(NewInteractionCollector(store))

	expected := `
# HELP callhelper_interactions_total Total logged interactions by type and outcome
# TYPE callhelper_interactions_total counter
callhelper_interactions_total{outcome="failure",type="chat"} 2
callhelper_interactions_total{outcome="success",type="resolve"} 7
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "callhelper_interactions_total"); err != nil {
		t.Error(err)
	}
}

func TestInteractionCollector_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	if n := testutil.CollectAndCount(NewInteractionCollector(store)); n != 0 {
		t.Errorf("expected no metrics on store error, got %d", n)
	}
}

func TestRecordInteraction(t *testing.T) {
	// Before Init the recorder is a no-op.
	RecordInteraction(models.Interaction{Type: models.InteractionResolve})

	store := &fakeStore{}
	Init(store)

	RecordInteraction(models.Interaction{Type: models.InteractionResolve, Query: "تفعيل", Success: true})
	RecordInteraction(models.Interaction{Type: models.InteractionChat, Query: "بيانات"})
	Wait()

	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.logged) != 2 {
		t.Fatalf("expected 2 logged interactions, got %d", len(store.logged))
	}
}

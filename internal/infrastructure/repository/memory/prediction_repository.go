package memory

import (
	"context"
	"sync"

	"github.com/golestat/prediction-league/internal/domain/prediction"
)

type PredictionRepository struct {
	mu      sync.RWMutex
	items   map[string]prediction.Prediction
	byMatch map[string][]string
}

func NewPredictionRepository(predictions []prediction.Prediction) *PredictionRepository {
	items := make(map[string]prediction.Prediction, len(predictions))
	byMatch := make(map[string][]string)
	for _, p := range predictions {
		items[p.ID] = p
		byMatch[p.MatchID] = append(byMatch[p.MatchID], p.ID)
	}

	return &PredictionRepository{
		items:   items,
		byMatch: byMatch,
	}
}

func (r *PredictionRepository) ListByMatch(_ context.Context, matchID string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byMatch[matchID]
	out := make([]prediction.Prediction, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *PredictionRepository) ListByMatches(ctx context.Context, matchIDs []string) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, 0)
	for _, matchID := range matchIDs {
		for _, id := range r.byMatch[matchID] {
			out = append(out, r.items[id])
		}
	}
	return out, nil
}

// setPoints is the write path the scoring repository uses.
func (r *PredictionRepository) setPoints(predictionID string, points int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[predictionID]
	if !ok {
		return
	}
	p.Points = points
	r.items[predictionID] = p
}

// GetByID is a test convenience for asserting written point values.
func (r *PredictionRepository) GetByID(_ context.Context, predictionID string) (prediction.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[predictionID]
	return p, ok, nil
}

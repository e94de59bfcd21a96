package memory

import (
	"context"

	"github.com/golestat/prediction-league/internal/domain/scoring"
)

// ScoringRepository applies point batches by writing back into the in-memory
// prediction and question stores.
type ScoringRepository struct {
	predictions *PredictionRepository
	questions   *QuestionRepository
}

func NewScoringRepository(predictions *PredictionRepository, questions *QuestionRepository) *ScoringRepository {
	return &ScoringRepository{
		predictions: predictions,
		questions:   questions,
	}
}

func (r *ScoringRepository) ApplyMatchPoints(_ context.Context, batch scoring.MatchPointsBatch) error {
	for _, row := range batch.Predictions {
		r.predictions.setPoints(row.PredictionID, row.Points)
	}
	for _, row := range batch.Answers {
		r.questions.setAnswerPoints(row.AnswerID, row.Points)
	}
	return nil
}

func (r *ScoringRepository) ApplyQuestionPoints(_ context.Context, batch scoring.QuestionPointsBatch) error {
	for _, row := range batch.Answers {
		r.questions.setAnswerPoints(row.AnswerID, row.Points)
	}
	return nil
}

package prediction

import (
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
)

// Prediction is one user's score guess for one match. Uniqueness on
// (user, match) is enforced by storage. Points is written exclusively by the
// scoring engine and stays zero while the match is unfinished.
type Prediction struct {
	ID        string
	MatchID   string
	UserID    string
	HomeScore int
	AwayScore int
	Winner    match.Outcome
	Points    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PredictedOutcome derives the winner from the predicted scores. The stored
// Winner column is a denormalized copy made at submission time; scoring
// always derives from the scores so a drifted copy cannot affect awards.
func (p Prediction) PredictedOutcome() match.Outcome {
	return match.OutcomeOf(p.HomeScore, p.AwayScore)
}

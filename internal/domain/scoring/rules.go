package scoring

import (
	"fmt"

	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/domain/prediction"
	"github.com/golestat/prediction-league/internal/domain/question"
)

// Award classifies what a prediction earned.
type Award string

const (
	AwardNone    Award = "NONE"
	AwardOutcome Award = "OUTCOME"
	AwardExact   Award = "EXACT"
)

// Rules is the single point rule table. Every scoring path in the engine
// goes through it; the award values are injected once at construction so a
// product change to the point scheme is a single edit.
//
// The two awards are mutually exclusive: an exact score earns
// ExactScorePoints, a correct outcome that is not exact earns OutcomePoints.
type Rules struct {
	ExactScorePoints int
	OutcomePoints    int
}

func DefaultRules() Rules {
	return Rules{
		ExactScorePoints: 3,
		OutcomePoints:    1,
	}
}

func (r Rules) Validate() error {
	if r.ExactScorePoints <= 0 {
		return fmt.Errorf("exact score points must be greater than zero")
	}
	if r.OutcomePoints < 0 {
		return fmt.Errorf("outcome points cannot be negative")
	}
	if r.OutcomePoints > r.ExactScorePoints {
		return fmt.Errorf("outcome points cannot exceed exact score points")
	}
	return nil
}

// ScorePrediction awards points for one prediction against the final score.
// The caller guarantees the match is finished; homeScore/awayScore are the
// authoritative result.
func (r Rules) ScorePrediction(p prediction.Prediction, homeScore, awayScore int) (int, Award) {
	if p.HomeScore == homeScore && p.AwayScore == awayScore {
		return r.ExactScorePoints, AwardExact
	}
	if p.PredictedOutcome() == match.OutcomeOf(homeScore, awayScore) {
		return r.OutcomePoints, AwardOutcome
	}
	return 0, AwardNone
}

// ScoreAnswer awards the question's configured points for an exact,
// case-sensitive answer match. An ungraded question awards nothing; callers
// must skip ungraded questions entirely rather than zeroing prior points.
func (r Rules) ScoreAnswer(a question.Answer, q question.Question) int {
	if q.CorrectAnswer == nil {
		return 0
	}
	if a.Answer == *q.CorrectAnswer {
		return q.Points
	}
	return 0
}

package scoring

import "time"

// PredictionPoints is the recomputed point value for one prediction.
type PredictionPoints struct {
	PredictionID string
	UserID       string
	Points       int
	Award        Award
}

// AnswerPoints is the recomputed point value for one question answer.
type AnswerPoints struct {
	AnswerID   string
	QuestionID string
	UserID     string
	Points     int
}

// MatchPointsBatch carries every point write for one finalized match. The
// repository applies the whole batch in a single transaction: a rerun always
// overwrites from scratch, never increments.
type MatchPointsBatch struct {
	MatchID      string
	Predictions  []PredictionPoints
	Answers      []AnswerPoints
	CalculatedAt time.Time
}

func (b MatchPointsBatch) TotalPoints() int {
	total := 0
	for _, row := range b.Predictions {
		total += row.Points
	}
	for _, row := range b.Answers {
		total += row.Points
	}
	return total
}

// QuestionPointsBatch carries every point write for one graded question,
// used for season-scoped timed questions that have no match to anchor on.
type QuestionPointsBatch struct {
	QuestionID   string
	Answers      []AnswerPoints
	CalculatedAt time.Time
}

func (b QuestionPointsBatch) TotalPoints() int {
	total := 0
	for _, row := range b.Answers {
		total += row.Points
	}
	return total
}

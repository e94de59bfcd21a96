package question

import "context"

type Repository interface {
	GetByID(ctx context.Context, questionID string) (Question, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Question, error)
	ListByMatches(ctx context.Context, matchIDs []string) ([]Question, error)
	ListTimedBySeason(ctx context.Context, seasonID string) ([]Question, error)
	ListTimedBySeasonWeek(ctx context.Context, seasonID string, week int) ([]Question, error)
	ListAnswersByQuestion(ctx context.Context, questionID string) ([]Answer, error)
	ListAnswersByQuestions(ctx context.Context, questionIDs []string) ([]Answer, error)
	// SetCorrectAnswer grades a question. Callers are expected to trigger
	// rescoring afterwards.
	SetCorrectAnswer(ctx context.Context, questionID, answer string) error
}

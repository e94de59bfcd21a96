package scoring

import "context"

// Repository persists recomputed point values. Both methods are atomic:
// either every row in the batch is written or none are.
type Repository interface {
	ApplyMatchPoints(ctx context.Context, batch MatchPointsBatch) error
	ApplyQuestionPoints(ctx context.Context, batch QuestionPointsBatch) error
}

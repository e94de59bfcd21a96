package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/golestat/prediction-league/internal/domain/question"
	qb "github.com/golestat/prediction-league/internal/platform/querybuilder"
)

type QuestionRepository struct {
	db *sqlx.DB
}

func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) GetByID(ctx context.Context, questionID string) (question.Question, bool, error) {
	query, args, err := qb.Select("*").From("questions").
		Where(
			qb.Eq("public_id", questionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return question.Question{}, false, fmt.Errorf("build get question query: %w", err)
	}

	var row questionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return question.Question{}, false, nil
		}
		return question.Question{}, false, fmt.Errorf("get question: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *QuestionRepository) ListByMatch(ctx context.Context, matchID string) ([]question.Question, error) {
	query, args, err := qb.Select("*").From("questions").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list questions by match query: %w", err)
	}
	return r.selectQuestions(ctx, query, args)
}

func (r *QuestionRepository) ListByMatches(ctx context.Context, matchIDs []string) ([]question.Question, error) {
	if len(matchIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(matchIDs))
	for _, id := range matchIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("questions").
		Where(
			qb.In("match_public_id", values),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_public_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list questions by matches query: %w", err)
	}
	return r.selectQuestions(ctx, query, args)
}

func (r *QuestionRepository) ListTimedBySeason(ctx context.Context, seasonID string) ([]question.Question, error) {
	query, args, err := qb.Select("*").From("questions").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.IsNull("match_public_id"),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list timed questions query: %w", err)
	}
	return r.selectQuestions(ctx, query, args)
}

func (r *QuestionRepository) ListTimedBySeasonWeek(ctx context.Context, seasonID string, week int) ([]question.Question, error) {
	query, args, err := qb.Select("*").From("questions").
		Where(
			qb.Eq("season_public_id", seasonID),
			qb.Eq("week", week),
			qb.IsNull("match_public_id"),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list timed questions by week query: %w", err)
	}
	return r.selectQuestions(ctx, query, args)
}

func (r *QuestionRepository) selectQuestions(ctx context.Context, query string, args []any) ([]question.Question, error) {
	var rows []questionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select questions: %w", err)
	}

	out := make([]question.Question, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *QuestionRepository) ListAnswersByQuestion(ctx context.Context, questionID string) ([]question.Answer, error) {
	query, args, err := qb.Select("*").From("question_answers").
		Where(
			qb.Eq("question_public_id", questionID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list answers by question query: %w", err)
	}
	return r.selectAnswers(ctx, query, args)
}

func (r *QuestionRepository) ListAnswersByQuestions(ctx context.Context, questionIDs []string) ([]question.Answer, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(questionIDs))
	for _, id := range questionIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("question_answers").
		Where(
			qb.In("question_public_id", values),
			qb.IsNull("deleted_at"),
		).
		OrderBy("question_public_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list answers by questions query: %w", err)
	}
	return r.selectAnswers(ctx, query, args)
}

func (r *QuestionRepository) selectAnswers(ctx context.Context, query string, args []any) ([]question.Answer, error) {
	var rows []answerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select answers: %w", err)
	}

	out := make([]question.Answer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *QuestionRepository) SetCorrectAnswer(ctx context.Context, questionID, answer string) error {
	query, args, err := qb.Update("questions").
		Set("correct_answer", answer).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", questionID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set correct answer query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set correct answer: %w", err)
	}
	return nil
}

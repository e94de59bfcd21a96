package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/domain/prediction"
	"github.com/golestat/prediction-league/internal/domain/question"
	"github.com/golestat/prediction-league/internal/domain/scoring"
)

// MatchScoringService recomputes point values for one finalized match or one
// graded question. Every run overwrites the previous values from scratch, so
// rescoring after a result correction needs no special handling.
type MatchScoringService struct {
	matchRepo    match.Repository
	predRepo     prediction.Repository
	questionRepo question.Repository
	scoringRepo  scoring.Repository
	rules        scoring.Rules
	now          func() time.Time
}

func NewMatchScoringService(
	matchRepo match.Repository,
	predRepo prediction.Repository,
	questionRepo question.Repository,
	scoringRepo scoring.Repository,
	rules scoring.Rules,
) *MatchScoringService {
	return &MatchScoringService{
		matchRepo:    matchRepo,
		predRepo:     predRepo,
		questionRepo: questionRepo,
		scoringRepo:  scoringRepo,
		rules:        rules,
		now:          time.Now,
	}
}

// ScoreMatch recomputes every prediction and every graded match question for
// one finished match, and applies the whole batch in a single transaction.
// It returns the applied batch so callers can report distributed points.
func (s *MatchScoringService) ScoreMatch(ctx context.Context, matchID string) (scoring.MatchPointsBatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoringService.ScoreMatch")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return scoring.MatchPointsBatch{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return scoring.MatchPointsBatch{}, fmt.Errorf("get match for scoring: %w", err)
	}
	if !exists {
		return scoring.MatchPointsBatch{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.IsScoreable() {
		return scoring.MatchPointsBatch{}, fmt.Errorf("%w: match=%s status=%s", ErrNotReady, matchID, match.NormalizeStatus(m.Status))
	}

	batch, err := s.buildMatchBatch(ctx, m)
	if err != nil {
		return scoring.MatchPointsBatch{}, err
	}

	if err := s.scoringRepo.ApplyMatchPoints(ctx, batch); err != nil {
		return scoring.MatchPointsBatch{}, fmt.Errorf("apply match points match=%s: %w", matchID, err)
	}
	return batch, nil
}

func (s *MatchScoringService) buildMatchBatch(ctx context.Context, m match.Match) (scoring.MatchPointsBatch, error) {
	batch := scoring.MatchPointsBatch{
		MatchID:      m.ID,
		CalculatedAt: s.now().UTC(),
	}

	predictions, err := s.predRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return scoring.MatchPointsBatch{}, fmt.Errorf("list predictions match=%s: %w", m.ID, err)
	}
	for _, p := range predictions {
		points, award := s.rules.ScorePrediction(p, *m.HomeScore, *m.AwayScore)
		batch.Predictions = append(batch.Predictions, scoring.PredictionPoints{
			PredictionID: p.ID,
			UserID:       p.UserID,
			Points:       points,
			Award:        award,
		})
	}

	questions, err := s.questionRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return scoring.MatchPointsBatch{}, fmt.Errorf("list questions match=%s: %w", m.ID, err)
	}
	gradedIDs := make([]string, 0, len(questions))
	gradedByID := make(map[string]question.Question, len(questions))
	for _, q := range questions {
		// Ungraded questions are skipped entirely: their answers keep
		// whatever points a prior grading wrote.
		if !q.IsGraded() {
			continue
		}
		gradedIDs = append(gradedIDs, q.ID)
		gradedByID[q.ID] = q
	}
	if len(gradedIDs) == 0 {
		return batch, nil
	}

	answers, err := s.questionRepo.ListAnswersByQuestions(ctx, gradedIDs)
	if err != nil {
		return scoring.MatchPointsBatch{}, fmt.Errorf("list answers match=%s: %w", m.ID, err)
	}
	for _, a := range answers {
		q, ok := gradedByID[a.QuestionID]
		if !ok {
			continue
		}
		batch.Answers = append(batch.Answers, scoring.AnswerPoints{
			AnswerID:   a.ID,
			QuestionID: a.QuestionID,
			UserID:     a.UserID,
			Points:     s.rules.ScoreAnswer(a, q),
		})
	}

	return batch, nil
}

// ScoreQuestion recomputes every answer of one graded question. It is the
// grading path for season-scoped timed questions, and also works for match
// questions graded after their match was already scored.
func (s *MatchScoringService) ScoreQuestion(ctx context.Context, questionID string) (scoring.QuestionPointsBatch, question.Question, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoringService.ScoreQuestion")
	defer span.End()

	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return scoring.QuestionPointsBatch{}, question.Question{}, fmt.Errorf("%w: question id is required", ErrInvalidInput)
	}

	q, exists, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return scoring.QuestionPointsBatch{}, question.Question{}, fmt.Errorf("get question for scoring: %w", err)
	}
	if !exists {
		return scoring.QuestionPointsBatch{}, question.Question{}, fmt.Errorf("%w: question=%s", ErrNotFound, questionID)
	}
	if !q.IsGraded() {
		return scoring.QuestionPointsBatch{}, question.Question{}, fmt.Errorf("%w: question=%s has no correct answer", ErrNotReady, questionID)
	}

	answers, err := s.questionRepo.ListAnswersByQuestion(ctx, questionID)
	if err != nil {
		return scoring.QuestionPointsBatch{}, question.Question{}, fmt.Errorf("list answers question=%s: %w", questionID, err)
	}

	batch := scoring.QuestionPointsBatch{
		QuestionID:   questionID,
		CalculatedAt: s.now().UTC(),
	}
	for _, a := range answers {
		batch.Answers = append(batch.Answers, scoring.AnswerPoints{
			AnswerID:   a.ID,
			QuestionID: a.QuestionID,
			UserID:     a.UserID,
			Points:     s.rules.ScoreAnswer(a, q),
		})
	}

	if err := s.scoringRepo.ApplyQuestionPoints(ctx, batch); err != nil {
		return scoring.QuestionPointsBatch{}, question.Question{}, fmt.Errorf("apply question points question=%s: %w", questionID, err)
	}
	return batch, q, nil
}

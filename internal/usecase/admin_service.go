package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/domain/question"
	"github.com/golestat/prediction-league/internal/platform/logging"
)

// AdminService owns the write paths operators hit when results and answers
// come in: it persists the change, then runs the incremental recalculation
// so the leaderboards are current before the call returns.
type AdminService struct {
	matchRepo    match.Repository
	questionRepo question.Repository
	recalc       *RecalculationService
	logger       *logging.Logger
	now          func() time.Time
}

func NewAdminService(
	matchRepo match.Repository,
	questionRepo question.Repository,
	recalc *RecalculationService,
	logger *logging.Logger,
) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminService{
		matchRepo:    matchRepo,
		questionRepo: questionRepo,
		recalc:       recalc,
		logger:       logger,
		now:          time.Now,
	}
}

type SetMatchResultInput struct {
	MatchID   string `json:"match_id" validate:"required"`
	HomeScore int    `json:"home_score" validate:"gte=0"`
	AwayScore int    `json:"away_score" validate:"gte=0"`
}

// SetMatchResult finalizes a match or corrects a previously recorded result,
// then rescores the match and refreshes the affected aggregates. A repeated
// call with the same scores converges to the same stored state.
func (s *AdminService) SetMatchResult(ctx context.Context, input SetMatchResultInput) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SetMatchResult")
	defer span.End()

	matchID := strings.TrimSpace(input.MatchID)
	if matchID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if input.HomeScore < 0 || input.AwayScore < 0 {
		return FinalizeResult{}, fmt.Errorf("%w: scores cannot be negative", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("get match for result: %w", err)
	}
	if !exists {
		return FinalizeResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if match.IsCancelledLikeStatus(m.Status) {
		return FinalizeResult{}, fmt.Errorf("%w: match=%s status=%s cannot take a result", ErrInvalidInput, matchID, match.NormalizeStatus(m.Status))
	}

	corrected := match.IsFinishedStatus(m.Status)
	if err := s.matchRepo.SetResult(ctx, matchID, input.HomeScore, input.AwayScore, s.now().UTC()); err != nil {
		return FinalizeResult{}, fmt.Errorf("set result match=%s: %w", matchID, err)
	}

	s.logger.InfoContext(ctx, "match result recorded",
		"match_id", matchID,
		"home_score", input.HomeScore,
		"away_score", input.AwayScore,
		"corrected", corrected,
	)

	return s.recalc.OnMatchFinalized(ctx, matchID)
}

type SetCorrectAnswerInput struct {
	QuestionID    string `json:"question_id" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
}

// SetCorrectAnswer grades a question or corrects its answer, then rescores
// every submitted answer and refreshes the affected aggregates.
func (s *AdminService) SetCorrectAnswer(ctx context.Context, input SetCorrectAnswerInput) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SetCorrectAnswer")
	defer span.End()

	questionID := strings.TrimSpace(input.QuestionID)
	if questionID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: question id is required", ErrInvalidInput)
	}
	answer := strings.TrimSpace(input.CorrectAnswer)
	if answer == "" {
		return FinalizeResult{}, fmt.Errorf("%w: correct answer is required", ErrInvalidInput)
	}

	q, exists, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("get question for grading: %w", err)
	}
	if !exists {
		return FinalizeResult{}, fmt.Errorf("%w: question=%s", ErrNotFound, questionID)
	}
	if err := validateAnswerForQuestion(q, answer); err != nil {
		return FinalizeResult{}, err
	}

	if err := s.questionRepo.SetCorrectAnswer(ctx, questionID, answer); err != nil {
		return FinalizeResult{}, fmt.Errorf("set correct answer question=%s: %w", questionID, err)
	}

	s.logger.InfoContext(ctx, "question graded",
		"question_id", questionID,
		"regraded", q.IsGraded(),
	)

	return s.recalc.OnQuestionGraded(ctx, questionID)
}

// validateAnswerForQuestion rejects answers a question could never accept:
// an option outside a multiple-choice list, or a non yes/no value for a
// yes/no question.
func validateAnswerForQuestion(q question.Question, answer string) error {
	switch q.Type {
	case question.TypeMultipleChoice:
		for _, option := range q.Options {
			if option == answer {
				return nil
			}
		}
		return fmt.Errorf("%w: answer is not one of the question options", ErrInvalidInput)
	case question.TypeYesNo:
		if answer == question.AnswerYes || answer == question.AnswerNo {
			return nil
		}
		return fmt.Errorf("%w: answer must be %s or %s", ErrInvalidInput, question.AnswerYes, question.AnswerNo)
	default:
		return nil
	}
}

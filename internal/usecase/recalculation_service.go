package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/domain/question"
	"github.com/golestat/prediction-league/internal/domain/season"
	"github.com/golestat/prediction-league/internal/platform/logging"
	"github.com/golestat/prediction-league/internal/platform/resilience"
)

const (
	recalcStatusSuccess = "success"
	recalcStatusFailed  = "failed"
	recalcStatusSkipped = "skipped"

	defaultSeasonWorkers = 2
	defaultMatchWorkers  = 4
)

// RecalculationService drives the scoring pipeline: score, aggregate weeks,
// aggregate the season, rank. The incremental entry points react to one
// finalized match or one graded question; the bulk entry points rebuild a
// season or every season from raw rows. All paths converge to the same
// stored state, so running them repeatedly or concurrently is safe.
type RecalculationService struct {
	seasonRepo   season.Repository
	matchRepo    match.Repository
	questionRepo question.Repository
	scorer       *MatchScoringService
	aggregator   *AggregationService
	logger       *logging.Logger

	finalizeFlight resilience.SingleFlight
	seasonWorkers  int
	matchWorkers   int
}

func NewRecalculationService(
	seasonRepo season.Repository,
	matchRepo match.Repository,
	questionRepo question.Repository,
	scorer *MatchScoringService,
	aggregator *AggregationService,
	logger *logging.Logger,
) *RecalculationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RecalculationService{
		seasonRepo:    seasonRepo,
		matchRepo:     matchRepo,
		questionRepo:  questionRepo,
		scorer:        scorer,
		aggregator:    aggregator,
		logger:        logger,
		seasonWorkers: defaultSeasonWorkers,
		matchWorkers:  defaultMatchWorkers,
	}
}

// FinalizeResult reports what one incremental recalculation touched.
type FinalizeResult struct {
	SeasonID          string `json:"season_id"`
	Week              int    `json:"week"`
	PointsDistributed int    `json:"points_distributed"`
}

// SeasonSummary reports one season's bulk recalculation.
type SeasonSummary struct {
	SeasonID          string   `json:"season_id"`
	MatchesRescored   int      `json:"matches_rescored"`
	QuestionsRescored int      `json:"questions_rescored"`
	WeeksAggregated   int      `json:"weeks_aggregated"`
	PointsDistributed int      `json:"points_distributed"`
	FailedMatches     []string `json:"failed_matches,omitempty"`
	FailedQuestions   []string `json:"failed_questions,omitempty"`
	DurationMs        int64    `json:"duration_ms"`
}

// RecalculationSummary reports a full rebuild across all seasons.
type RecalculationSummary struct {
	SeasonCount  int                `json:"season_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	SkippedCount int                `json:"skipped_count"`
	WorkerCount  int                `json:"worker_count"`
	Seasons      []SeasonTaskResult `json:"seasons"`
	DurationMs   int64              `json:"duration_ms"`
}

// SeasonTaskResult is one season's row in the full-rebuild report.
type SeasonTaskResult struct {
	SeasonID string        `json:"season_id"`
	Status   string        `json:"status"`
	Summary  SeasonSummary `json:"summary"`
	Message  string        `json:"message,omitempty"`
}

// OnMatchFinalized rescores one finished match and refreshes the affected
// week and season aggregates. Concurrent calls for the same match collapse
// into one run; the duplicate caller gets the shared result.
func (s *RecalculationService) OnMatchFinalized(ctx context.Context, matchID string) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.OnMatchFinalized")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	val, err, shared := s.finalizeFlight.Do("finalize:match:"+matchID, func() (any, error) {
		return s.finalizeMatch(ctx, matchID)
	})
	if shared {
		s.logger.DebugContext(ctx, "match finalize deduplicated", "match_id", matchID)
	}
	if err != nil {
		return FinalizeResult{}, err
	}
	return val.(FinalizeResult), nil
}

func (s *RecalculationService) finalizeMatch(ctx context.Context, matchID string) (FinalizeResult, error) {
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("get match for finalize: %w", err)
	}
	if !exists {
		return FinalizeResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	batch, err := s.scorer.ScoreMatch(ctx, matchID)
	if err != nil {
		return FinalizeResult{}, err
	}

	if err := s.refreshAggregates(ctx, m.SeasonID, m.Week); err != nil {
		return FinalizeResult{}, err
	}

	result := FinalizeResult{
		SeasonID:          m.SeasonID,
		Week:              m.Week,
		PointsDistributed: batch.TotalPoints(),
	}
	s.logger.InfoContext(ctx, "match recalculated",
		"match_id", matchID,
		"season_id", m.SeasonID,
		"week", m.Week,
		"points_distributed", result.PointsDistributed,
	)
	return result, nil
}

// OnQuestionGraded rescores one graded question and refreshes the affected
// week and season aggregates. Works for match-scoped questions graded after
// their match was scored, and for season-scoped timed questions.
func (s *RecalculationService) OnQuestionGraded(ctx context.Context, questionID string) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.OnQuestionGraded")
	defer span.End()

	questionID = strings.TrimSpace(questionID)
	if questionID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: question id is required", ErrInvalidInput)
	}

	val, err, shared := s.finalizeFlight.Do("grade:question:"+questionID, func() (any, error) {
		return s.gradeQuestion(ctx, questionID)
	})
	if shared {
		s.logger.DebugContext(ctx, "question grade deduplicated", "question_id", questionID)
	}
	if err != nil {
		return FinalizeResult{}, err
	}
	return val.(FinalizeResult), nil
}

func (s *RecalculationService) gradeQuestion(ctx context.Context, questionID string) (FinalizeResult, error) {
	batch, q, err := s.scorer.ScoreQuestion(ctx, questionID)
	if err != nil {
		return FinalizeResult{}, err
	}

	seasonID, week, err := s.questionTarget(ctx, q)
	if err != nil {
		return FinalizeResult{}, err
	}

	if err := s.refreshAggregates(ctx, seasonID, week); err != nil {
		return FinalizeResult{}, err
	}

	result := FinalizeResult{
		SeasonID:          seasonID,
		Week:              week,
		PointsDistributed: batch.TotalPoints(),
	}
	s.logger.InfoContext(ctx, "question recalculated",
		"question_id", questionID,
		"season_id", seasonID,
		"week", week,
		"points_distributed", result.PointsDistributed,
	)
	return result, nil
}

// questionTarget resolves which (season, week) a question's points land in.
// Match questions follow their match; timed questions carry their own week.
func (s *RecalculationService) questionTarget(ctx context.Context, q question.Question) (string, int, error) {
	if q.MatchID == nil {
		return q.SeasonID, q.Week, nil
	}

	m, exists, err := s.matchRepo.GetByID(ctx, *q.MatchID)
	if err != nil {
		return "", 0, fmt.Errorf("get match for question=%s: %w", q.ID, err)
	}
	if !exists {
		return "", 0, fmt.Errorf("%w: match=%s for question=%s", ErrNotFound, *q.MatchID, q.ID)
	}
	return m.SeasonID, m.Week, nil
}

func (s *RecalculationService) refreshAggregates(ctx context.Context, seasonID string, week int) error {
	if err := s.aggregator.AggregateWeek(ctx, seasonID, week); err != nil {
		return err
	}
	return s.aggregator.AggregateSeason(ctx, seasonID)
}

// RecalculateSeason rebuilds a whole season from raw rows: every finished
// match and graded question is rescored, every week with activity is
// re-aggregated, then the season aggregate and ranks are replaced. Failures
// on individual matches or questions do not stop the run; they are reported
// in the summary alongside ErrPartialBatchFailure.
func (s *RecalculationService) RecalculateSeason(ctx context.Context, seasonID string) (SeasonSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.RecalculateSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return SeasonSummary{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	_, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return SeasonSummary{}, fmt.Errorf("get season for recalculation: %w", err)
	}
	if !exists {
		return SeasonSummary{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}

	start := time.Now()
	summary := SeasonSummary{SeasonID: seasonID}

	matches, err := s.matchRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return SeasonSummary{}, fmt.Errorf("list matches season=%s: %w", seasonID, err)
	}

	weeks := make(map[int]struct{})
	scoreable := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Week > 0 {
			weeks[m.Week] = struct{}{}
		}
		if m.IsScoreable() {
			scoreable = append(scoreable, m)
		}
	}

	var (
		mu          sync.Mutex
		totalPoints atomic.Int64
		rescored    atomic.Int32
	)

	workers := pool.New().WithMaxGoroutines(s.matchWorkers)
	for _, m := range scoreable {
		m := m
		workers.Go(func() {
			batch, err := s.scorer.ScoreMatch(ctx, m.ID)
			if err != nil {
				s.logger.WarnContext(ctx, "match rescore failed",
					"match_id", m.ID, "season_id", seasonID, "error", err)
				mu.Lock()
				summary.FailedMatches = append(summary.FailedMatches, m.ID)
				mu.Unlock()
				return
			}
			rescored.Add(1)
			totalPoints.Add(int64(batch.TotalPoints()))
		})
	}
	workers.Wait()

	timedQuestions, err := s.questionRepo.ListTimedBySeason(ctx, seasonID)
	if err != nil {
		return SeasonSummary{}, fmt.Errorf("list timed questions season=%s: %w", seasonID, err)
	}
	for _, q := range timedQuestions {
		if q.Week > 0 {
			weeks[q.Week] = struct{}{}
		}
		if !q.IsGraded() {
			continue
		}
		batch, _, err := s.scorer.ScoreQuestion(ctx, q.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "question rescore failed",
				"question_id", q.ID, "season_id", seasonID, "error", err)
			summary.FailedQuestions = append(summary.FailedQuestions, q.ID)
			continue
		}
		summary.QuestionsRescored++
		totalPoints.Add(int64(batch.TotalPoints()))
	}

	weekList := make([]int, 0, len(weeks))
	for week := range weeks {
		weekList = append(weekList, week)
	}
	sort.Ints(weekList)

	for _, week := range weekList {
		if err := s.aggregator.AggregateWeek(ctx, seasonID, week); err != nil {
			return summary, fmt.Errorf("aggregate week season=%s week=%d: %w", seasonID, week, err)
		}
		summary.WeeksAggregated++
	}

	if err := s.aggregator.AggregateSeason(ctx, seasonID); err != nil {
		return summary, fmt.Errorf("aggregate season=%s: %w", seasonID, err)
	}

	sort.Strings(summary.FailedMatches)
	sort.Strings(summary.FailedQuestions)
	summary.MatchesRescored = int(rescored.Load())
	summary.PointsDistributed = int(totalPoints.Load())
	summary.DurationMs = time.Since(start).Milliseconds()

	if len(summary.FailedMatches) > 0 || len(summary.FailedQuestions) > 0 {
		return summary, fmt.Errorf("%w: season=%s failed_matches=%d failed_questions=%d",
			ErrPartialBatchFailure, seasonID, len(summary.FailedMatches), len(summary.FailedQuestions))
	}

	s.logger.InfoContext(ctx, "season recalculated",
		"season_id", seasonID,
		"matches_rescored", summary.MatchesRescored,
		"questions_rescored", summary.QuestionsRescored,
		"weeks_aggregated", summary.WeeksAggregated,
		"points_distributed", summary.PointsDistributed,
	)
	return summary, nil
}

// RecalculateAll rebuilds every season through a bounded worker pool. Each
// season is an independent unit; one season's failure never blocks another,
// and the summary carries per-season status rows.
func (s *RecalculationService) RecalculateAll(ctx context.Context) (RecalculationSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecalculationService.RecalculateAll")
	defer span.End()

	seasons, err := s.seasonRepo.List(ctx)
	if err != nil {
		return RecalculationSummary{}, fmt.Errorf("list seasons for recalculation: %w", err)
	}

	start := time.Now()
	workerCount := s.seasonWorkers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(seasons) && len(seasons) > 0 {
		workerCount = len(seasons)
	}

	result := RecalculationSummary{
		SeasonCount: len(seasons),
		WorkerCount: workerCount,
		Seasons:     make([]SeasonTaskResult, 0, len(seasons)),
	}
	if len(seasons) == 0 {
		return result, nil
	}

	results := make(chan SeasonTaskResult, len(seasons))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalculationSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, item := range seasons {
		item := item
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			row := SeasonTaskResult{SeasonID: item.ID}
			summary, err := s.RecalculateSeason(ctx, item.ID)
			row.Summary = summary
			switch {
			case err == nil:
				row.Status = recalcStatusSuccess
				successCount.Add(1)
			case errors.Is(err, ErrPartialBatchFailure):
				row.Status = recalcStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			case errors.Is(err, ErrNotFound):
				row.Status = recalcStatusSkipped
				row.Message = err.Error()
				skippedCount.Add(1)
			default:
				row.Status = recalcStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			}

			results <- row
		}); err != nil {
			workers.Done()
			return RecalculationSummary{}, fmt.Errorf("submit season to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Seasons = append(result.Seasons, row)
	}
	sort.SliceStable(result.Seasons, func(i, j int) bool {
		return result.Seasons[i].SeasonID < result.Seasons[j].SeasonID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.DurationMs = time.Since(start).Milliseconds()

	if result.FailedCount > 0 {
		return result, fmt.Errorf("%w: %d of %d seasons failed", ErrPartialBatchFailure, result.FailedCount, result.SeasonCount)
	}
	return result, nil
}

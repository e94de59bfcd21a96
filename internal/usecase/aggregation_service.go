package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/domain/prediction"
	"github.com/golestat/prediction-league/internal/domain/question"
	"github.com/golestat/prediction-league/internal/domain/scoring"
	"github.com/golestat/prediction-league/internal/domain/standings"
	"github.com/golestat/prediction-league/internal/domain/user"
	"github.com/golestat/prediction-league/internal/platform/resilience"
)

// AggregationService owns the WeeklyScore and SeasonScore rows. Aggregates
// are always recomputed from source rows and replaced wholesale; nothing in
// this service increments a stored value. Recomputations for the same
// (season, week) or season are serialized with keyed mutexes.
type AggregationService struct {
	matchRepo     match.Repository
	predRepo      prediction.Repository
	questionRepo  question.Repository
	userRepo      user.Repository
	standingsRepo standings.Repository
	rules         scoring.Rules
	locks         *resilience.KeyedMutex
	now           func() time.Time
}

func NewAggregationService(
	matchRepo match.Repository,
	predRepo prediction.Repository,
	questionRepo question.Repository,
	userRepo user.Repository,
	standingsRepo standings.Repository,
	rules scoring.Rules,
) *AggregationService {
	return &AggregationService{
		matchRepo:     matchRepo,
		predRepo:      predRepo,
		questionRepo:  questionRepo,
		userRepo:      userRepo,
		standingsRepo: standingsRepo,
		rules:         rules,
		locks:         resilience.NewKeyedMutex(),
		now:           time.Now,
	}
}

func weekLockKey(seasonID string, week int) string {
	return "week:" + seasonID + ":" + strconv.Itoa(week)
}

func seasonLockKey(seasonID string) string {
	return "season:" + seasonID
}

// userTally accumulates one user's totals while walking a week's rows.
type userTally struct {
	totalPoints           int
	correctScores         int
	correctResults        int
	specialQuestionPoints int
}

// AggregateWeek recomputes every user's WeeklyScore for one (season, week)
// from that week's finished matches and graded questions, then replaces the
// stored row set. Users without a prediction on a finished match or an
// answer to a graded question get no row.
func (s *AggregationService) AggregateWeek(ctx context.Context, seasonID string, week int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.AggregateWeek")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	if week <= 0 {
		return fmt.Errorf("%w: week must be greater than zero", ErrInvalidInput)
	}

	unlock := s.locks.Lock(weekLockKey(seasonID, week))
	defer unlock()

	matches, err := s.matchRepo.ListBySeasonWeek(ctx, seasonID, week)
	if err != nil {
		return fmt.Errorf("list matches season=%s week=%d: %w", seasonID, week, err)
	}
	finished := make([]match.Match, 0, len(matches))
	finishedIDs := make([]string, 0, len(matches))
	matchByID := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		if !m.IsScoreable() {
			continue
		}
		finished = append(finished, m)
		finishedIDs = append(finishedIDs, m.ID)
		matchByID[m.ID] = m
	}

	tallies := make(map[string]*userTally)
	tally := func(userID string) *userTally {
		t, ok := tallies[userID]
		if !ok {
			t = &userTally{}
			tallies[userID] = t
		}
		return t
	}

	if len(finished) > 0 {
		predictions, err := s.predRepo.ListByMatches(ctx, finishedIDs)
		if err != nil {
			return fmt.Errorf("list predictions season=%s week=%d: %w", seasonID, week, err)
		}
		for _, p := range predictions {
			m, ok := matchByID[p.MatchID]
			if !ok {
				continue
			}
			points, award := s.rules.ScorePrediction(p, *m.HomeScore, *m.AwayScore)
			t := tally(p.UserID)
			t.totalPoints += points
			switch award {
			case scoring.AwardExact:
				t.correctScores++
			case scoring.AwardOutcome:
				t.correctResults++
			}
		}
	}

	graded, err := s.gradedQuestionsForWeek(ctx, seasonID, week, finishedIDs)
	if err != nil {
		return err
	}
	if len(graded) > 0 {
		questionIDs := make([]string, 0, len(graded))
		for id := range graded {
			questionIDs = append(questionIDs, id)
		}
		sort.Strings(questionIDs)

		answers, err := s.questionRepo.ListAnswersByQuestions(ctx, questionIDs)
		if err != nil {
			return fmt.Errorf("list answers season=%s week=%d: %w", seasonID, week, err)
		}
		for _, a := range answers {
			q, ok := graded[a.QuestionID]
			if !ok {
				continue
			}
			t := tally(a.UserID)
			points := s.rules.ScoreAnswer(a, q)
			t.totalPoints += points
			t.specialQuestionPoints += points
		}
	}

	rows, err := s.weeklyRows(ctx, seasonID, week, tallies)
	if err != nil {
		return err
	}

	if err := s.standingsRepo.ReplaceWeekScores(ctx, seasonID, week, rows); err != nil {
		return fmt.Errorf("replace week scores season=%s week=%d: %w", seasonID, week, err)
	}
	return nil
}

// gradedQuestionsForWeek collects match-scoped questions of the week's
// finished matches plus season-scoped timed questions attributed to the
// week, keeping only graded ones.
func (s *AggregationService) gradedQuestionsForWeek(
	ctx context.Context,
	seasonID string,
	week int,
	finishedMatchIDs []string,
) (map[string]question.Question, error) {
	graded := make(map[string]question.Question)

	if len(finishedMatchIDs) > 0 {
		matchQuestions, err := s.questionRepo.ListByMatches(ctx, finishedMatchIDs)
		if err != nil {
			return nil, fmt.Errorf("list match questions season=%s week=%d: %w", seasonID, week, err)
		}
		for _, q := range matchQuestions {
			if q.IsGraded() {
				graded[q.ID] = q
			}
		}
	}

	timedQuestions, err := s.questionRepo.ListTimedBySeasonWeek(ctx, seasonID, week)
	if err != nil {
		return nil, fmt.Errorf("list timed questions season=%s week=%d: %w", seasonID, week, err)
	}
	for _, q := range timedQuestions {
		if q.IsGraded() {
			graded[q.ID] = q
		}
	}

	return graded, nil
}

func (s *AggregationService) weeklyRows(
	ctx context.Context,
	seasonID string,
	week int,
	tallies map[string]*userTally,
) ([]standings.WeeklyScore, error) {
	if len(tallies) == 0 {
		return nil, nil
	}

	userIDs := make([]string, 0, len(tallies))
	for userID := range tallies {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	names, err := s.displayNames(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	calculatedAt := s.now().UTC()
	rows := make([]standings.WeeklyScore, 0, len(tallies))
	for _, userID := range userIDs {
		t := tallies[userID]
		rows = append(rows, standings.WeeklyScore{
			SeasonID:              seasonID,
			Week:                  week,
			UserID:                userID,
			DisplayName:           names[userID],
			TotalPoints:           t.totalPoints,
			CorrectScores:         t.correctScores,
			CorrectResults:        t.correctResults,
			SpecialQuestionPoints: t.specialQuestionPoints,
			CalculatedAt:          calculatedAt,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		if rows[i].DisplayName != rows[j].DisplayName {
			return rows[i].DisplayName < rows[j].DisplayName
		}
		return rows[i].UserID < rows[j].UserID
	})
	return rows, nil
}

func (s *AggregationService) displayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	users, err := s.userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list users for aggregation: %w", err)
	}

	names := make(map[string]string, len(userIDs))
	for _, u := range users {
		names[u.ID] = u.DisplayName
	}
	for _, userID := range userIDs {
		if names[userID] == "" {
			names[userID] = userID
		}
	}
	return names, nil
}

// AggregateSeason sums a user's weekly rows into the season aggregate and
// replaces the stored SeasonScore set, ranks included, so the leaderboard
// never shows a window of unranked rows.
func (s *AggregationService) AggregateSeason(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.AggregateSeason")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(seasonLockKey(seasonID))
	defer unlock()

	weekly, err := s.standingsRepo.ListWeeklyScoresBySeason(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("list weekly scores season=%s: %w", seasonID, err)
	}

	calculatedAt := s.now().UTC()
	byUser := make(map[string]*standings.SeasonScore)
	for _, row := range weekly {
		agg, ok := byUser[row.UserID]
		if !ok {
			agg = &standings.SeasonScore{
				SeasonID:     seasonID,
				UserID:       row.UserID,
				DisplayName:  row.DisplayName,
				CalculatedAt: calculatedAt,
			}
			byUser[row.UserID] = agg
		}
		agg.TotalPoints += row.TotalPoints
		agg.CorrectScores += row.CorrectScores
		agg.CorrectResults += row.CorrectResults
		agg.SpecialQuestionPoints += row.SpecialQuestionPoints
	}

	rows := make([]standings.SeasonScore, 0, len(byUser))
	for _, agg := range byUser {
		rows = append(rows, *agg)
	}
	rankSeasonScores(rows)

	if err := s.standingsRepo.ReplaceSeasonScores(ctx, seasonID, rows); err != nil {
		return fmt.Errorf("replace season scores season=%s: %w", seasonID, err)
	}
	return nil
}

// AssignRanks re-derives ranks from the stored SeasonScore rows and writes
// them back as one batch. It is idempotent with AggregateSeason's inline
// ranking and exists for callers that corrected rows out of band.
func (s *AggregationService) AssignRanks(ctx context.Context, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.AssignRanks")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	unlock := s.locks.Lock(seasonLockKey(seasonID))
	defer unlock()

	rows, err := s.standingsRepo.ListSeasonScores(ctx, seasonID)
	if err != nil {
		return fmt.Errorf("list season scores season=%s: %w", seasonID, err)
	}
	if len(rows) == 0 {
		return nil
	}

	rankSeasonScores(rows)

	if err := s.standingsRepo.ReplaceSeasonScores(ctx, seasonID, rows); err != nil {
		return fmt.Errorf("replace ranked season scores season=%s: %w", seasonID, err)
	}
	return nil
}

// rankSeasonScores orders rows by total points descending with a
// deterministic tie-break (display name, then user id, both ascending) and
// assigns sequential ranks starting at one. Equal totals still receive
// distinct ranks; the tie-break decides who comes first.
func rankSeasonScores(rows []standings.SeasonScore) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPoints != rows[j].TotalPoints {
			return rows[i].TotalPoints > rows[j].TotalPoints
		}
		if rows[i].DisplayName != rows[j].DisplayName {
			return rows[i].DisplayName < rows[j].DisplayName
		}
		return rows[i].UserID < rows[j].UserID
	})
	for idx := range rows {
		rows[idx].Rank = idx + 1
	}
}

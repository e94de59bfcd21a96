package usecase

import (
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/domain/prediction"
	"github.com/golestat/prediction-league/internal/domain/question"
	"github.com/golestat/prediction-league/internal/domain/scoring"
	"github.com/golestat/prediction-league/internal/domain/season"
	"github.com/golestat/prediction-league/internal/domain/user"
	"github.com/golestat/prediction-league/internal/infrastructure/repository/memory"
	"github.com/golestat/prediction-league/internal/platform/logging"
)

type testEnv struct {
	matches     *memory.MatchRepository
	predictions *memory.PredictionRepository
	questions   *memory.QuestionRepository
	users       *memory.UserRepository
	seasons     *memory.SeasonRepository
	standings   *memory.StandingsRepository

	scorer     *MatchScoringService
	aggregator *AggregationService
	recalc     *RecalculationService
	admin      *AdminService
	rankings   *RankingsService
}

type testFixtures struct {
	seasons     []season.Season
	matches     []match.Match
	predictions []prediction.Prediction
	questions   []question.Question
	answers     []question.Answer
	users       []user.User
}

func newTestEnv(fx testFixtures) *testEnv {
	env := &testEnv{
		matches:     memory.NewMatchRepository(fx.matches),
		predictions: memory.NewPredictionRepository(fx.predictions),
		questions:   memory.NewQuestionRepository(fx.questions, fx.answers),
		users:       memory.NewUserRepository(fx.users),
		seasons:     memory.NewSeasonRepository(fx.seasons),
		standings:   memory.NewStandingsRepository(),
	}

	scoringRepo := memory.NewScoringRepository(env.predictions, env.questions)
	rules := scoring.DefaultRules()
	logger := logging.NewNop()

	env.scorer = NewMatchScoringService(env.matches, env.predictions, env.questions, scoringRepo, rules)
	env.aggregator = NewAggregationService(env.matches, env.predictions, env.questions, env.users, env.standings, rules)
	env.recalc = NewRecalculationService(env.seasons, env.matches, env.questions, env.scorer, env.aggregator, logger)
	env.admin = NewAdminService(env.matches, env.questions, env.recalc, logger)
	env.rankings = NewRankingsService(env.seasons, env.standings)
	return env
}

func testIntPtr(v int) *int { return &v }

func testStrPtr(v string) *string { return &v }

// twoWeekFixtures is the standard scenario most service tests start from.
//
// Week 1: m1 finished 2-1. alice predicted 2-1 (exact), bob 1-0 (outcome
// only), cara 1-1 (wrong). Question q1 on m1 worth 2, graded YES; alice
// answered YES, cara NO.
// Week 2: m2 finished 0-0. bob predicted 0-0 (exact), cara 2-2 (outcome
// only). Timed question q2 in week 2 worth 3, ungraded; alice answered
// "Icardi".
func twoWeekFixtures() testFixtures {
	finished1 := time.Date(2025, 8, 10, 21, 0, 0, 0, time.UTC)
	finished2 := time.Date(2025, 8, 17, 21, 0, 0, 0, time.UTC)
	deadline := time.Date(2025, 8, 17, 18, 0, 0, 0, time.UTC)

	return testFixtures{
		seasons: []season.Season{
			{ID: "s1", Name: "Season One", CurrentWeek: 2, IsActive: true},
		},
		users: []user.User{
			{ID: "u1", DisplayName: "alice"},
			{ID: "u2", DisplayName: "bob"},
			{ID: "u3", DisplayName: "cara"},
		},
		matches: []match.Match{
			{
				ID: "m1", SeasonID: "s1", Week: 1,
				HomeTeam: "Home A", AwayTeam: "Away A",
				HomeScore: testIntPtr(2), AwayScore: testIntPtr(1),
				Status:     match.StatusFinished,
				KickoffAt:  finished1.Add(-2 * time.Hour),
				FinishedAt: &finished1,
			},
			{
				ID: "m2", SeasonID: "s1", Week: 2,
				HomeTeam: "Home B", AwayTeam: "Away B",
				HomeScore: testIntPtr(0), AwayScore: testIntPtr(0),
				Status:     match.StatusFinished,
				KickoffAt:  finished2.Add(-2 * time.Hour),
				FinishedAt: &finished2,
			},
		},
		predictions: []prediction.Prediction{
			{ID: "p1", MatchID: "m1", UserID: "u1", HomeScore: 2, AwayScore: 1},
			{ID: "p2", MatchID: "m1", UserID: "u2", HomeScore: 1, AwayScore: 0},
			{ID: "p3", MatchID: "m1", UserID: "u3", HomeScore: 1, AwayScore: 1},
			{ID: "p4", MatchID: "m2", UserID: "u2", HomeScore: 0, AwayScore: 0},
			{ID: "p5", MatchID: "m2", UserID: "u3", HomeScore: 2, AwayScore: 2},
		},
		questions: []question.Question{
			{
				ID: "q1", SeasonID: "s1", MatchID: testStrPtr("m1"), Week: 1,
				Type: question.TypeYesNo, Text: "Will both teams score?",
				Points: 2, CorrectAnswer: testStrPtr(question.AnswerYes),
			},
			{
				ID: "q2", SeasonID: "s1", Week: 2,
				Type: question.TypeMultipleChoice, Text: "First scorer of the week?",
				Options: []string{"Icardi", "Dzeko"},
				Points:  3, Deadline: &deadline,
			},
		},
		answers: []question.Answer{
			{ID: "a1", QuestionID: "q1", UserID: "u1", Answer: question.AnswerYes},
			{ID: "a2", QuestionID: "q1", UserID: "u3", Answer: question.AnswerNo},
			{ID: "a3", QuestionID: "q2", UserID: "u1", Answer: "Icardi"},
		},
	}
}

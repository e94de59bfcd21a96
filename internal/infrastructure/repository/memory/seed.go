package memory

import (
	"time"

	"github.com/golestat/prediction-league/internal/domain/match"
	"github.com/golestat/prediction-league/internal/domain/prediction"
	"github.com/golestat/prediction-league/internal/domain/question"
	"github.com/golestat/prediction-league/internal/domain/season"
	"github.com/golestat/prediction-league/internal/domain/user"
)

const (
	SeasonIDSuperLig = "tr-super-lig-2025"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func SeedSeasons() []season.Season {
	return []season.Season{
		{
			ID:          SeasonIDSuperLig,
			Name:        "Süper Lig 2025/2026",
			CurrentWeek: 2,
			IsActive:    true,
		},
	}
}

func SeedUsers() []user.User {
	return []user.User{
		{ID: "usr-ayse", DisplayName: "Ayşe"},
		{ID: "usr-burak", DisplayName: "Burak"},
		{ID: "usr-cem", DisplayName: "Cem"},
		{ID: "usr-derya", DisplayName: "Derya"},
	}
}

func SeedMatches() []match.Match {
	finished := time.Date(2025, 8, 10, 21, 0, 0, 0, time.UTC)
	return []match.Match{
		{
			ID:         "mt-001",
			SeasonID:   SeasonIDSuperLig,
			Week:       1,
			HomeTeam:   "Galatasaray",
			AwayTeam:   "Fenerbahçe",
			HomeScore:  intPtr(2),
			AwayScore:  intPtr(1),
			Status:     match.StatusFinished,
			KickoffAt:  time.Date(2025, 8, 10, 19, 0, 0, 0, time.UTC),
			FinishedAt: &finished,
		},
		{
			ID:        "mt-002",
			SeasonID:  SeasonIDSuperLig,
			Week:      1,
			HomeTeam:  "Beşiktaş",
			AwayTeam:  "Trabzonspor",
			HomeScore: intPtr(0),
			AwayScore: intPtr(0),
			Status:    match.StatusFinished,
			KickoffAt: time.Date(2025, 8, 11, 19, 0, 0, 0, time.UTC),
			FinishedAt: func() *time.Time {
				t := time.Date(2025, 8, 11, 21, 0, 0, 0, time.UTC)
				return &t
			}(),
		},
		{
			ID:        "mt-003",
			SeasonID:  SeasonIDSuperLig,
			Week:      2,
			HomeTeam:  "Fenerbahçe",
			AwayTeam:  "Beşiktaş",
			Status:    match.StatusScheduled,
			KickoffAt: time.Date(2025, 8, 17, 19, 0, 0, 0, time.UTC),
		},
	}
}

func SeedPredictions() []prediction.Prediction {
	createdAt := time.Date(2025, 8, 9, 12, 0, 0, 0, time.UTC)
	return []prediction.Prediction{
		{ID: "pr-001", MatchID: "mt-001", UserID: "usr-ayse", HomeScore: 2, AwayScore: 1, CreatedAt: createdAt},
		{ID: "pr-002", MatchID: "mt-001", UserID: "usr-burak", HomeScore: 1, AwayScore: 0, CreatedAt: createdAt},
		{ID: "pr-003", MatchID: "mt-001", UserID: "usr-cem", HomeScore: 0, AwayScore: 2, CreatedAt: createdAt},
		{ID: "pr-004", MatchID: "mt-002", UserID: "usr-ayse", HomeScore: 1, AwayScore: 1, CreatedAt: createdAt},
		{ID: "pr-005", MatchID: "mt-002", UserID: "usr-derya", HomeScore: 0, AwayScore: 0, CreatedAt: createdAt},
	}
}

func SeedQuestions() []question.Question {
	deadline := time.Date(2025, 8, 10, 18, 0, 0, 0, time.UTC)
	return []question.Question{
		{
			ID:            "qu-001",
			SeasonID:      SeasonIDSuperLig,
			MatchID:       strPtr("mt-001"),
			Week:          1,
			Type:          question.TypeYesNo,
			Text:          "Will both teams score?",
			Points:        2,
			CorrectAnswer: strPtr(question.AnswerYes),
		},
		{
			ID:       "qu-002",
			SeasonID: SeasonIDSuperLig,
			Week:     1,
			Type:     question.TypeMultipleChoice,
			Text:     "Who scores first this week?",
			Options:  []string{"Icardi", "Dzeko", "Immobile"},
			Points:   3,
			Deadline: &deadline,
		},
	}
}

func SeedAnswers() []question.Answer {
	return []question.Answer{
		{ID: "an-001", QuestionID: "qu-001", UserID: "usr-ayse", Answer: question.AnswerYes},
		{ID: "an-002", QuestionID: "qu-001", UserID: "usr-burak", Answer: question.AnswerNo},
		{ID: "an-003", QuestionID: "qu-002", UserID: "usr-cem", Answer: "Icardi"},
	}
}

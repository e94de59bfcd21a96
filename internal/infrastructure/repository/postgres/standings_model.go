package postgres

import (
	"time"

	"github.com/golestat/prediction-league/internal/domain/standings"
)

type weeklyScoreTableModel struct {
	ID                    int64      `db:"id"`
	SeasonID              string     `db:"season_public_id"`
	Week                  int        `db:"week"`
	UserID                string     `db:"user_id"`
	DisplayName           string     `db:"display_name"`
	TotalPoints           int        `db:"total_points"`
	CorrectScores         int        `db:"correct_scores"`
	CorrectResults        int        `db:"correct_results"`
	SpecialQuestionPoints int        `db:"special_question_points"`
	CalculatedAt          int64      `db:"calculated_at"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
	DeletedAt             *time.Time `db:"deleted_at"`
}

func (row weeklyScoreTableModel) toDomain() standings.WeeklyScore {
	return standings.WeeklyScore{
		SeasonID:              row.SeasonID,
		Week:                  row.Week,
		UserID:                row.UserID,
		DisplayName:           row.DisplayName,
		TotalPoints:           row.TotalPoints,
		CorrectScores:         row.CorrectScores,
		CorrectResults:        row.CorrectResults,
		SpecialQuestionPoints: row.SpecialQuestionPoints,
		CalculatedAt:          unixToTime(row.CalculatedAt),
	}
}

type weeklyScoreInsertModel struct {
	SeasonID              string `db:"season_public_id"`
	Week                  int    `db:"week"`
	UserID                string `db:"user_id"`
	DisplayName           string `db:"display_name"`
	TotalPoints           int    `db:"total_points"`
	CorrectScores         int    `db:"correct_scores"`
	CorrectResults        int    `db:"correct_results"`
	SpecialQuestionPoints int    `db:"special_question_points"`
	CalculatedAt          int64  `db:"calculated_at"`
}

type seasonScoreTableModel struct {
	ID                    int64      `db:"id"`
	SeasonID              string     `db:"season_public_id"`
	UserID                string     `db:"user_id"`
	DisplayName           string     `db:"display_name"`
	TotalPoints           int        `db:"total_points"`
	CorrectScores         int        `db:"correct_scores"`
	CorrectResults        int        `db:"correct_results"`
	SpecialQuestionPoints int        `db:"special_question_points"`
	Rank                  int        `db:"rank"`
	CalculatedAt          int64      `db:"calculated_at"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
	DeletedAt             *time.Time `db:"deleted_at"`
}

func (row seasonScoreTableModel) toDomain() standings.SeasonScore {
	return standings.SeasonScore{
		SeasonID:              row.SeasonID,
		UserID:                row.UserID,
		DisplayName:           row.DisplayName,
		TotalPoints:           row.TotalPoints,
		CorrectScores:         row.CorrectScores,
		CorrectResults:        row.CorrectResults,
		SpecialQuestionPoints: row.SpecialQuestionPoints,
		Rank:                  row.Rank,
		CalculatedAt:          unixToTime(row.CalculatedAt),
	}
}

type seasonScoreInsertModel struct {
	SeasonID              string `db:"season_public_id"`
	UserID                string `db:"user_id"`
	DisplayName           string `db:"display_name"`
	TotalPoints           int    `db:"total_points"`
	CorrectScores         int    `db:"correct_scores"`
	CorrectResults        int    `db:"correct_results"`
	SpecialQuestionPoints int    `db:"special_question_points"`
	Rank                  int    `db:"rank"`
	CalculatedAt          int64  `db:"calculated_at"`
}

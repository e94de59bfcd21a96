package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/golestat/prediction-league/internal/domain/question"
)

type questionTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	SeasonID      string         `db:"season_public_id"`
	MatchID       sql.NullString `db:"match_public_id"`
	Week          int            `db:"week"`
	QuestionType  string         `db:"question_type"`
	Text          string         `db:"question_text"`
	Options       pq.StringArray `db:"options"`
	Points        int            `db:"points"`
	CorrectAnswer sql.NullString `db:"correct_answer"`
	Deadline      sql.NullInt64  `db:"deadline"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

func (row questionTableModel) toDomain() question.Question {
	return question.Question{
		ID:            row.PublicID,
		SeasonID:      row.SeasonID,
		MatchID:       nullStringToStringPtr(row.MatchID),
		Week:          row.Week,
		Type:          row.QuestionType,
		Text:          row.Text,
		Options:       []string(row.Options),
		Points:        row.Points,
		CorrectAnswer: nullStringToStringPtr(row.CorrectAnswer),
		Deadline:      nullUnixToTimePtr(row.Deadline),
	}
}

type answerTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	QuestionID string     `db:"question_public_id"`
	UserID     string     `db:"user_id"`
	Answer     string     `db:"answer"`
	Points     int        `db:"points"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

func (row answerTableModel) toDomain() question.Answer {
	return question.Answer{
		ID:         row.PublicID,
		QuestionID: row.QuestionID,
		UserID:     row.UserID,
		Answer:     row.Answer,
		Points:     row.Points,
	}
}

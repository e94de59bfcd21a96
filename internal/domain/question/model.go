package question

import "time"

const (
	TypeMultipleChoice = "MULTIPLE_CHOICE"
	TypeYesNo          = "YES_NO"
	TypeText           = "TEXT"
)

// Canonical values for yes/no questions.
const (
	AnswerYes = "YES"
	AnswerNo  = "NO"
)

// Question is a special question worth a fixed number of points. A question
// either belongs to a match (result-contingent) or is a season-scoped timed
// question with a deadline. Week records which season week the question
// counts toward; for match questions it mirrors the match week, for timed
// questions it is derived from the deadline when the question is created.
type Question struct {
	ID            string
	SeasonID      string
	MatchID       *string
	Week          int
	Type          string
	Text          string
	Options       []string
	Points        int
	CorrectAnswer *string
	Deadline      *time.Time
}

// IsGraded reports whether an admin has set the correct answer yet.
func (q Question) IsGraded() bool {
	return q.CorrectAnswer != nil
}

// IsTimed reports whether the question is season-scoped rather than bound to
// a single match.
func (q Question) IsTimed() bool {
	return q.MatchID == nil
}

// Answer is one user's answer to one question. Uniqueness on
// (user, question) is enforced by storage. Points stays zero until the
// question is graded and only the scoring engine writes it.
type Answer struct {
	ID         string
	QuestionID string
	UserID     string
	Answer     string
	Points     int
}

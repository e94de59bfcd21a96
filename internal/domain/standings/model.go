package standings

import "time"

// WeeklyScore is one user's aggregate for one (season, week). Rows are fully
// owned by the aggregation engine: they are replaced on every recomputation
// and never patched incrementally. A user with no predictions or answers in
// a week has no row at all.
type WeeklyScore struct {
	SeasonID              string
	Week                  int
	UserID                string
	DisplayName           string
	TotalPoints           int
	CorrectScores         int
	CorrectResults        int
	SpecialQuestionPoints int
	CalculatedAt          time.Time
}

// SeasonScore is one user's aggregate across all weeks of a season, plus the
// dense competition rank. Derived entirely from WeeklyScore rows so the
// conservation invariant (season total == sum of weekly totals) holds by
// construction.
type SeasonScore struct {
	SeasonID              string
	UserID                string
	DisplayName           string
	Rank                  int
	TotalPoints           int
	CorrectScores         int
	CorrectResults        int
	SpecialQuestionPoints int
	CalculatedAt          time.Time
}

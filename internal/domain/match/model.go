package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Match represents one scheduled fixture inside a season week.
type Match struct {
	ID         string
	SeasonID   string
	Week       int
	HomeTeam   string
	AwayTeam   string
	HomeScore  *int
	AwayScore  *int
	Status     string
	KickoffAt  time.Time
	FinishedAt *time.Time
}

// IsScoreable reports whether the match result is final and complete.
// A finished match without both scores is treated as not scoreable.
func (m Match) IsScoreable() bool {
	return IsFinishedStatus(m.Status) && m.HomeScore != nil && m.AwayScore != nil
}

// Outcome is the result class of a score pair.
type Outcome string

const (
	OutcomeHome Outcome = "HOME"
	OutcomeAway Outcome = "AWAY"
	OutcomeDraw Outcome = "DRAW"
)

// OutcomeOf derives the outcome from a pair of scores.
func OutcomeOf(homeScore, awayScore int) Outcome {
	switch {
	case homeScore > awayScore:
		return OutcomeHome
	case homeScore < awayScore:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, "IN_PLAY", "HT", "1H", "2H", "ET":
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, "ABANDONED":
		return true
	default:
		return false
	}
}

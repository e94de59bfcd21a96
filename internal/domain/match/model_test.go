package match

import "testing"

func TestOutcomeOf(t *testing.T) {
	if got := OutcomeOf(2, 1); got != OutcomeHome {
		t.Fatalf("unexpected outcome: got=%s want=%s", got, OutcomeHome)
	}
	if got := OutcomeOf(0, 3); got != OutcomeAway {
		t.Fatalf("unexpected outcome: got=%s want=%s", got, OutcomeAway)
	}
	if got := OutcomeOf(1, 1); got != OutcomeDraw {
		t.Fatalf("unexpected outcome: got=%s want=%s", got, OutcomeDraw)
	}
}

func TestIsScoreable(t *testing.T) {
	home, away := 2, 1

	m := Match{Status: StatusFinished, HomeScore: &home, AwayScore: &away}
	if !m.IsScoreable() {
		t.Fatalf("finished match with both scores must be scoreable")
	}

	m = Match{Status: StatusFinished, HomeScore: &home}
	if m.IsScoreable() {
		t.Fatalf("finished match with a missing score must not be scoreable")
	}

	m = Match{Status: StatusLive, HomeScore: &home, AwayScore: &away}
	if m.IsScoreable() {
		t.Fatalf("live match must not be scoreable")
	}
}

func TestNormalizeStatus(t *testing.T) {
	if got := NormalizeStatus("  ft "); got != "FT" {
		t.Fatalf("unexpected normalized status: got=%s want=FT", got)
	}
	if got := NormalizeStatus(""); got != StatusScheduled {
		t.Fatalf("empty status must normalize to scheduled: got=%s", got)
	}
	if !IsFinishedStatus("ft") {
		t.Fatalf("FT must count as finished")
	}
	if IsFinishedStatus(StatusLive) {
		t.Fatalf("LIVE must not count as finished")
	}
}

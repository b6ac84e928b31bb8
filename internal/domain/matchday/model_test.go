package matchday

import (
	"testing"
	"time"
)

func scoredMatch() Match {
	home, away := 2, 1
	return Match{
		ID:         "match-1",
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		Status:     StatusCompleted,
		HomeScore:  &home,
		AwayScore:  &away,
	}
}

func TestMatch_Validate(t *testing.T) {
	if err := scoredMatch().Validate(); err != nil {
		t.Fatalf("expected valid match, got %v", err)
	}

	selfPlay := scoredMatch()
	selfPlay.AwayTeamID = selfPlay.HomeTeamID
	if err := selfPlay.Validate(); err == nil {
		t.Fatalf("expected error for a team playing itself")
	}

	halfScore := scoredMatch()
	halfScore.AwayScore = nil
	if err := halfScore.Validate(); err == nil {
		t.Fatalf("expected error for one-sided score")
	}

	badStatus := scoredMatch()
	badStatus.Status = "postponed"
	if err := badStatus.Validate(); err == nil {
		t.Fatalf("expected error for unknown status")
	}

	noScores := scoredMatch()
	noScores.Status = StatusScheduled
	noScores.HomeScore = nil
	noScores.AwayScore = nil
	if err := noScores.Validate(); err != nil {
		t.Fatalf("a scheduled match without scores is valid, got %v", err)
	}
}

func TestMatch_SetPresence(t *testing.T) {
	m := Match{ID: "match-1", HomeTeamID: "team-a", AwayTeamID: "team-b", Status: StatusScheduled}

	if err := m.SetPresence(SideHome, "p1", true); err != nil {
		t.Fatalf("mark present: %v", err)
	}
	if err := m.SetPresence(SideHome, "p1", true); err != nil {
		t.Fatalf("repeat mark: %v", err)
	}
	if m.HomeTeamPresent != 1 || len(m.HomeTeamPresentPlayers) != 1 {
		t.Fatalf("expected deduplicated presence set of 1, got count=%d set=%d",
			m.HomeTeamPresent, len(m.HomeTeamPresentPlayers))
	}

	if err := m.SetPresence(SideAway, "p9", true); err != nil {
		t.Fatalf("mark away present: %v", err)
	}
	if m.AwayTeamPresent != 1 {
		t.Fatalf("expected away count 1, got %d", m.AwayTeamPresent)
	}

	if err := m.SetPresence(SideHome, "p1", false); err != nil {
		t.Fatalf("mark absent: %v", err)
	}
	if m.HomeTeamPresent != 0 || len(m.HomeTeamPresentPlayers) != 0 {
		t.Fatalf("expected empty home set after unmark")
	}

	// Unmarking an absent player is a no-op.
	if err := m.SetPresence(SideHome, "p1", false); err != nil {
		t.Fatalf("repeat unmark: %v", err)
	}

	if err := m.SetPresence("bench", "p1", true); err == nil {
		t.Fatalf("expected error for unknown side")
	}
	if err := m.SetPresence(SideHome, " ", true); err == nil {
		t.Fatalf("expected error for blank player id")
	}
}

func TestMatch_ReferencesTeam(t *testing.T) {
	m := Match{ID: "m", HomeTeamID: "team-a", AwayTeamID: "team-b"}
	if !m.ReferencesTeam("team-a") || !m.ReferencesTeam("team-b") {
		t.Fatalf("expected both sides to be referenced")
	}
	if m.ReferencesTeam("team-c") {
		t.Fatalf("unexpected reference to a third team")
	}
}

func TestUpcomingAndPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	days := []MatchDay{
		{ID: "past-old", Date: now.AddDate(0, 0, -14)},
		{ID: "future-far", Date: now.AddDate(0, 0, 21)},
		{ID: "past-recent", Date: now.AddDate(0, 0, -3)},
		{ID: "future-near", Date: now.AddDate(0, 0, 4)},
		{ID: "today", Date: now},
	}

	upcoming := Upcoming(days, now)
	if len(upcoming) != 3 {
		t.Fatalf("expected 3 upcoming days, got %d", len(upcoming))
	}
	if upcoming[0].ID != "today" || upcoming[1].ID != "future-near" || upcoming[2].ID != "future-far" {
		t.Fatalf("upcoming not sorted soonest first: %s %s %s", upcoming[0].ID, upcoming[1].ID, upcoming[2].ID)
	}

	past := Past(days, now)
	if len(past) != 2 {
		t.Fatalf("expected 2 past days, got %d", len(past))
	}
	if past[0].ID != "past-recent" || past[1].ID != "past-old" {
		t.Fatalf("past not sorted most recent first: %s %s", past[0].ID, past[1].ID)
	}
}

func TestSortByDate(t *testing.T) {
	days := []MatchDay{
		{ID: "c", Date: time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)},
		{ID: "a", Date: time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Date: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
	}

	SortByDate(days)

	if days[0].ID != "a" || days[1].ID != "b" || days[2].ID != "c" {
		t.Fatalf("expected a,b,c order, got %s,%s,%s", days[0].ID, days[1].ID, days[2].ID)
	}
}

func TestMatchDay_SameRevision(t *testing.T) {
	modified := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	base := MatchDay{ID: "day-1", LastModified: modified, Matches: []Match{{ID: "m1"}}}

	same := base
	same.Notes = "different notes, same markers"
	if !base.SameRevision(same) {
		t.Fatalf("expected same revision")
	}

	grown := base
	grown.Matches = append(append([]Match(nil), base.Matches...), Match{ID: "m2"})
	if base.SameRevision(grown) {
		t.Fatalf("expected different revision after match count change")
	}
}

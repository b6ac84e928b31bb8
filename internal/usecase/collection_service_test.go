package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/pitchside/leaguedesk/internal/domain/matchday"
	"github.com/pitchside/leaguedesk/internal/domain/team"
	"github.com/pitchside/leaguedesk/internal/infrastructure/repository/memory"
	"github.com/pitchside/leaguedesk/internal/platform/cache"
	"github.com/pitchside/leaguedesk/internal/platform/logging"
)

func newTestCollectionService() *CollectionService {
	return NewCollectionService(memory.NewDocumentStore(), cache.NewStore(time.Minute), logging.NewNop())
}

func TestCollectionService_EmptyStoreServesEmptyArrays(t *testing.T) {
	service := newTestCollectionService()

	teams, err := service.Teams(t.Context())
	if err != nil {
		t.Fatalf("read teams: %v", err)
	}
	if teams == nil || len(teams) != 0 {
		t.Fatalf("expected empty non-nil team list, got %#v", teams)
	}

	days, err := service.MatchDays(t.Context())
	if err != nil {
		t.Fatalf("read matchdays: %v", err)
	}
	if days == nil || len(days) != 0 {
		t.Fatalf("expected empty non-nil matchday list, got %#v", days)
	}
}

func TestCollectionService_ReplaceTeamsRoundTrip(t *testing.T) {
	service := newTestCollectionService()

	count, err := service.ReplaceTeams(t.Context(), fixtureTeams())
	if err != nil {
		t.Fatalf("replace teams: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}

	teams, err := service.Teams(t.Context())
	if err != nil {
		t.Fatalf("read teams back: %v", err)
	}
	if len(teams) != 3 {
		t.Fatalf("expected 3 teams back, got %d", len(teams))
	}
	if teams[0].ID != "team-red" || len(teams[0].Players) != 2 {
		t.Fatalf("team payload did not survive the round trip: %#v", teams[0])
	}
	if teams[0].Players[1].JerseyNumber != 10 {
		t.Fatalf("player fields lost in round trip")
	}
}

func TestCollectionService_TeamByID(t *testing.T) {
	service := newTestCollectionService()
	if _, err := service.ReplaceTeams(t.Context(), fixtureTeams()); err != nil {
		t.Fatalf("seed teams: %v", err)
	}

	got, err := service.TeamByID(t.Context(), "team-blue")
	if err != nil {
		t.Fatalf("team by id: %v", err)
	}
	if got.Name != "Blue Comets" {
		t.Fatalf("unexpected team: %#v", got)
	}

	if _, err := service.TeamByID(t.Context(), "team-nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := service.TeamByID(t.Context(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank id, got %v", err)
	}
}

func TestCollectionService_ReplaceMatchDaysSortsByDate(t *testing.T) {
	service := newTestCollectionService()

	days := fixtureMatchDays()
	// Store them newest first; the read must come back oldest first.
	days[0], days[1] = days[1], days[0]

	if _, err := service.ReplaceMatchDays(t.Context(), days); err != nil {
		t.Fatalf("replace matchdays: %v", err)
	}

	got, err := service.MatchDays(t.Context())
	if err != nil {
		t.Fatalf("read matchdays: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 match days, got %d", len(got))
	}
	if got[0].ID != "day-1" || got[1].ID != "day-2" {
		t.Fatalf("expected date-ascending order, got %s then %s", got[0].ID, got[1].ID)
	}
}

func TestCollectionService_LastWriterWins(t *testing.T) {
	service := newTestCollectionService()

	first := fixtureTeams()
	if _, err := service.ReplaceTeams(t.Context(), first); err != nil {
		t.Fatalf("first write: %v", err)
	}

	second := []team.Team{{
		ID:           "team-solo",
		Name:         "Solo FC",
		LastModified: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}}
	if _, err := service.ReplaceTeams(t.Context(), second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	// Whole-document replacement: nothing of the first write survives.
	teams, err := service.Teams(t.Context())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(teams) != 1 || teams[0].ID != "team-solo" {
		t.Fatalf("expected the second write to fully replace the first, got %#v", teams)
	}
}

func TestCollectionService_Combined(t *testing.T) {
	service := newTestCollectionService()
	if _, err := service.ReplaceTeams(t.Context(), fixtureTeams()); err != nil {
		t.Fatalf("seed teams: %v", err)
	}
	if _, err := service.ReplaceMatchDays(t.Context(), fixtureMatchDays()); err != nil {
		t.Fatalf("seed matchdays: %v", err)
	}

	combined, err := service.Combined(t.Context())
	if err != nil {
		t.Fatalf("combined read: %v", err)
	}
	if len(combined.Teams) != 3 || len(combined.MatchDays) != 2 {
		t.Fatalf("unexpected combined sizes, teams=%d days=%d", len(combined.Teams), len(combined.MatchDays))
	}
}

func TestCollectionService_ReplaceCombined(t *testing.T) {
	service := newTestCollectionService()

	teamsCount, daysCount, err := service.ReplaceCombined(t.Context(), fixtureTeams(), fixtureMatchDays())
	if err != nil {
		t.Fatalf("replace combined: %v", err)
	}
	if teamsCount != 3 || daysCount != 2 {
		t.Fatalf("unexpected counts, teams=%d days=%d", teamsCount, daysCount)
	}

	// Nil slices are stored as empty documents, not rejected.
	teamsCount, daysCount, err = service.ReplaceCombined(t.Context(), nil, nil)
	if err != nil {
		t.Fatalf("replace combined with empties: %v", err)
	}
	if teamsCount != 0 || daysCount != 0 {
		t.Fatalf("expected zero counts, got teams=%d days=%d", teamsCount, daysCount)
	}
}

func TestCollectionService_StatsComputedAndInvalidated(t *testing.T) {
	service := newTestCollectionService()
	if _, _, err := service.ReplaceCombined(t.Context(), fixtureTeams(), fixtureMatchDays()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	stats, err := service.Stats(t.Context())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalTeams != 3 || stats.TotalPlayers != 3 {
		t.Fatalf("unexpected team stats: %+v", stats)
	}
	if stats.TotalMatchDays != 2 || stats.TotalMatches != 3 {
		t.Fatalf("unexpected matchday stats: %+v", stats)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !stats.LastUpdated.Equal(want) {
		t.Fatalf("expected lastUpdated %v, got %v", want, stats.LastUpdated)
	}

	// A write invalidates the cached stats.
	if _, err := service.ReplaceTeams(t.Context(), nil); err != nil {
		t.Fatalf("clear teams: %v", err)
	}
	stats, err = service.Stats(t.Context())
	if err != nil {
		t.Fatalf("stats after write: %v", err)
	}
	if stats.TotalTeams != 0 || stats.TotalPlayers != 0 {
		t.Fatalf("expected stats recomputed after write, got %+v", stats)
	}
}

func TestCollectionService_StatsWithoutCache(t *testing.T) {
	service := NewCollectionService(memory.NewDocumentStore(), nil, logging.NewNop())
	if _, err := service.ReplaceTeams(t.Context(), fixtureTeams()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	stats, err := service.Stats(t.Context())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalTeams != 3 {
		t.Fatalf("expected stats without cache, got %+v", stats)
	}
}

func TestCollectionService_Backup(t *testing.T) {
	service := newTestCollectionService()
	if _, _, err := service.ReplaceCombined(t.Context(), fixtureTeams(), fixtureMatchDays()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	exportedAt := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return exportedAt }

	backup, err := service.Backup(t.Context())
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if backup.Version != "1.0" {
		t.Fatalf("unexpected backup version %q", backup.Version)
	}
	if !backup.ExportDate.Equal(exportedAt) {
		t.Fatalf("expected export date %v, got %v", exportedAt, backup.ExportDate)
	}
	if len(backup.Teams) != 3 || len(backup.MatchDays) != 2 {
		t.Fatalf("backup payload incomplete, teams=%d days=%d", len(backup.Teams), len(backup.MatchDays))
	}

	var day matchday.MatchDay
	for _, d := range backup.MatchDays {
		if d.ID == "day-1" {
			day = d
		}
	}
	if len(day.Matches) != 2 {
		t.Fatalf("expected day-1 matches in backup, got %d", len(day.Matches))
	}
}

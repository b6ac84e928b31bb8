package team

import (
	"fmt"
	"strings"
	"time"
)

// Player belongs to exactly one team; it has no lifecycle of its own.
// IsPresent is the legacy whole-team attendance flag. Per-match attendance
// lives on the match itself, but the flag is still stored and toggleable.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	JerseyNumber int    `json:"jerseyNumber"`
	IsPresent    bool   `json:"isPresent"`
	Photo        []byte `json:"photo,omitempty"`
}

// Team owns its players. LeagueID is a weak reference and may be empty or
// dangling. LastModified is bumped on any mutation of the team or a player.
type Team struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	LeagueID     string    `json:"leagueId,omitempty"`
	Players      []Player  `json:"players"`
	LastModified time.Time `json:"lastModified"`
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	seen := make(map[int]string, len(t.Players))
	for _, p := range t.Players {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("player id is required on team %s", t.ID)
		}
		if other, ok := seen[p.JerseyNumber]; ok {
			return fmt.Errorf("jersey number %d worn by both %s and %s on team %s", p.JerseyNumber, other, p.ID, t.ID)
		}
		seen[p.JerseyNumber] = p.ID
	}

	return nil
}

// TotalCount returns the roster size.
func (t Team) TotalCount() int {
	return len(t.Players)
}

// PresentCount counts players with the legacy team-level flag set.
func (t Team) PresentCount() int {
	count := 0
	for _, p := range t.Players {
		if p.IsPresent {
			count++
		}
	}

	return count
}

// SameRevision reports whether a cached copy of the team can be kept instead
// of replacing it with a freshly fetched one. Two values match iff id, last
// modified time and roster size agree; anything else means replace in full.
func (t Team) SameRevision(other Team) bool {
	return t.ID == other.ID &&
		t.LastModified.Equal(other.LastModified) &&
		len(t.Players) == len(other.Players)
}

// InLeague returns the teams whose league reference equals leagueID.
func InLeague(teams []Team, leagueID string) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if t.LeagueID == leagueID {
			out = append(out, t)
		}
	}

	return out
}

// WithoutLeague returns the teams carrying no league reference at all.
func WithoutLeague(teams []Team) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		if strings.TrimSpace(t.LeagueID) == "" {
			out = append(out, t)
		}
	}

	return out
}

// IDSet collects the ids of all teams for reference checks.
func IDSet(teams []Team) map[string]struct{} {
	ids := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		ids[t.ID] = struct{}{}
	}

	return ids
}

package matchday

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Status is the lifecycle state of a single game.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Known() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Side selects one of the two rosters of a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Match is a scheduled game between two teams. HomeTeamID and AwayTeamID are
// weak references, but they are the one pair of references whose integrity is
// actively enforced: a match pointing at a missing team is invalid and gets
// removed, never repaired.
type Match struct {
	ID                     string    `json:"id"`
	HomeTeamID             string    `json:"homeTeamId"`
	AwayTeamID             string    `json:"awayTeamId"`
	ScheduledTime          time.Time `json:"scheduledTime"`
	Field                  string    `json:"field"`
	Status                 Status    `json:"status"`
	HomeScore              *int      `json:"homeScore,omitempty"`
	AwayScore              *int      `json:"awayScore,omitempty"`
	HomeTeamPresentPlayers []string  `json:"homeTeamPresentPlayers"`
	AwayTeamPresentPlayers []string  `json:"awayTeamPresentPlayers"`
	HomeTeamPresent        int       `json:"homeTeamPresent"`
	AwayTeamPresent        int       `json:"awayTeamPresent"`
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if strings.TrimSpace(m.HomeTeamID) == "" || strings.TrimSpace(m.AwayTeamID) == "" {
		return fmt.Errorf("match %s needs both home and away team ids", m.ID)
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match %s has a team playing itself", m.ID)
	}
	if !m.Status.Known() {
		return fmt.Errorf("match %s has unknown status %q", m.ID, m.Status)
	}
	if (m.HomeScore == nil) != (m.AwayScore == nil) {
		return fmt.Errorf("match %s must carry both scores or neither", m.ID)
	}

	return nil
}

// ReferencesTeam reports whether the match involves the given team on either
// side.
func (m Match) ReferencesTeam(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// SetPresence toggles a player's per-match attendance on one side and keeps
// the derived count equal to the set size.
func (m *Match) SetPresence(side Side, playerID string, present bool) error {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("player id is required")
	}

	switch side {
	case SideHome:
		m.HomeTeamPresentPlayers = updatePresence(m.HomeTeamPresentPlayers, playerID, present)
		m.HomeTeamPresent = len(m.HomeTeamPresentPlayers)
	case SideAway:
		m.AwayTeamPresentPlayers = updatePresence(m.AwayTeamPresentPlayers, playerID, present)
		m.AwayTeamPresent = len(m.AwayTeamPresentPlayers)
	default:
		return fmt.Errorf("unknown side %q", side)
	}

	return nil
}

func updatePresence(ids []string, playerID string, present bool) []string {
	idx := -1
	for i, id := range ids {
		if id == playerID {
			idx = i
			break
		}
	}

	if present {
		if idx >= 0 {
			return ids
		}
		return append(ids, playerID)
	}

	if idx < 0 {
		return ids
	}

	return append(ids[:idx], ids[idx+1:]...)
}

// MatchDay groups the matches of one calendar date. It owns its matches;
// a day without matches is allowed in storage but subject to pruning by
// reference validation.
type MatchDay struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Name         string    `json:"name"`
	Notes        string    `json:"notes"`
	Matches      []Match   `json:"matches"`
	LastModified time.Time `json:"lastModified"`
}

func (d MatchDay) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("match day id is required")
	}
	for _, m := range d.Matches {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("match day %s: %w", d.ID, err)
		}
	}

	return nil
}

// SameRevision mirrors team.Team.SameRevision for match days: id, last
// modified time and match count decide whether a cached copy is still fresh.
func (d MatchDay) SameRevision(other MatchDay) bool {
	return d.ID == other.ID &&
		d.LastModified.Equal(other.LastModified) &&
		len(d.Matches) == len(other.Matches)
}

// Upcoming returns the days scheduled at or after now, soonest first.
func Upcoming(days []MatchDay, now time.Time) []MatchDay {
	out := make([]MatchDay, 0, len(days))
	for _, d := range days {
		if !d.Date.Before(now) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return out
}

// Past returns the days scheduled before now, most recent first.
func Past(days []MatchDay, now time.Time) []MatchDay {
	out := make([]MatchDay, 0, len(days))
	for _, d := range days {
		if d.Date.Before(now) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })

	return out
}

// SortByDate orders days ascending in place; the gateway applies it on every
// matchdays write.
func SortByDate(days []MatchDay) {
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
}

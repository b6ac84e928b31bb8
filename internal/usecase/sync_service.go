package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/pitchside/leaguedesk/internal/domain/matchday"
	"github.com/pitchside/leaguedesk/internal/domain/team"
	idgen "github.com/pitchside/leaguedesk/internal/platform/id"
	"github.com/pitchside/leaguedesk/internal/platform/logging"
)

// RemoteGateway is what the engine needs from the league server. The combined
// calls hit the one-shot sync endpoint; the per-document calls are the
// fallback transport.
type RemoteGateway interface {
	FetchTeams(ctx context.Context) ([]team.Team, error)
	FetchMatchDays(ctx context.Context) ([]matchday.MatchDay, error)
	FetchCombined(ctx context.Context) ([]team.Team, []matchday.MatchDay, error)
	PushTeams(ctx context.Context, teams []team.Team) error
	PushMatchDays(ctx context.Context, days []matchday.MatchDay) error
	PushCombined(ctx context.Context, teams []team.Team, days []matchday.MatchDay) error
}

// Snapshot is the client's whole in-memory copy of both documents. It is
// installed and replaced as one value; nothing mutates a snapshot in place
// after it has been stored.
type Snapshot struct {
	Teams     []team.Team
	MatchDays []matchday.MatchDay
}

type SyncMode string

const (
	SyncModeDownload SyncMode = "download"
	SyncModeUpload   SyncMode = "upload"
	SyncModeSmart    SyncMode = "smart"
)

// SyncReport tells the caller what one sync operation did. Offline means an
// upload failed on every path and the download step was skipped. The Removed
// counters come from reference validation; the Changed counters say how many
// locally-cached entities were actually out of date per the staleness
// comparison, so a UI layer knows whether redrawing is worth it.
type SyncReport struct {
	Mode             SyncMode
	Offline          bool
	TeamsPushed      bool
	MatchDaysPushed  bool
	RemovedMatches   int
	RemovedMatchDays int
	HealedWriteBack  bool
	ChangedTeams     int
	ChangedMatchDays int
	CompletedAt      time.Time
}

type fetchStrategy struct {
	name  string
	fetch func(ctx context.Context) ([]team.Team, []matchday.MatchDay, error)
}

// SyncService reconciles the local snapshot with the server. One operation
// runs at a time per client; a second caller gets ErrSyncInProgress and is
// expected to skip, not queue.
type SyncService struct {
	remote  RemoteGateway
	ids     idgen.Generator
	logger  *logging.Logger
	state   atomic.Pointer[Snapshot]
	running atomic.Bool
	now     func() time.Time

	fetchStrategies []fetchStrategy
}

func NewSyncService(remote RemoteGateway, ids idgen.Generator, logger *logging.Logger) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}

	s := &SyncService{
		remote: remote,
		ids:    ids,
		logger: logger,
		now:    time.Now,
	}
	s.state.Store(&Snapshot{Teams: []team.Team{}, MatchDays: []matchday.MatchDay{}})
	s.fetchStrategies = []fetchStrategy{
		{name: "combined", fetch: remote.FetchCombined},
		{name: "per-document", fetch: s.fetchPerDocument},
	}

	return s
}

// Snapshot returns the current local copy. Callers must treat it as
// read-only.
func (s *SyncService) Snapshot() Snapshot {
	return *s.state.Load()
}

// ReplaceLocal installs a snapshot without talking to the server, e.g. state
// restored from a device cache at startup.
func (s *SyncService) ReplaceLocal(snap Snapshot) {
	if snap.Teams == nil {
		snap.Teams = []team.Team{}
	}
	if snap.MatchDays == nil {
		snap.MatchDays = []matchday.MatchDay{}
	}
	s.state.Store(&snap)
}

// Download pulls both documents and replaces the local snapshot in full.
// Teams land first so matchdays can be validated against them; a snapshot is
// installed only once both documents were fully received, so an abandoned
// download leaves local state untouched.
func (s *SyncService) Download(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Download")
	defer span.End()

	if !s.begin() {
		return SyncReport{Mode: SyncModeDownload}, ErrSyncInProgress
	}
	defer s.end()

	return s.download(ctx)
}

// Upload pushes the local snapshot over the server's copy. Best effort: the
// operation succeeds when at least one of the two documents landed; one
// document failing never rolls back the other.
func (s *SyncService) Upload(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Upload")
	defer span.End()

	if !s.begin() {
		return SyncReport{Mode: SyncModeUpload}, ErrSyncInProgress
	}
	defer s.end()

	return s.upload(ctx)
}

// SmartSync is the periodic-refresh operation: upload first so unsaved local
// edits reach the server before the client accepts whatever comes back, then
// download. A fully failed upload reports offline and skips the download.
func (s *SyncService) SmartSync(ctx context.Context) (SyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SmartSync")
	defer span.End()

	if !s.begin() {
		return SyncReport{Mode: SyncModeSmart}, ErrSyncInProgress
	}
	defer s.end()

	report := SyncReport{Mode: SyncModeSmart}

	up, err := s.upload(ctx)
	report.TeamsPushed = up.TeamsPushed
	report.MatchDaysPushed = up.MatchDaysPushed
	if err != nil {
		report.Offline = true
		report.CompletedAt = s.now()
		s.logger.WarnContext(ctx, "smart sync working offline", "error", err)
		return report, fmt.Errorf("smart sync upload: %w", err)
	}

	down, err := s.download(ctx)
	report.RemovedMatches = down.RemovedMatches
	report.RemovedMatchDays = down.RemovedMatchDays
	report.HealedWriteBack = down.HealedWriteBack
	report.ChangedTeams = down.ChangedTeams
	report.ChangedMatchDays = down.ChangedMatchDays
	report.CompletedAt = s.now()
	if err != nil {
		return report, fmt.Errorf("smart sync download: %w", err)
	}

	return report, nil
}

// DeleteTeam removes a team and cascades: every match referencing it goes,
// and any match day left empty goes with it. Both corrected documents are
// persisted as one logical operation; if only one of the writes lands the
// deletion is reported as failed and the engine re-downloads so the client
// does not present an undurable state as saved.
func (s *SyncService) DeleteTeam(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.DeleteTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	if !s.begin() {
		return ErrSyncInProgress
	}
	defer s.end()

	snap := s.state.Load()

	newTeams := make([]team.Team, 0, len(snap.Teams))
	found := false
	for _, t := range snap.Teams {
		if t.ID == teamID {
			found = true
			continue
		}
		newTeams = append(newTeams, t)
	}
	if !found {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	newDays, removedMatches, removedDays := cascadeTeamRemoval(snap.MatchDays, teamID)
	next := Snapshot{Teams: newTeams, MatchDays: newDays}

	if err := s.remote.PushCombined(ctx, next.Teams, next.MatchDays); err == nil {
		s.state.Store(&next)
		s.logger.InfoContext(ctx, "team deleted",
			"team_id", teamID,
			"removed_matches", removedMatches,
			"removed_match_days", removedDays,
		)
		return nil
	}

	teamsErr := s.remote.PushTeams(ctx, next.Teams)
	daysErr := s.remote.PushMatchDays(ctx, next.MatchDays)

	switch {
	case teamsErr == nil && daysErr == nil:
		s.state.Store(&next)
		s.logger.InfoContext(ctx, "team deleted",
			"team_id", teamID,
			"removed_matches", removedMatches,
			"removed_match_days", removedDays,
		)
		return nil
	case teamsErr == nil || daysErr == nil:
		// One document is durable, the other is not. Resync from the
		// server so local state matches what actually persisted.
		s.logger.ErrorContext(ctx, "team deletion persisted partially",
			"team_id", teamID,
			"teams_error", teamsErr,
			"matchdays_error", daysErr,
		)
		if _, err := s.download(ctx); err != nil {
			s.logger.WarnContext(ctx, "resync after partial deletion failed", "error", err)
		}
		return fmt.Errorf("%w: delete team %s", ErrPartialPersist, teamID)
	default:
		return fmt.Errorf("%w: delete team %s: %v", ErrDependencyUnavailable, teamID, teamsErr)
	}
}

// NewMatchInput carries the user-entered fields of a match; ids, status and
// attendance start fresh.
type NewMatchInput struct {
	HomeTeamID    string
	AwayTeamID    string
	ScheduledTime time.Time
	Field         string
}

// CreateMatch appends a match to a match day after the creation guard: both
// team ids must resolve against the current team set and a team cannot play
// itself. On acceptance the owning day's lastModified is bumped and the whole
// matchdays document is persisted; the new snapshot is installed only once
// the persist succeeded.
func (s *SyncService) CreateMatch(ctx context.Context, matchDayID string, input NewMatchInput) (matchday.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.CreateMatch")
	defer span.End()

	matchDayID = strings.TrimSpace(matchDayID)
	homeID := strings.TrimSpace(input.HomeTeamID)
	awayID := strings.TrimSpace(input.AwayTeamID)
	if matchDayID == "" {
		return matchday.Match{}, fmt.Errorf("%w: match day id is required", ErrInvalidInput)
	}
	if homeID == "" || awayID == "" {
		return matchday.Match{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if homeID == awayID {
		return matchday.Match{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	if !s.begin() {
		return matchday.Match{}, ErrSyncInProgress
	}
	defer s.end()

	snap := s.state.Load()
	teamIDs := team.IDSet(snap.Teams)
	if _, ok := teamIDs[homeID]; !ok {
		return matchday.Match{}, fmt.Errorf("%w: unknown home team %s", ErrInvalidInput, homeID)
	}
	if _, ok := teamIDs[awayID]; !ok {
		return matchday.Match{}, fmt.Errorf("%w: unknown away team %s", ErrInvalidInput, awayID)
	}

	dayIdx := -1
	for i, d := range snap.MatchDays {
		if d.ID == matchDayID {
			dayIdx = i
			break
		}
	}
	if dayIdx < 0 {
		return matchday.Match{}, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchDayID)
	}

	matchID, err := s.ids.NewID()
	if err != nil {
		return matchday.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	match := matchday.Match{
		ID:                     matchID,
		HomeTeamID:             homeID,
		AwayTeamID:             awayID,
		ScheduledTime:          input.ScheduledTime,
		Field:                  strings.TrimSpace(input.Field),
		Status:                 matchday.StatusScheduled,
		HomeTeamPresentPlayers: []string{},
		AwayTeamPresentPlayers: []string{},
	}

	newDays := cloneMatchDays(snap.MatchDays)
	newDays[dayIdx].Matches = append(newDays[dayIdx].Matches, match)
	newDays[dayIdx].LastModified = s.now()

	if err := s.remote.PushMatchDays(ctx, newDays); err != nil {
		return matchday.Match{}, fmt.Errorf("%w: persist matchdays: %v", ErrDependencyUnavailable, err)
	}

	s.state.Store(&Snapshot{Teams: snap.Teams, MatchDays: newDays})

	return match, nil
}

// SetMatchPresence toggles one player's per-match attendance and keeps the
// derived present counts equal to the set sizes. The mutation persists the
// whole matchdays document before the snapshot changes.
func (s *SyncService) SetMatchPresence(ctx context.Context, matchDayID, matchID string, side matchday.Side, playerID string, present bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SetMatchPresence")
	defer span.End()

	if !s.begin() {
		return ErrSyncInProgress
	}
	defer s.end()

	snap := s.state.Load()

	dayIdx, matchIdx := -1, -1
	for i, d := range snap.MatchDays {
		if d.ID != matchDayID {
			continue
		}
		dayIdx = i
		for j, m := range d.Matches {
			if m.ID == matchID {
				matchIdx = j
				break
			}
		}
		break
	}
	if dayIdx < 0 {
		return fmt.Errorf("%w: matchday=%s", ErrNotFound, matchDayID)
	}
	if matchIdx < 0 {
		return fmt.Errorf("%w: match=%s matchday=%s", ErrNotFound, matchID, matchDayID)
	}

	newDays := cloneMatchDays(snap.MatchDays)
	if err := newDays[dayIdx].Matches[matchIdx].SetPresence(side, playerID, present); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	newDays[dayIdx].LastModified = s.now()

	if err := s.remote.PushMatchDays(ctx, newDays); err != nil {
		return fmt.Errorf("%w: persist matchdays: %v", ErrDependencyUnavailable, err)
	}

	s.state.Store(&Snapshot{Teams: snap.Teams, MatchDays: newDays})

	return nil
}

// SetPlayerPresent flips the legacy whole-team attendance flag on a roster
// player. Independent of per-match attendance; kept for clients still showing
// the team-level list.
func (s *SyncService) SetPlayerPresent(ctx context.Context, teamID, playerID string, present bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SetPlayerPresent")
	defer span.End()

	if !s.begin() {
		return ErrSyncInProgress
	}
	defer s.end()

	snap := s.state.Load()

	teamIdx, playerIdx := -1, -1
	for i, t := range snap.Teams {
		if t.ID != teamID {
			continue
		}
		teamIdx = i
		for j, p := range t.Players {
			if p.ID == playerID {
				playerIdx = j
				break
			}
		}
		break
	}
	if teamIdx < 0 {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if playerIdx < 0 {
		return fmt.Errorf("%w: player=%s team=%s", ErrNotFound, playerID, teamID)
	}

	newTeams := cloneTeams(snap.Teams)
	newTeams[teamIdx].Players[playerIdx].IsPresent = present
	newTeams[teamIdx].LastModified = s.now()

	if err := s.remote.PushTeams(ctx, newTeams); err != nil {
		return fmt.Errorf("%w: persist teams: %v", ErrDependencyUnavailable, err)
	}

	s.state.Store(&Snapshot{Teams: newTeams, MatchDays: snap.MatchDays})

	return nil
}

func (s *SyncService) begin() bool {
	return s.running.CompareAndSwap(false, true)
}

func (s *SyncService) end() {
	s.running.Store(false)
}

func (s *SyncService) download(ctx context.Context) (SyncReport, error) {
	report := SyncReport{Mode: SyncModeDownload}

	var (
		teams []team.Team
		days  []matchday.MatchDay
		ok    bool
		last  error
	)
	for _, strat := range s.fetchStrategies {
		fetchedTeams, fetchedDays, err := strat.fetch(ctx)
		if err != nil {
			last = err
			s.logger.WarnContext(ctx, "download strategy failed", "strategy", strat.name, "error", err)
			continue
		}
		teams, days, ok = fetchedTeams, fetchedDays, true
		break
	}
	if !ok {
		report.CompletedAt = s.now()
		return report, fmt.Errorf("%w: download: %v", ErrDependencyUnavailable, last)
	}
	if teams == nil {
		teams = []team.Team{}
	}

	cleanDays, removedMatches, removedDays := validateReferences(teams, days)
	report.RemovedMatches = removedMatches
	report.RemovedMatchDays = removedDays

	if removedMatches > 0 || removedDays > 0 {
		// Self-healing write-back: push the corrected document so the
		// corruption does not come back on the next download by another
		// client. A failed write-back is logged, not fatal; the local
		// copy stays healed either way.
		if err := s.remote.PushMatchDays(ctx, cleanDays); err != nil {
			s.logger.WarnContext(ctx, "heal write-back failed",
				"removed_matches", removedMatches,
				"removed_match_days", removedDays,
				"error", err,
			)
		} else {
			report.HealedWriteBack = true
		}
	}

	prev := s.state.Load()
	report.ChangedTeams = countChangedTeams(prev.Teams, teams)
	report.ChangedMatchDays = countChangedMatchDays(prev.MatchDays, cleanDays)

	s.state.Store(&Snapshot{Teams: teams, MatchDays: cleanDays})
	report.CompletedAt = s.now()

	return report, nil
}

func (s *SyncService) upload(ctx context.Context) (SyncReport, error) {
	report := SyncReport{Mode: SyncModeUpload}
	snap := s.state.Load()

	combinedErr := s.remote.PushCombined(ctx, snap.Teams, snap.MatchDays)
	if combinedErr == nil {
		report.TeamsPushed = true
		report.MatchDaysPushed = true
		report.CompletedAt = s.now()
		return report, nil
	}
	s.logger.WarnContext(ctx, "combined upload failed, trying per-document", "error", combinedErr)

	teamsErr := s.remote.PushTeams(ctx, snap.Teams)
	daysErr := s.remote.PushMatchDays(ctx, snap.MatchDays)
	report.TeamsPushed = teamsErr == nil
	report.MatchDaysPushed = daysErr == nil
	report.CompletedAt = s.now()

	if teamsErr != nil && daysErr != nil {
		return report, fmt.Errorf("%w: upload teams: %v; upload matchdays: %v", ErrWorkingOffline, teamsErr, daysErr)
	}
	if teamsErr != nil {
		s.logger.WarnContext(ctx, "teams upload failed, matchdays landed", "error", teamsErr)
	}
	if daysErr != nil {
		s.logger.WarnContext(ctx, "matchdays upload failed, teams landed", "error", daysErr)
	}

	return report, nil
}

// fetchPerDocument is the fallback transport: teams first, matchdays second.
// The order matters, the freshly fetched team set is what validation runs
// against.
func (s *SyncService) fetchPerDocument(ctx context.Context) ([]team.Team, []matchday.MatchDay, error) {
	teams, err := s.remote.FetchTeams(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch teams: %w", err)
	}
	days, err := s.remote.FetchMatchDays(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch matchdays: %w", err)
	}

	return teams, days, nil
}

// validateReferences drops every match whose home or away team id does not
// resolve against the team set, then drops match days left without matches.
// Invalid matches are removed, never repaired; there is no way to guess the
// intended team. Running it twice on the same input removes nothing the
// second time.
func validateReferences(teams []team.Team, days []matchday.MatchDay) ([]matchday.MatchDay, int, int) {
	teamIDs := team.IDSet(teams)

	cleanDays := make([]matchday.MatchDay, 0, len(days))
	removedMatches := 0
	removedDays := 0

	for _, d := range days {
		kept := make([]matchday.Match, 0, len(d.Matches))
		for _, m := range d.Matches {
			_, homeOK := teamIDs[m.HomeTeamID]
			_, awayOK := teamIDs[m.AwayTeamID]
			if !homeOK || !awayOK {
				removedMatches++
				continue
			}
			kept = append(kept, m)
		}
		if len(kept) == 0 {
			removedDays++
			continue
		}
		d.Matches = kept
		cleanDays = append(cleanDays, d)
	}

	return cleanDays, removedMatches, removedDays
}

// cascadeTeamRemoval strips every match referencing teamID and prunes days
// left empty by that removal.
func cascadeTeamRemoval(days []matchday.MatchDay, teamID string) ([]matchday.MatchDay, int, int) {
	newDays := make([]matchday.MatchDay, 0, len(days))
	removedMatches := 0
	removedDays := 0

	for _, d := range days {
		kept := make([]matchday.Match, 0, len(d.Matches))
		for _, m := range d.Matches {
			if m.ReferencesTeam(teamID) {
				removedMatches++
				continue
			}
			kept = append(kept, m)
		}
		if len(kept) == 0 && len(d.Matches) > 0 {
			removedDays++
			continue
		}
		d.Matches = kept
		newDays = append(newDays, d)
	}

	return newDays, removedMatches, removedDays
}

func countChangedTeams(local, fetched []team.Team) int {
	byID := make(map[string]team.Team, len(local))
	for _, t := range local {
		byID[t.ID] = t
	}

	changed := 0
	for _, t := range fetched {
		prev, ok := byID[t.ID]
		if !ok || !prev.SameRevision(t) {
			changed++
		}
	}

	return changed
}

func countChangedMatchDays(local, fetched []matchday.MatchDay) int {
	byID := make(map[string]matchday.MatchDay, len(local))
	for _, d := range local {
		byID[d.ID] = d
	}

	changed := 0
	for _, d := range fetched {
		prev, ok := byID[d.ID]
		if !ok || !prev.SameRevision(d) {
			changed++
		}
	}

	return changed
}

func cloneTeams(teams []team.Team) []team.Team {
	out := make([]team.Team, len(teams))
	copy(out, teams)
	for i := range out {
		players := make([]team.Player, len(out[i].Players))
		copy(players, out[i].Players)
		out[i].Players = players
	}

	return out
}

func cloneMatchDays(days []matchday.MatchDay) []matchday.MatchDay {
	out := make([]matchday.MatchDay, len(days))
	copy(out, days)
	for i := range out {
		matches := make([]matchday.Match, len(out[i].Matches))
		copy(matches, out[i].Matches)
		for j := range matches {
			matches[j].HomeTeamPresentPlayers = append([]string(nil), matches[j].HomeTeamPresentPlayers...)
			matches[j].AwayTeamPresentPlayers = append([]string(nil), matches[j].AwayTeamPresentPlayers...)
		}
		out[i].Matches = matches
	}

	return out
}

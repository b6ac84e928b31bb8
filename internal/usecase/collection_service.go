package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/sourcegraph/conc"

	"github.com/pitchside/leaguedesk/internal/domain/document"
	"github.com/pitchside/leaguedesk/internal/domain/matchday"
	"github.com/pitchside/leaguedesk/internal/domain/team"
	"github.com/pitchside/leaguedesk/internal/platform/cache"
	"github.com/pitchside/leaguedesk/internal/platform/logging"
)

const (
	statsCacheKey = "collection:stats"
	backupVersion = "1.0"
)

// CollectionService is the server side of the contract: it translates
// whole-document reads and replacements into store operations. It owns no
// cross-document knowledge on purpose; a match pointing at a deleted team is
// accepted here and healed later by a client's reference validation pass.
type CollectionService struct {
	store      document.Store
	statsCache *cache.Store
	logger     *logging.Logger
	startedAt  time.Time
	now        func() time.Time
}

func NewCollectionService(store document.Store, statsCache *cache.Store, logger *logging.Logger) *CollectionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CollectionService{
		store:      store,
		statsCache: statsCache,
		logger:     logger,
		startedAt:  time.Now(),
		now:        time.Now,
	}
}

type HealthStatus struct {
	Status    string
	Timestamp time.Time
	Uptime    time.Duration
}

type CollectionStats struct {
	TotalTeams     int
	TotalPlayers   int
	TotalMatchDays int
	TotalMatches   int
	LastUpdated    time.Time
}

type CombinedDocuments struct {
	Teams     []team.Team
	MatchDays []matchday.MatchDay
}

type BackupDocument struct {
	Teams      []team.Team
	MatchDays  []matchday.MatchDay
	ExportDate time.Time
	Version    string
}

func (s *CollectionService) Health() HealthStatus {
	now := s.now()
	return HealthStatus{
		Status:    "ok",
		Timestamp: now,
		Uptime:    now.Sub(s.startedAt),
	}
}

func (s *CollectionService) Teams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.Teams")
	defer span.End()

	payload, err := s.store.ReadDocument(ctx, document.NameTeams)
	if err != nil {
		return nil, fmt.Errorf("read teams document: %w", err)
	}

	return decodeTeams(payload)
}

func (s *CollectionService) TeamByID(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.TeamByID")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	teams, err := s.Teams(ctx)
	if err != nil {
		return team.Team{}, err
	}
	for _, t := range teams {
		if t.ID == teamID {
			return t, nil
		}
	}

	return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
}

func (s *CollectionService) ReplaceTeams(ctx context.Context, teams []team.Team) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.ReplaceTeams")
	defer span.End()

	if teams == nil {
		teams = []team.Team{}
	}

	payload, err := sonic.Marshal(teams)
	if err != nil {
		return 0, fmt.Errorf("encode teams document: %w", err)
	}
	if err := s.store.WriteDocument(ctx, document.NameTeams, payload); err != nil {
		return 0, fmt.Errorf("write teams document: %w", err)
	}
	s.invalidateStats(ctx)

	return len(teams), nil
}

func (s *CollectionService) MatchDays(ctx context.Context) ([]matchday.MatchDay, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.MatchDays")
	defer span.End()

	payload, err := s.store.ReadDocument(ctx, document.NameMatchDays)
	if err != nil {
		return nil, fmt.Errorf("read matchdays document: %w", err)
	}

	return decodeMatchDays(payload)
}

func (s *CollectionService) MatchDayByID(ctx context.Context, matchDayID string) (matchday.MatchDay, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.MatchDayByID")
	defer span.End()

	matchDayID = strings.TrimSpace(matchDayID)
	if matchDayID == "" {
		return matchday.MatchDay{}, fmt.Errorf("%w: match day id is required", ErrInvalidInput)
	}

	days, err := s.MatchDays(ctx)
	if err != nil {
		return matchday.MatchDay{}, err
	}
	for _, d := range days {
		if d.ID == matchDayID {
			return d, nil
		}
	}

	return matchday.MatchDay{}, fmt.Errorf("%w: matchday=%s", ErrNotFound, matchDayID)
}

// ReplaceMatchDays overwrites the matchdays document. Days are stored sorted
// by date ascending regardless of how the client ordered them.
func (s *CollectionService) ReplaceMatchDays(ctx context.Context, days []matchday.MatchDay) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.ReplaceMatchDays")
	defer span.End()

	if days == nil {
		days = []matchday.MatchDay{}
	}
	matchday.SortByDate(days)

	payload, err := sonic.Marshal(days)
	if err != nil {
		return 0, fmt.Errorf("encode matchdays document: %w", err)
	}
	if err := s.store.WriteDocument(ctx, document.NameMatchDays, payload); err != nil {
		return 0, fmt.Errorf("write matchdays document: %w", err)
	}
	s.invalidateStats(ctx)

	return len(days), nil
}

// Combined reads both documents for the sync and backup endpoints. The two
// reads are independent, so they run concurrently.
func (s *CollectionService) Combined(ctx context.Context) (CombinedDocuments, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.Combined")
	defer span.End()

	var (
		teams    []team.Team
		teamsErr error
		days     []matchday.MatchDay
		daysErr  error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		teams, teamsErr = s.Teams(ctx)
	})
	wg.Go(func() {
		days, daysErr = s.MatchDays(ctx)
	})
	wg.Wait()

	if teamsErr != nil {
		return CombinedDocuments{}, teamsErr
	}
	if daysErr != nil {
		return CombinedDocuments{}, daysErr
	}

	return CombinedDocuments{Teams: teams, MatchDays: days}, nil
}

// ReplaceCombined is the POST /sync path: both documents replaced in one
// call. Writes stay sequential, teams first, mirroring the per-document
// contract.
func (s *CollectionService) ReplaceCombined(ctx context.Context, teams []team.Team, days []matchday.MatchDay) (int, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.ReplaceCombined")
	defer span.End()

	teamsCount, err := s.ReplaceTeams(ctx, teams)
	if err != nil {
		return 0, 0, err
	}
	daysCount, err := s.ReplaceMatchDays(ctx, days)
	if err != nil {
		return teamsCount, 0, err
	}

	return teamsCount, daysCount, nil
}

func (s *CollectionService) Stats(ctx context.Context) (CollectionStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.Stats")
	defer span.End()

	if s.statsCache == nil {
		return s.computeStats(ctx)
	}

	value, err := s.statsCache.GetOrLoad(ctx, statsCacheKey, func(ctx context.Context) (any, error) {
		return s.computeStats(ctx)
	})
	if err != nil {
		return CollectionStats{}, err
	}

	stats, ok := value.(CollectionStats)
	if !ok {
		return s.computeStats(ctx)
	}

	return stats, nil
}

func (s *CollectionService) Backup(ctx context.Context) (BackupDocument, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CollectionService.Backup")
	defer span.End()

	combined, err := s.Combined(ctx)
	if err != nil {
		return BackupDocument{}, err
	}

	return BackupDocument{
		Teams:      combined.Teams,
		MatchDays:  combined.MatchDays,
		ExportDate: s.now(),
		Version:    backupVersion,
	}, nil
}

func (s *CollectionService) computeStats(ctx context.Context) (CollectionStats, error) {
	combined, err := s.Combined(ctx)
	if err != nil {
		return CollectionStats{}, err
	}

	stats := CollectionStats{
		TotalTeams:     len(combined.Teams),
		TotalMatchDays: len(combined.MatchDays),
	}
	for _, t := range combined.Teams {
		stats.TotalPlayers += t.TotalCount()
		if t.LastModified.After(stats.LastUpdated) {
			stats.LastUpdated = t.LastModified
		}
	}
	for _, d := range combined.MatchDays {
		stats.TotalMatches += len(d.Matches)
		if d.LastModified.After(stats.LastUpdated) {
			stats.LastUpdated = d.LastModified
		}
	}

	return stats, nil
}

func (s *CollectionService) invalidateStats(ctx context.Context) {
	if s.statsCache != nil {
		s.statsCache.Delete(ctx, statsCacheKey)
	}
}

func decodeTeams(payload []byte) ([]team.Team, error) {
	var teams []team.Team
	if err := sonic.Unmarshal(payload, &teams); err != nil {
		return nil, fmt.Errorf("decode teams document: %w", err)
	}
	if teams == nil {
		teams = []team.Team{}
	}

	return teams, nil
}

func decodeMatchDays(payload []byte) ([]matchday.MatchDay, error) {
	var days []matchday.MatchDay
	if err := sonic.Unmarshal(payload, &days); err != nil {
		return nil, fmt.Errorf("decode matchdays document: %w", err)
	}
	if days == nil {
		days = []matchday.MatchDay{}
	}

	return days, nil
}

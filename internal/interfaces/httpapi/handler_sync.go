package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/pitchside/leaguedesk/internal/domain/matchday"
	"github.com/pitchside/leaguedesk/internal/domain/team"
	"github.com/pitchside/leaguedesk/internal/usecase"
)

type syncDocumentDTO struct {
	Teams     []team.Team         `json:"teams"`
	MatchDays []matchday.MatchDay `json:"matchDays"`
}

type backupDTO struct {
	Teams      []team.Team         `json:"teams"`
	MatchDays  []matchday.MatchDay `json:"matchDays"`
	ExportDate string              `json:"exportDate"`
	Version    string              `json:"version"`
}

func (h *Handler) GetSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSync")
	defer span.End()

	combined, err := h.collection.Combined(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "combined fetch failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, syncDocumentDTO{
		Teams:     combined.Teams,
		MatchDays: combined.MatchDays,
	})
}

func (h *Handler) PostSync(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PostSync")
	defer span.End()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err))
		return
	}

	var body syncDocumentDTO
	if err := sonic.Unmarshal(payload, &body); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if body.Teams == nil || body.MatchDays == nil {
		writeError(ctx, w, fmt.Errorf("%w: both teams and matchDays arrays are required", usecase.ErrInvalidInput))
		return
	}

	teamsCount, daysCount, err := h.collection.ReplaceCombined(ctx, body.Teams, body.MatchDays)
	if err != nil {
		h.logger.ErrorContext(ctx, "combined replace failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, syncAckDTO{
		Success:        true,
		TeamsCount:     teamsCount,
		MatchDaysCount: daysCount,
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStats")
	defer span.End()

	stats, err := h.collection.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	lastUpdated := ""
	if !stats.LastUpdated.IsZero() {
		lastUpdated = stats.LastUpdated.UTC().Format(time.RFC3339)
	}
	writeJSON(ctx, w, http.StatusOK, statsDTO{
		TotalTeams:     stats.TotalTeams,
		TotalPlayers:   stats.TotalPlayers,
		TotalMatchDays: stats.TotalMatchDays,
		TotalMatches:   stats.TotalMatches,
		LastUpdated:    lastUpdated,
	})
}

func (h *Handler) GetBackup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBackup")
	defer span.End()

	backup, err := h.collection.Backup(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "backup failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	filename := fmt.Sprintf("leaguedesk-backup-%s.json", backup.ExportDate.UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	writeJSON(ctx, w, http.StatusOK, backupDTO{
		Teams:      backup.Teams,
		MatchDays:  backup.MatchDays,
		ExportDate: backup.ExportDate.UTC().Format(time.RFC3339),
		Version:    backup.Version,
	})
}

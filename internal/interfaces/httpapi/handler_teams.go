package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pitchside/leaguedesk/internal/domain/team"
	"github.com/pitchside/leaguedesk/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.collection.Teams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, teams)
}

func (h *Handler) ReplaceTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceTeams")
	defer span.End()

	var teams []team.Team
	if err := decodeArrayBody(r, &teams); err != nil {
		writeError(ctx, w, err)
		return
	}
	for i, t := range teams {
		if err := h.validator.Var(t.ID, "required"); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: team at index %d has no id", usecase.ErrInvalidInput, i))
			return
		}
	}

	count, err := h.collection.ReplaceTeams(ctx, teams)
	if err != nil {
		h.logger.ErrorContext(ctx, "replace teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, replaceAckDTO{Success: true, Count: count})
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	item, err := h.collection.TeamByID(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, item)
}

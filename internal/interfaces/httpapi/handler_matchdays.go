package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pitchside/leaguedesk/internal/domain/matchday"
	"github.com/pitchside/leaguedesk/internal/usecase"
)

func (h *Handler) ListMatchDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchDays")
	defer span.End()

	days, err := h.collection.MatchDays(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matchdays failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, days)
}

func (h *Handler) ReplaceMatchDays(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceMatchDays")
	defer span.End()

	var days []matchday.MatchDay
	if err := decodeArrayBody(r, &days); err != nil {
		writeError(ctx, w, err)
		return
	}
	for i, d := range days {
		if err := h.validator.Var(d.ID, "required"); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: match day at index %d has no id", usecase.ErrInvalidInput, i))
			return
		}
	}

	count, err := h.collection.ReplaceMatchDays(ctx, days)
	if err != nil {
		h.logger.ErrorContext(ctx, "replace matchdays failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, replaceAckDTO{Success: true, Count: count})
}

func (h *Handler) GetMatchDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchDay")
	defer span.End()

	matchDayID := strings.TrimSpace(r.PathValue("matchDayID"))
	item, err := h.collection.MatchDayByID(ctx, matchDayID)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchday failed", "match_day_id", matchDayID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, item)
}

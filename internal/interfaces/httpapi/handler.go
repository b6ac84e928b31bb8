package httpapi

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/pitchside/leaguedesk/internal/usecase"
)

// maxBodyBytes bounds POSTed documents; rosters with base64 player photos
// get big.
const maxBodyBytes = 16 << 20

type Handler struct {
	collection *usecase.CollectionService
	logger     *slog.Logger
	validator  *validator.Validate
}

func NewHandler(collection *usecase.CollectionService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		collection: collection,
		logger:     logger,
		validator:  validator.New(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Health")
	defer span.End()

	health := h.collection.Health()
	writeJSON(ctx, w, http.StatusOK, healthDTO{
		Status:    health.Status,
		Timestamp: health.Timestamp.UTC().Format(time.RFC3339),
		Uptime:    health.Uptime.Seconds(),
	})
}

type healthDTO struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

type replaceAckDTO struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type syncAckDTO struct {
	Success        bool `json:"success"`
	TeamsCount     int  `json:"teamsCount"`
	MatchDaysCount int  `json:"matchDaysCount"`
}

type statsDTO struct {
	TotalTeams     int    `json:"totalTeams"`
	TotalPlayers   int    `json:"totalPlayers"`
	TotalMatchDays int    `json:"totalMatchDays"`
	TotalMatches   int    `json:"totalMatches"`
	LastUpdated    string `json:"lastUpdated"`
}

// decodeArrayBody reads a request body that must be a JSON array and decodes
// it into out (a pointer to a slice). Anything that is not an array resolves
// to a 400-class invalid-input error; nothing is partially applied.
func decodeArrayBody(r *http.Request, out any) error {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if !startsWithArray(payload) {
		return fmt.Errorf("%w: request body must be a JSON array", usecase.ErrInvalidInput)
	}
	if err := sonic.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func startsWithArray(payload []byte) bool {
	for _, b := range payload {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}

	return false
}

package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/pitchside/leaguedesk/internal/domain/matchday"
	"github.com/pitchside/leaguedesk/internal/domain/team"
	"github.com/pitchside/leaguedesk/internal/platform/logging"
	"github.com/pitchside/leaguedesk/internal/platform/resilience"
)

const (
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 16 << 20 // rosters carry base64 player photos
)

var errTransient = crerr.New("league server transient failure")

// IsTransient reports whether the failure is worth retrying on a later
// refresh tick, as opposed to a contract-level rejection.
func IsTransient(err error) bool {
	return crerr.Is(err, errTransient)
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client speaks the /api document contract of a league server. Every call is
// bounded by the injected client's timeout plus the caller's context; the
// circuit breaker stops a flapping server from eating every refresh tick.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchTeams(ctx context.Context) ([]team.Team, error) {
	var teams []team.Team
	if err := c.doJSON(ctx, http.MethodGet, "/api/teams", nil, &teams); err != nil {
		return nil, err
	}

	return teams, nil
}

func (c *Client) FetchMatchDays(ctx context.Context) ([]matchday.MatchDay, error) {
	var days []matchday.MatchDay
	if err := c.doJSON(ctx, http.MethodGet, "/api/matchdays", nil, &days); err != nil {
		return nil, err
	}

	return days, nil
}

func (c *Client) FetchCombined(ctx context.Context) ([]team.Team, []matchday.MatchDay, error) {
	var decoded syncDocument
	if err := c.doJSON(ctx, http.MethodGet, "/api/sync", nil, &decoded); err != nil {
		return nil, nil, err
	}

	return decoded.Teams, decoded.MatchDays, nil
}

func (c *Client) PushTeams(ctx context.Context, teams []team.Team) error {
	if teams == nil {
		teams = []team.Team{}
	}

	var decoded replaceResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/teams", teams, &decoded); err != nil {
		return err
	}
	if !decoded.Success {
		return fmt.Errorf("teams upload rejected by server")
	}

	return nil
}

func (c *Client) PushMatchDays(ctx context.Context, days []matchday.MatchDay) error {
	if days == nil {
		days = []matchday.MatchDay{}
	}

	var decoded replaceResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/matchdays", days, &decoded); err != nil {
		return err
	}
	if !decoded.Success {
		return fmt.Errorf("matchdays upload rejected by server")
	}

	return nil
}

func (c *Client) PushCombined(ctx context.Context, teams []team.Team, days []matchday.MatchDay) error {
	if teams == nil {
		teams = []team.Team{}
	}
	if days == nil {
		days = []matchday.MatchDay{}
	}

	var decoded syncReplaceResponse
	payload := syncDocument{Teams: teams, MatchDays: days}
	if err := c.doJSON(ctx, http.MethodPost, "/api/sync", payload, &decoded); err != nil {
		return err
	}
	if !decoded.Success {
		return fmt.Errorf("combined upload rejected by server")
	}

	return nil
}

type syncDocument struct {
	Teams     []team.Team         `json:"teams"`
	MatchDays []matchday.MatchDay `json:"matchDays"`
}

type replaceResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
}

type syncReplaceResponse struct {
	Success        bool `json:"success"`
	TeamsCount     int  `json:"teamsCount"`
	MatchDaysCount int  `json:"matchDaysCount"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return crerr.Mark(fmt.Errorf("league server: %w", err), errTransient)
		}
	}

	err := c.roundTrip(ctx, method, path, body, out)
	if c.circuitEnabled {
		if err != nil && IsTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}

	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return crerr.Mark(fmt.Errorf("%s %s: %w", method, path, err), errTransient)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return crerr.Mark(fmt.Errorf("read %s %s response: %w", method, path, err), errTransient)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.logger.WarnContext(ctx, "league server error response",
			"method", method,
			"path", path,
			"status_code", resp.StatusCode,
		)
		return crerr.Mark(fmt.Errorf("%s %s: server status %d", method, path, resp.StatusCode), errTransient)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, truncate(payload, 256))
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}

func truncate(payload []byte, limit int) string {
	if len(payload) <= limit {
		return string(payload)
	}

	return string(payload[:limit]) + "..."
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pitchside/leaguedesk/internal/platform/logging"
)

// Refresher drives SmartSync on an interval. Ticks never overlap: when a
// prior sync is still running the engine answers ErrSyncInProgress and the
// tick is skipped. Stop halts further invocations; it does not interrupt an
// in-flight request, which runs out on its own context.
type Refresher struct {
	sync     *SyncService
	interval time.Duration
	timeout  time.Duration
	logger   *logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRefresher(syncService *SyncService, interval, timeout time.Duration, logger *logging.Logger) *Refresher {
	if logger == nil {
		logger = logging.Default()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Refresher{
		sync:     syncService,
		interval: interval,
		timeout:  timeout,
		logger:   logger,
	}
}

func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	done := make(chan struct{})
	r.done = done

	go r.run(ctx, done)
}

func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Refresher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	report, err := r.sync.SmartSync(tickCtx)
	switch {
	case err == nil:
		r.logger.DebugContext(tickCtx, "periodic refresh completed",
			"changed_teams", report.ChangedTeams,
			"changed_match_days", report.ChangedMatchDays,
			"removed_matches", report.RemovedMatches,
		)
	case errors.Is(err, ErrSyncInProgress):
		r.logger.DebugContext(tickCtx, "periodic refresh skipped, sync still running")
	case report.Offline:
		r.logger.InfoContext(tickCtx, "periodic refresh working offline", "error", err)
	default:
		r.logger.WarnContext(tickCtx, "periodic refresh failed", "error", err)
	}
}

package refresher

import (
	"context"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/getsentry/sentry-go"

	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/metrics"
	"github.com/tea-network/sbtmarket/sentry_integration"
	"github.com/tea-network/sbtmarket/types"
)

// Catalog is the set of scans the worker keeps warm.
type Catalog interface {
	Refresh(ctx context.Context, owner common.Address) error
	ScanDashboard(ctx context.Context) (*catalog.Snapshot[types.DashboardEntry], error)
}

// Worker re-runs the catalog scans on a fixed interval so readers are served
// from a recent snapshot.
type Worker struct {
	interval  time.Duration
	catalog   Catalog
	owner     func() common.Address
	dashboard bool
	logger    *slog.Logger
}

// NewWorker builds a worker that refreshes for the address returned by
// owner. When dashboard is set the admin dashboard is rescanned as well.
func NewWorker(interval time.Duration, cat Catalog, owner func() common.Address, dashboard bool, logger *slog.Logger) *Worker {
	return &Worker{
		interval:  interval,
		catalog:   cat,
		owner:     owner,
		dashboard: dashboard,
		logger:    logger.With("component", "refresher"),
	}
}

func (w *Worker) Enabled() bool {
	return w != nil && w.interval > 0 && w.catalog != nil
}

// Start runs one cycle immediately and then one per interval until ctx is
// cancelled. It returns at once when the worker is disabled.
func (w *Worker) Start(ctx context.Context) {
	if !w.Enabled() {
		return
	}

	w.logger.Info("catalog refresher started", slog.Duration("interval", w.interval), slog.Bool("dashboard", w.dashboard))

	w.runCycle(ctx)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("catalog refresher stopped")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

func (w *Worker) runCycle(ctx context.Context) {
	defer metrics.RecoverFromPanic("refresher")

	transaction, ctx := sentry_integration.StartSentryTransaction(ctx, "refresher.cycle", "Refreshing catalog snapshots")
	defer transaction.Finish()

	startedAt := time.Now()
	owner := w.owner()
	if err := w.catalog.Refresh(ctx, owner); err != nil {
		w.fail(ctx, "refresh cycle interrupted", err)
		return
	}

	if w.dashboard {
		if _, err := w.catalog.ScanDashboard(ctx); err != nil {
			w.fail(ctx, "dashboard cycle interrupted", err)
			return
		}
	}

	metrics.SetComponentHealth("refresher", true)
	w.logger.Debug("refresh cycle completed",
		slog.String("owner", owner.Hex()),
		slog.Int64("latency_ms", time.Since(startedAt).Milliseconds()))
}

// fail reports an interrupted cycle. Cancellation on shutdown is not sent
// to sentry.
func (w *Worker) fail(ctx context.Context, msg string, err error) {
	w.logger.Warn(msg, slog.Any("error", err))
	metrics.SetComponentHealth("refresher", false)
	if ctx.Err() == nil {
		sentry_integration.CaptureCurrentHubException(err, sentry.LevelWarning)
	}
}

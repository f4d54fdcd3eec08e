package catalog

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/tea-network/sbtmarket/types"
)

// ScanDashboard lists every initialized type in [1, MaxTypeId], active or
// not. The title comes from the metadata name when it can be fetched.
func (r *Reconciler) ScanDashboard(ctx context.Context) (*Snapshot[types.DashboardEntry], error) {
	prev := r.states.begin(KindDashboard)
	start := time.Now()
	ids := lo.RangeFrom(uint64(1), int(r.cfg.MaxTypeId))

	results := make([]*types.DashboardEntry, len(ids))
	failures := make([]*ItemError, len(ids))

	r.fanOut(ctx, len(ids), func(ctx context.Context, i int) {
		results[i], failures[i] = r.inspectDashboard(ctx, ids[i])
	})

	if err := ctx.Err(); err != nil {
		r.abandon(KindDashboard, prev, err)
		return nil, err
	}

	snap := &Snapshot[types.DashboardEntry]{
		Entries: lo.FilterMap(results, func(e *types.DashboardEntry, _ int) (types.DashboardEntry, bool) {
			if e == nil {
				return types.DashboardEntry{}, false
			}
			return *e, true
		}),
		StartedAt:  start,
		FinishedAt: time.Now(),
		scanned:    len(ids),
		failures:   compactFailures(failures),
	}

	r.dashboard.Store(snap)
	r.complete(KindDashboard, snap.state(), snap.StartedAt, snap.FinishedAt, snap.scanned, snap.failures)
	return snap, nil
}

func (r *Reconciler) inspectDashboard(ctx context.Context, id uint64) (*types.DashboardEntry, *ItemError) {
	tt, err := r.reader.SbtType(ctx, id)
	if err != nil {
		return nil, &ItemError{Key: strconv.FormatUint(id, 10), Stage: "read", Err: err}
	}
	if tt.Uri == "" {
		return nil, nil
	}

	entry := &types.DashboardEntry{
		Id:        id,
		Uri:       tt.Uri,
		Active:    tt.Active,
		Burnable:  tt.Burnable,
		MaxSupply: tt.MaxSupply,
		Minted:    tt.Minted,
	}
	if md, err := r.fetcher.FetchMetadata(ctx, tt.Uri); err == nil {
		entry.Title = md.Name
	} else {
		r.logger.Debug("dashboard title unavailable", slog.Uint64("type_id", id), slog.Any("error", err))
	}
	return entry, nil
}

// Dashboard returns the latest dashboard snapshot, or nil before the first
// completed scan.
func (r *Reconciler) Dashboard() *Snapshot[types.DashboardEntry] {
	return r.dashboard.Load()
}

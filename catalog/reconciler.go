package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/tea-network/sbtmarket/cache"
	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/metrics"
	"github.com/tea-network/sbtmarket/types"
)

// ContractReader is the read side of the SBT contract.
type ContractReader interface {
	SbtType(ctx context.Context, typeId uint64) (types.TokenType, error)
	TokensOfOwner(ctx context.Context, owner common.Address) ([]*big.Int, error)
	BalanceOf(ctx context.Context, owner common.Address) (uint64, error)
	TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (*big.Int, error)
	TokenURI(ctx context.Context, tokenId *big.Int) (string, error)
	TypeOf(ctx context.Context, tokenId *big.Int) (uint64, error)
}

// MetadataFetcher resolves a metadata location to its decoded document.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, uri string) (types.Metadata, error)
}

// Reconciler joins the on-chain type catalog with off-chain metadata and
// keeps the latest completed snapshot of each scan.
type Reconciler struct {
	cfg     *config.CatalogConfig
	reader  ContractReader
	fetcher MetadataFetcher
	logger  *slog.Logger

	states    *stateTracker
	available atomic.Pointer[Snapshot[types.CatalogEntry]]
	dashboard atomic.Pointer[Snapshot[types.DashboardEntry]]
	owned     *cache.Cache[common.Address, *Snapshot[types.OwnedToken]]
}

func New(cfg *config.CatalogConfig, reader ContractReader, fetcher MetadataFetcher, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		cfg:     cfg,
		reader:  reader,
		fetcher: fetcher,
		logger:  logger.With("component", "catalog"),
		states:  newStateTracker(),
		owned:   cache.New[common.Address, *Snapshot[types.OwnedToken]](cfg.OwnedCacheSize),
	}
}

type scanOptions struct {
	excludeTypes []uint64
}

type ScanOption func(*scanOptions)

// ExcludingTypes leaves the given type ids out of the available list.
func ExcludingTypes(typeIds []uint64) ScanOption {
	return func(o *scanOptions) {
		o.excludeTypes = typeIds
	}
}

// ScanAvailable inspects every type id in [1, MaxTypeId] and publishes the
// claimable ones in ascending id order. Per-id failures only drop that id;
// the returned error is non-nil only when ctx ends first, in which case the
// previous snapshot stays in place.
func (r *Reconciler) ScanAvailable(ctx context.Context, opts ...ScanOption) (*Snapshot[types.CatalogEntry], error) {
	var o scanOptions
	for _, opt := range opts {
		opt(&o)
	}

	prev := r.states.begin(KindAvailable)
	start := time.Now()
	ids := lo.RangeFrom(uint64(1), int(r.cfg.MaxTypeId))

	results := make([]*types.CatalogEntry, len(ids))
	failures := make([]*ItemError, len(ids))

	r.fanOut(ctx, len(ids), func(ctx context.Context, i int) {
		entry, ferr := r.inspectAvailable(ctx, ids[i], o)
		results[i], failures[i] = entry, ferr
	})

	if err := ctx.Err(); err != nil {
		r.abandon(KindAvailable, prev, err)
		return nil, err
	}

	snap := &Snapshot[types.CatalogEntry]{
		Entries: lo.FilterMap(results, func(e *types.CatalogEntry, _ int) (types.CatalogEntry, bool) {
			if e == nil {
				return types.CatalogEntry{}, false
			}
			return *e, true
		}),
		StartedAt:  start,
		FinishedAt: time.Now(),
		scanned:    len(ids),
		failures:   compactFailures(failures),
	}

	r.available.Store(snap)
	r.complete(KindAvailable, snap.state(), snap.StartedAt, snap.FinishedAt, snap.scanned, snap.failures)
	metrics.GetMetrics().Catalog.AvailableEntries.Set(float64(snap.Len()))
	return snap, nil
}

// inspectAvailable returns a nil entry and nil error when the type is skipped.
func (r *Reconciler) inspectAvailable(ctx context.Context, id uint64, o scanOptions) (*types.CatalogEntry, *ItemError) {
	key := strconv.FormatUint(id, 10)

	tt, err := r.reader.SbtType(ctx, id)
	if err != nil {
		return nil, &ItemError{Key: key, Stage: "read", Err: err}
	}
	if !tt.Created || !tt.Active || tt.Uri == "" {
		return nil, nil
	}
	if r.cfg.SupplyPolicy == config.SupplyPolicyExcludeExhausted && tt.Exhausted() {
		return nil, nil
	}
	if lo.Contains(o.excludeTypes, id) {
		return nil, nil
	}

	md, err := r.fetcher.FetchMetadata(ctx, tt.Uri)
	if err != nil {
		return nil, &ItemError{Key: key, Stage: "metadata", Err: err}
	}

	entry := types.CatalogEntry{
		TypeId:      id,
		Uri:         tt.Uri,
		Name:        md.Name,
		Description: md.Description,
		Image:       md.Image,
		ExternalUrl: md.ExternalUrl,
		Category:    md.AttrOr(r.cfg.CategoryAttribute, r.cfg.DefaultCategory),
		Model:       md.Attr(r.cfg.ModelAttribute),
		Tags:        md.Tags(),
		Minted:      tt.Minted,
		MaxSupply:   tt.MaxSupply,
		TokensLeft:  tt.TokensLeft(),
		Burnable:    tt.Burnable,
		Metadata:    md,
	}
	return &entry, nil
}

// fanOut runs inspect for indices [0, n) with at most Concurrency in flight,
// each under its own ItemTimeout. It stops launching new work once ctx ends.
func (r *Reconciler) fanOut(ctx context.Context, n int, inspect func(ctx context.Context, i int)) {
	g := new(errgroup.Group)
	g.SetLimit(r.cfg.Concurrency)
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			itemCtx, cancel := context.WithTimeout(ctx, r.cfg.ItemTimeout)
			defer cancel()
			inspect(itemCtx, i)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Reconciler) complete(kind Kind, state ScanState, started, finished time.Time, scanned int, failures []ItemError) {
	r.states.finish(kind, state, finished)

	m := metrics.GetMetrics().Catalog
	m.ScansTotal.WithLabelValues(string(kind), string(state)).Inc()
	m.ScanDuration.WithLabelValues(string(kind)).Observe(finished.Sub(started).Seconds())
	m.ItemsScanned.WithLabelValues(string(kind)).Add(float64(scanned))
	m.LastScanTimestamp.WithLabelValues(string(kind)).Set(float64(finished.Unix()))

	for _, f := range failures {
		m.ItemFailures.WithLabelValues(string(kind), f.Stage).Inc()
		r.logger.Debug("item skipped",
			slog.String("scan", string(kind)),
			slog.String("key", f.Key),
			slog.String("stage", f.Stage),
			slog.Any("error", f.Err))
	}

	r.logger.Info("scan completed",
		slog.String("scan", string(kind)),
		slog.String("state", string(state)),
		slog.Int("scanned", scanned),
		slog.Int("skipped_failures", len(failures)),
		slog.Duration("took", finished.Sub(started)))
}

// abandon restores the state a cancelled scan interrupted; its partial
// results are dropped.
func (r *Reconciler) abandon(kind Kind, prev ScanState, err error) {
	r.states.abandon(kind, prev)
	metrics.GetMetrics().Catalog.ScansTotal.WithLabelValues(string(kind), "abandoned").Inc()
	r.logger.Info("scan abandoned", slog.String("scan", string(kind)), slog.Any("error", err))
}

func compactFailures(failures []*ItemError) []ItemError {
	return lo.FilterMap(failures, func(f *ItemError, _ int) (ItemError, bool) {
		if f == nil {
			return ItemError{}, false
		}
		return *f, true
	})
}

// Available returns the latest available snapshot, or nil before the first
// completed scan.
func (r *Reconciler) Available() *Snapshot[types.CatalogEntry] {
	return r.available.Load()
}

// Entry looks up one type in the latest available snapshot.
func (r *Reconciler) Entry(typeId uint64) (types.CatalogEntry, error) {
	if snap := r.available.Load(); snap != nil {
		if e, ok := lo.Find(snap.Entries, func(e types.CatalogEntry) bool { return e.TypeId == typeId }); ok {
			return e, nil
		}
	}
	return types.CatalogEntry{}, types.NewNotFoundError(fmt.Sprintf("token type %d", typeId))
}

// Refresh runs the available and owned scans. When owned types are hidden
// the owned scan runs first so its result can filter the available list.
func (r *Reconciler) Refresh(ctx context.Context, owner common.Address) error {
	if r.cfg.HideOwnedTypes && owner != (common.Address{}) {
		owned, err := r.ScanOwned(ctx, owner)
		if err != nil {
			return err
		}
		_, err = r.ScanAvailable(ctx, ExcludingTypes(OwnedTypeIds(owned)))
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := r.ScanAvailable(gctx)
		return err
	})
	g.Go(func() error {
		_, err := r.ScanOwned(gctx, owner)
		return err
	})
	return g.Wait()
}

// State reports the scan state and last completion time of kind.
func (r *Reconciler) State(kind Kind) (ScanState, time.Time) {
	return r.states.get(kind)
}

package catalog

import (
	"context"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/types"
)

// ScanOwned lists the tokens held by owner in enumeration order. A zero
// owner yields an empty snapshot without touching the contract.
func (r *Reconciler) ScanOwned(ctx context.Context, owner common.Address) (*Snapshot[types.OwnedToken], error) {
	if owner == (common.Address{}) {
		now := time.Now()
		r.states.finish(KindOwned, StateEmpty, now)
		return &Snapshot[types.OwnedToken]{StartedAt: now, FinishedAt: now}, nil
	}

	prev := r.states.begin(KindOwned)
	start := time.Now()
	logger := r.logger.With(slog.String("owner", owner.Hex()))

	tokenIds, err := r.enumerate(ctx, owner)
	if ctx.Err() != nil {
		r.abandon(KindOwned, prev, ctx.Err())
		return nil, ctx.Err()
	}
	if err != nil {
		// nothing can be listed without the enumeration, so the owner shows
		// as holding no tokens until the next scan
		logger.Debug("token enumeration failed", slog.Any("error", err))
		snap := &Snapshot[types.OwnedToken]{
			StartedAt:  start,
			FinishedAt: time.Now(),
			failures:   []ItemError{{Key: owner.Hex(), Stage: "enumerate", Err: err}},
		}
		r.owned.Set(owner, snap)
		r.complete(KindOwned, snap.state(), snap.StartedAt, snap.FinishedAt, 0, snap.failures)
		return snap, nil
	}

	results := make([]*types.OwnedToken, len(tokenIds))
	failures := make([]*ItemError, len(tokenIds))

	r.fanOut(ctx, len(tokenIds), func(ctx context.Context, i int) {
		results[i], failures[i] = r.inspectOwned(ctx, tokenIds[i])
	})

	if err := ctx.Err(); err != nil {
		r.abandon(KindOwned, prev, err)
		return nil, err
	}

	snap := &Snapshot[types.OwnedToken]{
		Entries: lo.FilterMap(results, func(t *types.OwnedToken, _ int) (types.OwnedToken, bool) {
			if t == nil {
				return types.OwnedToken{}, false
			}
			return *t, true
		}),
		StartedAt:  start,
		FinishedAt: time.Now(),
		scanned:    len(tokenIds),
		failures:   compactFailures(failures),
	}

	r.owned.Set(owner, snap)
	r.complete(KindOwned, snap.state(), snap.StartedAt, snap.FinishedAt, snap.scanned, snap.failures)
	return snap, nil
}

func (r *Reconciler) enumerate(ctx context.Context, owner common.Address) ([]*big.Int, error) {
	if r.cfg.OwnerEnumeration == config.OwnerEnumerationTokensOfOwner {
		return r.reader.TokensOfOwner(ctx, owner)
	}

	balance, err := r.reader.BalanceOf(ctx, owner)
	if err != nil {
		return nil, err
	}
	// the index walk is sequential; indices shift if a token moves mid-scan
	tokenIds := make([]*big.Int, 0, balance)
	for i := uint64(0); i < balance; i++ {
		tokenId, err := r.reader.TokenOfOwnerByIndex(ctx, owner, i)
		if err != nil {
			return nil, err
		}
		tokenIds = append(tokenIds, tokenId)
	}
	return tokenIds, nil
}

func (r *Reconciler) inspectOwned(ctx context.Context, tokenId *big.Int) (*types.OwnedToken, *ItemError) {
	key := tokenId.String()

	uri, err := r.reader.TokenURI(ctx, tokenId)
	if err != nil {
		return nil, &ItemError{Key: key, Stage: "read", Err: err}
	}

	var typeId uint64
	if r.cfg.ResolveTokenTypes {
		if typeId, err = r.reader.TypeOf(ctx, tokenId); err != nil {
			return nil, &ItemError{Key: key, Stage: "type", Err: err}
		}
	}

	md, err := r.fetcher.FetchMetadata(ctx, uri)
	if err != nil {
		return nil, &ItemError{Key: key, Stage: "metadata", Err: err}
	}

	return &types.OwnedToken{
		TokenId:     key,
		TypeId:      typeId,
		Uri:         uri,
		Name:        md.Name,
		Description: md.Description,
		Image:       md.Image,
		Tags:        md.Tags(),
		Metadata:    md,
	}, nil
}

// Owned returns the latest owned snapshot for owner, or nil when owner has
// not been scanned or was evicted.
func (r *Reconciler) Owned(owner common.Address) *Snapshot[types.OwnedToken] {
	snap, _ := r.owned.Get(owner)
	return snap
}

// OwnsType reports whether the latest owned snapshot of owner holds a token
// of typeId. It is always false unless token types are resolved.
func (r *Reconciler) OwnsType(owner common.Address, typeId uint64) bool {
	snap := r.Owned(owner)
	if snap == nil {
		return false
	}
	return lo.Contains(OwnedTypeIds(snap), typeId)
}

// OwnedTypeIds lists the distinct resolved type ids in snap.
func OwnedTypeIds(snap *Snapshot[types.OwnedToken]) []uint64 {
	if snap == nil {
		return nil
	}
	return lo.Uniq(lo.FilterMap(snap.Entries, func(t types.OwnedToken, _ int) (uint64, bool) {
		return t.TypeId, t.TypeId != 0
	}))
}

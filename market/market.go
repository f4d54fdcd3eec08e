package market

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/metrics"
	"github.com/tea-network/sbtmarket/sentry_integration"
	"github.com/tea-network/sbtmarket/types"
)

const (
	ActionClaim      = "claim"
	ActionCreateType = "create_type"
	ActionActivate   = "activate"
	ActionDeactivate = "deactivate"
	ActionBurn       = "burn"
)

// Writer submits signed contract mutations and waits for them to be mined.
type Writer interface {
	From() common.Address
	Claim(ctx context.Context, typeId uint64) (common.Hash, error)
	CreateType(ctx context.Context, typeId uint64, uri string, maxSupply uint64, burnable bool) (common.Hash, error)
	SetTypeStatus(ctx context.Context, typeId uint64, active bool) (common.Hash, error)
	Burn(ctx context.Context, tokenId *big.Int) (common.Hash, error)
}

// Catalog is the view that is re-read after every confirmed mutation.
type Catalog interface {
	Refresh(ctx context.Context, owner common.Address) error
	ScanDashboard(ctx context.Context) (*catalog.Snapshot[types.DashboardEntry], error)
	OwnsType(owner common.Address, typeId uint64) bool
}

// URIBuilder maps a template file to the metadata URI stored on chain.
type URIBuilder interface {
	BuildURI(file string) string
}

type Options struct {
	// Admin is the only address allowed to run lifecycle actions.
	Admin common.Address
	// RejectOwnedClaims refuses a claim for a type the wallet already holds.
	RejectOwnedClaims bool
}

// Market relays claim and admin actions to the contract. At most one action
// runs per type or token id at a time; actions on different ids run freely.
type Market struct {
	session *Session
	writer  Writer
	catalog Catalog
	uris    URIBuilder
	opts    Options
	logger  *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New builds a market for the wallet behind writer. A nil writer leaves the
// session disconnected and every action is refused.
func New(writer Writer, cat Catalog, uris URIBuilder, opts Options, logger *slog.Logger) *Market {
	var address common.Address
	if writer != nil {
		address = writer.From()
	}
	return &Market{
		session:  NewSession(address),
		writer:   writer,
		catalog:  cat,
		uris:     uris,
		opts:     opts,
		logger:   logger.With("component", "market"),
		inFlight: make(map[string]struct{}),
	}
}

func (m *Market) Session() *Session {
	return m.session
}

// IsAdmin reports whether the connected wallet is the configured admin.
func (m *Market) IsAdmin() bool {
	return m.session.Connected() && m.opts.Admin != (common.Address{}) && m.session.Address() == m.opts.Admin
}

// AcknowledgePolicy records caller's answer to the claim policy of typeId.
func (m *Market) AcknowledgePolicy(caller string, typeId uint64, accepted bool) error {
	if caller == "" {
		return types.NewValidationError("caller", "required field is missing")
	}
	if typeId == 0 {
		return types.NewValidationError("type_id", "must be a positive integer")
	}
	m.session.AcknowledgePolicy(caller, typeId, accepted)
	if accepted {
		metrics.GetMetrics().Market.ConsentsRecorded.Inc()
	}
	return nil
}

// Claim mints one token of typeId to the connected wallet on behalf of
// caller, who must have acknowledged the policy of that type. Every
// precondition is checked before the contract is called; on success both
// catalog scans are re-run.
func (m *Market) Claim(ctx context.Context, caller string, typeId uint64) (*types.ActionResult, error) {
	if !m.session.Connected() {
		return nil, m.reject(ActionClaim, "not_connected", types.NewPreconditionError(ActionClaim, "wallet not connected"))
	}
	if typeId == 0 {
		return nil, m.reject(ActionClaim, "invalid_input", types.NewPreconditionError(ActionClaim, "type id must be positive"))
	}
	if !m.session.HasConsent(caller, typeId) {
		return nil, m.reject(ActionClaim, "no_consent", types.NewPreconditionError(ActionClaim, fmt.Sprintf("policy for type %d not acknowledged", typeId)))
	}
	if m.opts.RejectOwnedClaims && m.catalog.OwnsType(m.session.Address(), typeId) {
		return nil, m.reject(ActionClaim, "already_owned", types.NewAlreadyClaimedError(typeId))
	}

	res, err := m.execute(ctx, ActionClaim, typeKey(typeId), func(ctx context.Context) (common.Hash, error) {
		return m.writer.Claim(ctx, typeId)
	})
	if err != nil {
		return nil, err
	}

	m.session.AcknowledgePolicy(caller, typeId, false)
	m.refresh(ctx, false)
	return res, nil
}

// execute runs submit under the in-flight guard of key and records the
// outcome. Failures are never retried.
func (m *Market) execute(ctx context.Context, action, key string, submit func(ctx context.Context) (common.Hash, error)) (*types.ActionResult, error) {
	if !m.begin(key) {
		return nil, m.reject(action, "in_flight", types.NewConflictError(action, key))
	}
	defer m.end(key)

	span, ctx := sentry_integration.StartSentrySpan(ctx, "market."+action, "Submitting "+action+" for "+key)
	defer span.Finish()

	mm := metrics.GetMetrics().Market
	mm.ActionsInFlight.Inc()
	defer mm.ActionsInFlight.Dec()

	logger := m.logger.With(slog.String("action", action), slog.String("key", key))
	actionId := uuid.NewString()
	start := time.Now()

	hash, err := submit(ctx)
	mm.ActionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	if err != nil {
		mm.ActionsTotal.WithLabelValues(action, "failed").Inc()
		logger.Error("action failed", slog.String("action_id", actionId), slog.Any("error", err))

		txErr := types.NewTransactionError(action, err)
		metrics.TrackFailure("market", txErr)
		if ctx.Err() == nil {
			sentry_integration.CaptureExceptionWithContext(txErr, sentry.LevelError, map[string]string{
				"action":    action,
				"key":       key,
				"action_id": actionId,
			})
		}
		return nil, txErr
	}

	mm.ActionsTotal.WithLabelValues(action, "confirmed").Inc()
	logger.Info("action confirmed", slog.String("action_id", actionId), slog.String("tx_hash", hash.Hex()))
	return &types.ActionResult{
		ActionId: actionId,
		Action:   action,
		Key:      key,
		TxHash:   hash.Hex(),
	}, nil
}

// refresh re-reads the catalog after a confirmed action. The action already
// succeeded, so a failed re-read is only logged.
func (m *Market) refresh(ctx context.Context, dashboard bool) {
	if err := m.catalog.Refresh(ctx, m.session.Address()); err != nil {
		m.logger.Warn("refresh after action failed", slog.Any("error", err))
	}
	if !dashboard {
		return
	}
	if _, err := m.catalog.ScanDashboard(ctx); err != nil {
		m.logger.Warn("dashboard refresh after action failed", slog.Any("error", err))
	}
}

func (m *Market) reject(action, reason string, err error) error {
	metrics.GetMetrics().Market.RejectionsTotal.WithLabelValues(action, reason).Inc()
	m.logger.Debug("action rejected", slog.String("action", action), slog.String("reason", reason))
	return err
}

func (m *Market) begin(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inFlight[key]; busy {
		return false
	}
	m.inFlight[key] = struct{}{}
	return true
}

func (m *Market) end(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inFlight, key)
}

// InFlight reports whether an action on key has not finished yet.
func (m *Market) InFlight(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, busy := m.inFlight[key]
	return busy
}

func typeKey(typeId uint64) string {
	return fmt.Sprintf("type:%d", typeId)
}

func tokenKey(tokenId *big.Int) string {
	return "token:" + tokenId.String()
}

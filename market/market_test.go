package market

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/types"
)

var (
	userWallet  = common.HexToAddress("0x3333333333333333333333333333333333333333")
	adminWallet = common.HexToAddress("0x4444444444444444444444444444444444444444")
	txHash      = common.HexToHash("0xabc")
)

const caller = "api:0x01"

type stubWriter struct {
	from    common.Address
	err     error
	block   chan struct{}
	started chan struct{}

	mu    sync.Mutex
	calls []string
	uris  []string
}

func (w *stubWriter) record(call string) error {
	w.mu.Lock()
	w.calls = append(w.calls, call)
	w.mu.Unlock()
	if w.started != nil {
		w.started <- struct{}{}
	}
	if w.block != nil {
		<-w.block
	}
	return w.err
}

func (w *stubWriter) callCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.calls)
}

func (w *stubWriter) From() common.Address { return w.from }

func (w *stubWriter) Claim(_ context.Context, typeId uint64) (common.Hash, error) {
	return txHash, w.record("claim")
}

func (w *stubWriter) CreateType(_ context.Context, typeId uint64, uri string, maxSupply uint64, burnable bool) (common.Hash, error) {
	w.mu.Lock()
	w.uris = append(w.uris, uri)
	w.mu.Unlock()
	return txHash, w.record("createType")
}

func (w *stubWriter) SetTypeStatus(_ context.Context, typeId uint64, active bool) (common.Hash, error) {
	return txHash, w.record("setTypeStatus")
}

func (w *stubWriter) Burn(_ context.Context, tokenId *big.Int) (common.Hash, error) {
	return txHash, w.record("burn")
}

type stubCatalog struct {
	owned      map[uint64]bool
	refreshes  atomic.Int32
	dashboards atomic.Int32
}

func (c *stubCatalog) Refresh(_ context.Context, _ common.Address) error {
	c.refreshes.Add(1)
	return nil
}

func (c *stubCatalog) ScanDashboard(_ context.Context) (*catalog.Snapshot[types.DashboardEntry], error) {
	c.dashboards.Add(1)
	return &catalog.Snapshot[types.DashboardEntry]{}, nil
}

func (c *stubCatalog) OwnsType(_ common.Address, typeId uint64) bool {
	return c.owned[typeId]
}

type prefixURIs struct{}

func (prefixURIs) BuildURI(file string) string { return "https://raw.example/data/" + file }

func newTestMarket(writer Writer, cat *stubCatalog, opts Options) *Market {
	return New(writer, cat, prefixURIs{}, opts, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClaim_RequiresConnectedWallet(t *testing.T) {
	cat := &stubCatalog{}
	m := newTestMarket(nil, cat, Options{})
	m.Session().AcknowledgePolicy(caller, 3, true)

	_, err := m.Claim(context.Background(), caller, 3)
	assert.True(t, types.IsErrorType(err, types.ErrTypePrecondition))
	assert.Zero(t, cat.refreshes.Load())
}

func TestClaim_RequiresConsentForThatType(t *testing.T) {
	writer := &stubWriter{from: userWallet}
	m := newTestMarket(writer, &stubCatalog{}, Options{})
	require.NoError(t, m.AcknowledgePolicy(caller, 4, true))

	_, err := m.Claim(context.Background(), caller, 3)
	assert.True(t, types.IsErrorType(err, types.ErrTypePrecondition))
	assert.Zero(t, writer.callCount())
}

func TestClaim_SuccessRefreshesAndClearsConsent(t *testing.T) {
	writer := &stubWriter{from: userWallet}
	cat := &stubCatalog{}
	m := newTestMarket(writer, cat, Options{})
	require.NoError(t, m.AcknowledgePolicy(caller, 3, true))

	res, err := m.Claim(context.Background(), caller, 3)
	require.NoError(t, err)
	assert.Equal(t, ActionClaim, res.Action)
	assert.Equal(t, "type:3", res.Key)
	assert.Equal(t, txHash.Hex(), res.TxHash)
	assert.NotEmpty(t, res.ActionId)

	assert.Equal(t, int32(1), cat.refreshes.Load())
	assert.Zero(t, cat.dashboards.Load())
	assert.False(t, m.Session().HasConsent(caller, 3))
}

func TestClaim_FailureIsNotRetried(t *testing.T) {
	writer := &stubWriter{from: userWallet, err: errors.New("execution reverted")}
	cat := &stubCatalog{}
	m := newTestMarket(writer, cat, Options{})
	require.NoError(t, m.AcknowledgePolicy(caller, 3, true))

	_, err := m.Claim(context.Background(), caller, 3)
	assert.True(t, types.IsErrorType(err, types.ErrTypeTransaction))
	assert.Equal(t, 1, writer.callCount())
	assert.Zero(t, cat.refreshes.Load())
	assert.False(t, m.InFlight("type:3"))
	// consent survives a failed claim
	assert.True(t, m.Session().HasConsent(caller, 3))
}

func TestClaim_AlreadyOwned(t *testing.T) {
	writer := &stubWriter{from: userWallet}
	m := newTestMarket(writer, &stubCatalog{owned: map[uint64]bool{3: true}}, Options{RejectOwnedClaims: true})
	require.NoError(t, m.AcknowledgePolicy(caller, 3, true))

	_, err := m.Claim(context.Background(), caller, 3)
	assert.True(t, types.IsErrorType(err, types.ErrTypeConflict))
	assert.Zero(t, writer.callCount())
}

func TestExecute_GuardsPerKey(t *testing.T) {
	writer := &stubWriter{from: userWallet, block: make(chan struct{}), started: make(chan struct{}, 2)}
	m := newTestMarket(writer, &stubCatalog{}, Options{})
	require.NoError(t, m.AcknowledgePolicy(caller, 3, true))
	require.NoError(t, m.AcknowledgePolicy(caller, 5, true))

	done := make(chan error, 1)
	go func() {
		_, err := m.Claim(context.Background(), caller, 3)
		done <- err
	}()

	select {
	case <-writer.started:
	case <-time.After(time.Second):
		t.Fatal("claim was not submitted")
	}
	assert.True(t, m.InFlight("type:3"))

	_, err := m.Claim(context.Background(), caller, 3)
	assert.True(t, types.IsErrorType(err, types.ErrTypeConflict))

	// an unrelated id is not blocked
	other := make(chan error, 1)
	go func() {
		_, err := m.Claim(context.Background(), caller, 5)
		other <- err
	}()
	select {
	case <-writer.started:
	case <-time.After(time.Second):
		t.Fatal("claim of another type was blocked")
	}

	close(writer.block)
	require.NoError(t, <-done)
	require.NoError(t, <-other)
	assert.Equal(t, 2, writer.callCount())
}

func TestAcknowledgePolicy_RejectsZero(t *testing.T) {
	m := newTestMarket(&stubWriter{from: userWallet}, &stubCatalog{}, Options{})
	assert.True(t, types.IsErrorType(m.AcknowledgePolicy(caller, 0, true), types.ErrTypeValidation))
	assert.True(t, types.IsErrorType(m.AcknowledgePolicy("", 3, true), types.ErrTypeValidation))
}

func TestClaim_ConsentIsPerCaller(t *testing.T) {
	writer := &stubWriter{from: userWallet}
	m := newTestMarket(writer, &stubCatalog{}, Options{})
	require.NoError(t, m.AcknowledgePolicy(caller, 3, true))

	_, err := m.Claim(context.Background(), "api:0x02", 3)
	assert.True(t, types.IsErrorType(err, types.ErrTypePrecondition))
	assert.Zero(t, writer.callCount())

	_, err = m.Claim(context.Background(), caller, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, writer.callCount())
}

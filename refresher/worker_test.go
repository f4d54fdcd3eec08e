package refresher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/tea-network/sbtmarket/catalog"
	"github.com/tea-network/sbtmarket/types"
)

var owner = common.HexToAddress("0x5555555555555555555555555555555555555555")

type fakeCatalog struct {
	mu         sync.Mutex
	owners     []common.Address
	dashboards int
	refreshErr error
}

func (f *fakeCatalog) Refresh(_ context.Context, o common.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owners = append(f.owners, o)
	return f.refreshErr
}

func (f *fakeCatalog) ScanDashboard(_ context.Context) (*catalog.Snapshot[types.DashboardEntry], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dashboards++
	return &catalog.Snapshot[types.DashboardEntry]{}, nil
}

func (f *fakeCatalog) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.owners), f.dashboards
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWorkerDisabled(t *testing.T) {
	cat := &fakeCatalog{}
	worker := NewWorker(0, cat, func() common.Address { return owner }, false, discard())
	assert.False(t, worker.Enabled())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	worker.Start(ctx)

	refreshes, _ := cat.counts()
	assert.Zero(t, refreshes)
}

func TestWorkerRunsCycles(t *testing.T) {
	cat := &fakeCatalog{}
	worker := NewWorker(10*time.Millisecond, cat, func() common.Address { return owner }, true, discard())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(35 * time.Millisecond)
		cancel()
	}()
	worker.Start(ctx)

	refreshes, dashboards := cat.counts()
	assert.GreaterOrEqual(t, refreshes, 2)
	assert.Equal(t, refreshes, dashboards)
	assert.Equal(t, owner, cat.owners[0])
}

func TestWorkerSkipsDashboardWhenRefreshFails(t *testing.T) {
	cat := &fakeCatalog{refreshErr: types.NewNetworkError("eth_call", errors.New("connection refused"))}
	worker := NewWorker(time.Hour, cat, func() common.Address { return owner }, true, discard())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.runCycle(ctx)

	refreshes, dashboards := cat.counts()
	assert.Equal(t, 1, refreshes)
	assert.Zero(t, dashboards)
}

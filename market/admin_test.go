package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tea-network/sbtmarket/types"
)

func TestAdmin_RequiresAdminWallet(t *testing.T) {
	writer := &stubWriter{from: userWallet}
	m := newTestMarket(writer, &stubCatalog{}, Options{Admin: adminWallet})
	assert.False(t, m.IsAdmin())

	_, err := m.SetTypeStatus(context.Background(), 1, true)
	assert.True(t, types.IsErrorType(err, types.ErrTypeUnauthorized))
	_, err = m.Burn(context.Background(), "7")
	assert.True(t, types.IsErrorType(err, types.ErrTypeUnauthorized))
	assert.Zero(t, writer.callCount())

	// no admin configured means nobody is admin
	m = newTestMarket(&stubWriter{from: adminWallet}, &stubCatalog{}, Options{})
	assert.False(t, m.IsAdmin())
}

func TestCreateType_Preconditions(t *testing.T) {
	tests := []struct {
		name string
		req  CreateTypeRequest
	}{
		{"zero type id", CreateTypeRequest{TypeId: 0, Template: "a.json", MaxSupply: 1}},
		{"missing template", CreateTypeRequest{TypeId: 1, Template: "  ", MaxSupply: 1}},
		{"zero max supply", CreateTypeRequest{TypeId: 1, Template: "a.json", MaxSupply: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &stubWriter{from: adminWallet}
			m := newTestMarket(writer, &stubCatalog{}, Options{Admin: adminWallet})

			_, err := m.CreateType(context.Background(), tt.req)
			assert.True(t, types.IsErrorType(err, types.ErrTypePrecondition))
			assert.Zero(t, writer.callCount())
		})
	}
}

func TestCreateType_BuildsURIAndRefreshes(t *testing.T) {
	writer := &stubWriter{from: adminWallet}
	cat := &stubCatalog{}
	m := newTestMarket(writer, cat, Options{Admin: adminWallet})
	require.True(t, m.IsAdmin())

	res, err := m.CreateType(context.Background(), CreateTypeRequest{TypeId: 12, Template: "green_bond.json", MaxSupply: 100, Burnable: true})
	require.NoError(t, err)
	assert.Equal(t, "type:12", res.Key)
	assert.Equal(t, []string{"https://raw.example/data/green_bond.json"}, writer.uris)
	assert.Equal(t, int32(1), cat.refreshes.Load())
	assert.Equal(t, int32(1), cat.dashboards.Load())
}

func TestSetTypeStatus(t *testing.T) {
	writer := &stubWriter{from: adminWallet}
	m := newTestMarket(writer, &stubCatalog{}, Options{Admin: adminWallet})

	res, err := m.SetTypeStatus(context.Background(), 2, false)
	require.NoError(t, err)
	assert.Equal(t, ActionDeactivate, res.Action)

	res, err = m.SetTypeStatus(context.Background(), 2, true)
	require.NoError(t, err)
	assert.Equal(t, ActionActivate, res.Action)
	assert.Equal(t, []string{"setTypeStatus", "setTypeStatus"}, writer.calls)
}

func TestBurn(t *testing.T) {
	writer := &stubWriter{from: adminWallet}
	m := newTestMarket(writer, &stubCatalog{}, Options{Admin: adminWallet})

	_, err := m.Burn(context.Background(), "not-a-number")
	assert.True(t, types.IsErrorType(err, types.ErrTypeInvalidValue))

	res, err := m.Burn(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "token:42", res.Key)
	assert.Equal(t, []string{"burn"}, writer.calls)
}

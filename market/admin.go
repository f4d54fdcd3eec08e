package market

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tea-network/sbtmarket/contract"
	"github.com/tea-network/sbtmarket/types"
)

// CreateTypeRequest describes a new token type built from a template.
type CreateTypeRequest struct {
	TypeId    uint64 `json:"type_id"`
	Template  string `json:"template"`
	MaxSupply uint64 `json:"max_supply"`
	Burnable  bool   `json:"burnable"`
}

func (m *Market) requireAdmin(action string) error {
	if !m.session.Connected() {
		return m.reject(action, "not_connected", types.NewPreconditionError(action, "wallet not connected"))
	}
	if !m.IsAdmin() {
		return m.reject(action, "unauthorized", types.NewUnauthorizedError(action, "connected wallet is not the admin"))
	}
	return nil
}

// CreateType initializes a token type whose metadata URI points at the
// chosen template file.
func (m *Market) CreateType(ctx context.Context, req CreateTypeRequest) (*types.ActionResult, error) {
	if err := m.requireAdmin(ActionCreateType); err != nil {
		return nil, err
	}
	template := strings.TrimSpace(req.Template)
	switch {
	case req.TypeId == 0:
		return nil, m.reject(ActionCreateType, "invalid_input", types.NewPreconditionError(ActionCreateType, "type id must be positive"))
	case template == "":
		return nil, m.reject(ActionCreateType, "invalid_input", types.NewPreconditionError(ActionCreateType, "template is required"))
	case req.MaxSupply == 0:
		return nil, m.reject(ActionCreateType, "invalid_input", types.NewPreconditionError(ActionCreateType, "max supply must be positive"))
	}

	uri := m.uris.BuildURI(template)
	res, err := m.execute(ctx, ActionCreateType, typeKey(req.TypeId), func(ctx context.Context) (common.Hash, error) {
		return m.writer.CreateType(ctx, req.TypeId, uri, req.MaxSupply, req.Burnable)
	})
	if err != nil {
		return nil, err
	}
	m.refresh(ctx, true)
	return res, nil
}

// SetTypeStatus activates or deactivates a token type.
func (m *Market) SetTypeStatus(ctx context.Context, typeId uint64, active bool) (*types.ActionResult, error) {
	action := ActionDeactivate
	if active {
		action = ActionActivate
	}
	if err := m.requireAdmin(action); err != nil {
		return nil, err
	}
	if typeId == 0 {
		return nil, m.reject(action, "invalid_input", types.NewPreconditionError(action, "type id must be positive"))
	}

	res, err := m.execute(ctx, action, typeKey(typeId), func(ctx context.Context) (common.Hash, error) {
		return m.writer.SetTypeStatus(ctx, typeId, active)
	})
	if err != nil {
		return nil, err
	}
	m.refresh(ctx, true)
	return res, nil
}

// Burn destroys a token given as a decimal id.
func (m *Market) Burn(ctx context.Context, rawTokenId string) (*types.ActionResult, error) {
	if err := m.requireAdmin(ActionBurn); err != nil {
		return nil, err
	}
	tokenId, err := contract.ParseTokenId(rawTokenId)
	if err != nil {
		return nil, m.reject(ActionBurn, "invalid_input", err)
	}

	res, err := m.execute(ctx, ActionBurn, tokenKey(tokenId), func(ctx context.Context) (common.Hash, error) {
		return m.writer.Burn(ctx, tokenId)
	})
	if err != nil {
		return nil, err
	}
	m.refresh(ctx, true)
	return res, nil
}

package querier

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tea-network/sbtmarket/contract"
	"github.com/tea-network/sbtmarket/types"
	"github.com/tea-network/sbtmarket/util"
)

var rpcHeaders = map[string]string{"Content-Type": "application/json"}

func fetchEthCall(q *Querier, input []byte) requestFunc[types.JSONRPCResponse] {
	return func(ctx context.Context, endpointURL string) (*types.JSONRPCResponse, error) {
		payload := types.JSONRPCRequest{
			JSONRPC: "2.0",
			Method:  "eth_call",
			Params: []any{
				types.EthCallMsg{
					To:   q.Contract.Hex(),
					Data: "0x" + hex.EncodeToString(input),
				},
				"latest",
			},
			ID: 1,
		}
		body, err := util.Post(ctx, q.client, q.timeout, endpointURL, "", payload, rpcHeaders)
		if err != nil {
			return nil, err
		}

		res, err := extractResponse[types.JSONRPCResponse](body)
		if err != nil {
			return nil, err
		}
		if res.Error != nil {
			rpcErr := fmt.Errorf("JSON-RPC error (code: %d): %s", res.Error.Code, res.Error.Message)
			// execution errors are deterministic for a given block
			if res.Error.Code == 3 || strings.Contains(res.Error.Message, "revert") {
				return nil, permanent(rpcErr)
			}
			return nil, rpcErr
		}
		return &res, nil
	}
}

// ethCall executes a read-only contract call against the latest block.
func (q *Querier) ethCall(ctx context.Context, method string, args ...any) ([]byte, error) {
	input, err := contract.Pack(method, args...)
	if err != nil {
		return nil, err
	}

	res, err := executeWithEndpointRotation(ctx, q, method, q.JsonRpcUrls, fetchEthCall(q, input))
	if err != nil {
		captureExhausted(err, method)
		return nil, err
	}

	out, err := util.HexToBytes(res.Result)
	if err != nil {
		return nil, types.NewInternalError(fmt.Sprintf("malformed %s result", method), err)
	}
	return out, nil
}

// SbtType reads the on-chain record of one token type.
func (q *Querier) SbtType(ctx context.Context, typeId uint64) (types.TokenType, error) {
	out, err := q.ethCall(ctx, contract.MethodSbtTypes, new(big.Int).SetUint64(typeId))
	if err != nil {
		return types.TokenType{}, err
	}
	return contract.UnpackSbtType(typeId, out)
}

func (q *Querier) TokensOfOwner(ctx context.Context, owner common.Address) ([]*big.Int, error) {
	out, err := q.ethCall(ctx, contract.MethodTokensOfOwner, owner)
	if err != nil {
		return nil, err
	}
	return contract.UnpackTokenIds(out)
}

func (q *Querier) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	out, err := q.ethCall(ctx, contract.MethodBalanceOf, owner)
	if err != nil {
		return 0, err
	}
	balance, err := contract.UnpackUint256(contract.MethodBalanceOf, out)
	if err != nil {
		return 0, err
	}
	return contract.ToUint64("balance", balance)
}

func (q *Querier) TokenOfOwnerByIndex(ctx context.Context, owner common.Address, index uint64) (*big.Int, error) {
	out, err := q.ethCall(ctx, contract.MethodTokenOfOwnerByIndex, owner, new(big.Int).SetUint64(index))
	if err != nil {
		return nil, err
	}
	return contract.UnpackUint256(contract.MethodTokenOfOwnerByIndex, out)
}

func (q *Querier) TokenURI(ctx context.Context, tokenId *big.Int) (string, error) {
	out, err := q.ethCall(ctx, contract.MethodTokenURI, tokenId)
	if err != nil {
		return "", err
	}
	uri, err := contract.UnpackString(contract.MethodTokenURI, out)
	return strings.TrimSpace(uri), err
}

func (q *Querier) TypeOf(ctx context.Context, tokenId *big.Int) (uint64, error) {
	out, err := q.ethCall(ctx, contract.MethodTypeOf, tokenId)
	if err != nil {
		return 0, err
	}
	typeId, err := contract.UnpackUint256(contract.MethodTypeOf, out)
	if err != nil {
		return 0, err
	}
	return contract.ToUint64("type_id", typeId)
}

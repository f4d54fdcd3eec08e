package contract

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tea-network/sbtmarket/types"
)

// Contract method names
const (
	MethodSbtTypes            = "sbtTypes"
	MethodTokensOfOwner       = "tokensOfOwner"
	MethodBalanceOf           = "balanceOf"
	MethodTokenOfOwnerByIndex = "tokenOfOwnerByIndex"
	MethodTokenURI            = "tokenURI"
	MethodTypeOf              = "typeOf"
	MethodClaim               = "claim"
	MethodCreateType          = "createType"
	MethodSetTypeStatus       = "setTypeStatus"
	MethodBurn                = "burn"
)

const sbtABIJSON = `[
  {"type":"function","name":"sbtTypes","stateMutability":"view",
   "inputs":[{"name":"","type":"uint256"}],
   "outputs":[{"name":"uri","type":"string"},{"name":"active","type":"bool"},{"name":"maxSupply","type":"uint256"},
              {"name":"supply","type":"uint256"},{"name":"created","type":"bool"},{"name":"burnable","type":"bool"}]},
  {"type":"function","name":"tokensOfOwner","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256[]"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"tokenOfOwnerByIndex","stateMutability":"view",
   "inputs":[{"name":"owner","type":"address"},{"name":"index","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"tokenURI","stateMutability":"view",
   "inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"typeOf","stateMutability":"view",
   "inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"claim","stateMutability":"nonpayable",
   "inputs":[{"name":"typeId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"createType","stateMutability":"nonpayable",
   "inputs":[{"name":"typeId","type":"uint256"},{"name":"uri","type":"string"},{"name":"maxSupply","type":"uint256"},{"name":"burnable","type":"bool"}],"outputs":[]},
  {"type":"function","name":"setTypeStatus","stateMutability":"nonpayable",
   "inputs":[{"name":"typeId","type":"uint256"},{"name":"active","type":"bool"}],"outputs":[]},
  {"type":"function","name":"burn","stateMutability":"nonpayable",
   "inputs":[{"name":"tokenId","type":"uint256"}],"outputs":[]}
]`

var (
	parsedABI abi.ABI
	parseErr  error
	parseOnce sync.Once
)

var maxUint64 = new(big.Int).SetUint64(^uint64(0))

// ABI returns the parsed SBT contract ABI.
func ABI() (abi.ABI, error) {
	parseOnce.Do(func() {
		parsedABI, parseErr = abi.JSON(strings.NewReader(sbtABIJSON))
	})
	return parsedABI, parseErr
}

// Pack encodes calldata for method.
func Pack(method string, args ...any) ([]byte, error) {
	a, err := ABI()
	if err != nil {
		return nil, types.NewInternalError("failed to parse contract ABI", err)
	}
	input, err := a.Pack(method, args...)
	if err != nil {
		return nil, types.NewInternalError(fmt.Sprintf("failed to pack %s", method), err)
	}
	return input, nil
}

func unpack(method string, data []byte) ([]any, error) {
	a, err := ABI()
	if err != nil {
		return nil, types.NewInternalError("failed to parse contract ABI", err)
	}
	values, err := a.Unpack(method, data)
	if err != nil {
		return nil, types.NewInternalError(fmt.Sprintf("failed to unpack %s", method), err)
	}
	return values, nil
}

// ToUint64 narrows a uint256 value; ids and supplies beyond uint64 are
// treated as malformed reads.
func ToUint64(field string, v *big.Int) (uint64, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(maxUint64) > 0 {
		return 0, types.NewInvalidValueError(field, fmt.Sprint(v), "does not fit in uint64")
	}
	return v.Uint64(), nil
}

// UnpackSbtType decodes the sbtTypes(id) tuple.
func UnpackSbtType(id uint64, data []byte) (types.TokenType, error) {
	values, err := unpack(MethodSbtTypes, data)
	if err != nil {
		return types.TokenType{}, err
	}
	if len(values) != 6 {
		return types.TokenType{}, types.NewInternalError(fmt.Sprintf("sbtTypes returned %d values", len(values)), nil)
	}

	uri, ok1 := values[0].(string)
	active, ok2 := values[1].(bool)
	maxSupplyRaw, ok3 := values[2].(*big.Int)
	mintedRaw, ok4 := values[3].(*big.Int)
	created, ok5 := values[4].(bool)
	burnable, ok6 := values[5].(bool)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
		return types.TokenType{}, types.NewInternalError("unexpected sbtTypes tuple layout", nil)
	}

	maxSupply, err := ToUint64("maxSupply", maxSupplyRaw)
	if err != nil {
		return types.TokenType{}, err
	}
	minted, err := ToUint64("supply", mintedRaw)
	if err != nil {
		return types.TokenType{}, err
	}

	return types.TokenType{
		Id:        id,
		Uri:       strings.TrimSpace(uri),
		Active:    active,
		MaxSupply: maxSupply,
		Minted:    minted,
		Created:   created,
		Burnable:  burnable,
	}, nil
}

// UnpackTokenIds decodes tokensOfOwner(owner).
func UnpackTokenIds(data []byte) ([]*big.Int, error) {
	values, err := unpack(MethodTokensOfOwner, data)
	if err != nil {
		return nil, err
	}
	ids, ok := values[0].([]*big.Int)
	if !ok {
		return nil, types.NewInternalError("unexpected tokensOfOwner result", nil)
	}
	return ids, nil
}

// UnpackUint256 decodes single uint256 results (balanceOf,
// tokenOfOwnerByIndex, typeOf).
func UnpackUint256(method string, data []byte) (*big.Int, error) {
	values, err := unpack(method, data)
	if err != nil {
		return nil, err
	}
	v, ok := values[0].(*big.Int)
	if !ok {
		return nil, types.NewInternalError(fmt.Sprintf("unexpected %s result", method), nil)
	}
	return v, nil
}

// UnpackString decodes tokenURI(tokenId).
func UnpackString(method string, data []byte) (string, error) {
	values, err := unpack(method, data)
	if err != nil {
		return "", err
	}
	s, ok := values[0].(string)
	if !ok {
		return "", types.NewInternalError(fmt.Sprintf("unexpected %s result", method), nil)
	}
	return s, nil
}

// ParseTokenId parses a decimal token id.
func ParseTokenId(raw string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok || id.Sign() < 0 {
		return nil, types.NewInvalidValueError("token_id", raw, "must be a valid decimal number")
	}
	return id, nil
}

// ParseAddress validates a 0x-prefixed hex account.
func ParseAddress(raw string) (common.Address, error) {
	if !common.IsHexAddress(raw) {
		return common.Address{}, types.NewInvalidValueError("account", raw, "must be a hex address")
	}
	return common.HexToAddress(raw), nil
}

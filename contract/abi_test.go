package contract

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tea-network/sbtmarket/types"
)

func packOutputs(t *testing.T, method string, values ...any) []byte {
	t.Helper()
	a, err := ABI()
	require.NoError(t, err)
	data, err := a.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return data
}

func TestUnpackSbtType(t *testing.T) {
	data := packOutputs(t, MethodSbtTypes,
		" https://x/alpha.json ", true, big.NewInt(10), big.NewInt(2), true, false)

	tt, err := UnpackSbtType(3, data)
	require.NoError(t, err)
	assert.Equal(t, types.TokenType{
		Id:        3,
		Uri:       "https://x/alpha.json",
		Active:    true,
		MaxSupply: 10,
		Minted:    2,
		Created:   true,
	}, tt)
	assert.Equal(t, uint64(8), tt.TokensLeft())
}

func TestUnpackSbtType_SupplyOverflow(t *testing.T) {
	huge := new(big.Int).Lsh(big.NewInt(1), 70)
	data := packOutputs(t, MethodSbtTypes, "u", true, huge, big.NewInt(0), true, false)

	_, err := UnpackSbtType(1, data)
	require.Error(t, err)
	assert.True(t, types.IsErrorType(err, types.ErrTypeInvalidValue))
}

func TestUnpackSbtType_Garbage(t *testing.T) {
	_, err := UnpackSbtType(1, []byte{0x01, 0x02})
	require.Error(t, err)
}

func TestUnpackTokenIdsAndScalars(t *testing.T) {
	ids, err := UnpackTokenIds(packOutputs(t, MethodTokensOfOwner, []*big.Int{big.NewInt(42), big.NewInt(7)}))
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, "42", ids[0].String())

	v, err := UnpackUint256(MethodTypeOf, packOutputs(t, MethodTypeOf, big.NewInt(3)))
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.Int64())

	uri, err := UnpackString(MethodTokenURI, packOutputs(t, MethodTokenURI, "ipfs://cid/42.json"))
	require.NoError(t, err)
	assert.Equal(t, "ipfs://cid/42.json", uri)
}

func TestPack(t *testing.T) {
	data, err := Pack(MethodSbtTypes, big.NewInt(3))
	require.NoError(t, err)
	assert.Len(t, data, 4+32)

	owner := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	data, err = Pack(MethodTokenOfOwnerByIndex, owner, big.NewInt(0))
	require.NoError(t, err)
	assert.Len(t, data, 4+64)

	_, err = Pack(MethodClaim, "not-a-number")
	require.Error(t, err)
}

func TestParseTokenIdAndAddress(t *testing.T) {
	id, err := ParseTokenId(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, "42", id.String())

	_, err = ParseTokenId("0x2a")
	require.Error(t, err)
	_, err = ParseTokenId("-1")
	require.Error(t, err)

	addr, err := ParseAddress("0x00000000000000000000000000000000000000aa")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xaa"), addr)

	_, err = ParseAddress("tea1abc")
	require.Error(t, err)
}

func TestToUint64(t *testing.T) {
	v, err := ToUint64("x", big.NewInt(5))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), v)

	_, err = ToUint64("x", nil)
	require.Error(t, err)
	_, err = ToUint64("x", big.NewInt(-1))
	require.Error(t, err)
}

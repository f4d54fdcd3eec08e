package contract

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/tea-network/sbtmarket/config"
	"github.com/tea-network/sbtmarket/types"
)

// Backend is what the transactor needs from a node connection.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Transactor signs and submits SBT contract mutations with one key and
// waits for their receipts. Submissions are serialized so every transaction
// gets its own nonce; only the wait for receipts runs concurrently.
type Transactor struct {
	backend     Backend
	contract    *bind.BoundContract
	auth        *bind.TransactOpts
	from        common.Address
	waitTimeout time.Duration

	mu         sync.Mutex
	nonce      uint64
	nonceKnown bool
}

// Dial connects to the first configured JSON-RPC endpoint. It returns nil
// without error when no signer key is configured.
func Dial(ctx context.Context, cfg *config.Config) (*Transactor, error) {
	cc := cfg.GetChainConfig()
	key, err := cc.SignerKey()
	if err != nil || key == nil {
		return nil, err
	}

	client, err := ethclient.DialContext(ctx, cc.JsonRpcUrls[0])
	if err != nil {
		return nil, types.NewNetworkError(cc.JsonRpcUrls[0], err)
	}
	return NewTransactor(client, cc.Contract(), key, big.NewInt(cc.ChainId), cfg.GetTxWaitTimeout())
}

func NewTransactor(backend Backend, address common.Address, key *ecdsa.PrivateKey, chainId *big.Int, waitTimeout time.Duration) (*Transactor, error) {
	parsed, err := ABI()
	if err != nil {
		return nil, types.NewInternalError("failed to parse contract ABI", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, chainId)
	if err != nil {
		return nil, types.NewConfigError("failed to build transactor", err)
	}

	return &Transactor{
		backend:     backend,
		contract:    bind.NewBoundContract(address, parsed, backend, backend, backend),
		auth:        auth,
		from:        crypto.PubkeyToAddress(key.PublicKey),
		waitTimeout: waitTimeout,
	}, nil
}

// From is the address transactions are signed with.
func (t *Transactor) From() common.Address {
	return t.from
}

func (t *Transactor) Claim(ctx context.Context, typeId uint64) (common.Hash, error) {
	return t.send(ctx, MethodClaim, new(big.Int).SetUint64(typeId))
}

func (t *Transactor) CreateType(ctx context.Context, typeId uint64, uri string, maxSupply uint64, burnable bool) (common.Hash, error) {
	return t.send(ctx, MethodCreateType, new(big.Int).SetUint64(typeId), uri, new(big.Int).SetUint64(maxSupply), burnable)
}

func (t *Transactor) SetTypeStatus(ctx context.Context, typeId uint64, active bool) (common.Hash, error) {
	return t.send(ctx, MethodSetTypeStatus, new(big.Int).SetUint64(typeId), active)
}

func (t *Transactor) Burn(ctx context.Context, tokenId *big.Int) (common.Hash, error) {
	return t.send(ctx, MethodBurn, tokenId)
}

// send submits the call and blocks until it is mined. A reverted receipt is
// reported as an error carrying the transaction hash.
func (t *Transactor) send(ctx context.Context, method string, args ...any) (common.Hash, error) {
	tx, err := t.submit(ctx, method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("submit %s: %w", method, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, t.waitTimeout)
	defer cancel()

	receipt, err := bind.WaitMined(waitCtx, t.backend, tx)
	if err != nil {
		return tx.Hash(), fmt.Errorf("wait for %s receipt %s: %w", method, tx.Hash().Hex(), err)
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return tx.Hash(), fmt.Errorf("%s transaction %s reverted", method, tx.Hash().Hex())
	}
	return tx.Hash(), nil
}

// submit signs the call with the next local nonce and hands it to the node.
// The nonce is seeded from the pending state and re-read after a failed
// submission, since the node may or may not have accepted it.
func (t *Transactor) submit(ctx context.Context, method string, args ...any) (*ethtypes.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.nonceKnown {
		nonce, err := t.backend.PendingNonceAt(ctx, t.from)
		if err != nil {
			return nil, fmt.Errorf("pending nonce: %w", err)
		}
		t.nonce, t.nonceKnown = nonce, true
	}

	opts := *t.auth
	opts.Context = ctx
	opts.Nonce = new(big.Int).SetUint64(t.nonce)

	tx, err := t.contract.Transact(&opts, method, args...)
	if err != nil {
		t.nonceKnown = false
		return nil, err
	}
	t.nonce++
	return tx, nil
}

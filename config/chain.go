package config

import (
	"crypto/ecdsa"
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tea-network/sbtmarket/types"
)

type ChainConfig struct {
	ChainId          int64
	JsonRpcUrls      []string
	ContractAddress  string
	AdminAddress     string
	SignerPrivateKey string
	Environment      string
}

// Contract returns the checksummed SBT contract address.
func (cc ChainConfig) Contract() common.Address {
	return common.HexToAddress(cc.ContractAddress)
}

// Admin returns the admin address, or the zero address when unset.
func (cc ChainConfig) Admin() common.Address {
	if cc.AdminAddress == "" {
		return common.Address{}
	}
	return common.HexToAddress(cc.AdminAddress)
}

// SignerKey parses the configured signer key. It returns nil without error
// when no key is configured.
func (cc ChainConfig) SignerKey() (*ecdsa.PrivateKey, error) {
	if cc.SignerPrivateKey == "" {
		return nil, nil
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cc.SignerPrivateKey, "0x"))
	if err != nil {
		return nil, types.NewConfigError("SIGNER_PRIVATE_KEY is not a valid secp256k1 key", err)
	}
	return key, nil
}

func (cc ChainConfig) Validate() error {
	if cc.ChainId <= 0 {
		return types.NewValidationError("CHAIN_ID", "must be a positive integer")
	}

	if len(cc.JsonRpcUrls) == 0 {
		return types.NewValidationError("JSON_RPC_URL", "required field is missing")
	}
	for _, rpcUrl := range cc.JsonRpcUrls {
		if u, err := url.Parse(rpcUrl); err != nil {
			return types.NewInvalidValueError("JSON_RPC_URL", rpcUrl, fmt.Sprintf("invalid URL: %v", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			return types.NewInvalidValueError("JSON_RPC_URL", rpcUrl, fmt.Sprintf("must use http or https scheme, got: %s", u.Scheme))
		}
	}

	if len(cc.ContractAddress) == 0 {
		return types.NewValidationError("CONTRACT_ADDRESS", "required field is missing")
	}
	if !common.IsHexAddress(cc.ContractAddress) {
		return types.NewInvalidValueError("CONTRACT_ADDRESS", cc.ContractAddress, "must be a hex address")
	}

	if cc.AdminAddress != "" && !common.IsHexAddress(cc.AdminAddress) {
		return types.NewInvalidValueError("ADMIN_ADDRESS", cc.AdminAddress, "must be a hex address")
	}

	if _, err := cc.SignerKey(); err != nil {
		return err
	}

	return nil
}

// splitList parses a comma separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, strings.TrimRight(item, "/"))
		}
	}
	return out
}

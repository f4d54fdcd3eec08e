package config

import (
	"fmt"
	"time"

	"github.com/tea-network/sbtmarket/types"
)

// SupplyPolicy decides whether fully minted types stay in the available list.
type SupplyPolicy string

const (
	SupplyPolicyInclude          SupplyPolicy = "include"
	SupplyPolicyExcludeExhausted SupplyPolicy = "exclude_exhausted"
)

// OwnerEnumeration selects how owned token ids are listed by the contract.
type OwnerEnumeration string

const (
	// tokensOfOwner(address) returns every id in one call
	OwnerEnumerationTokensOfOwner OwnerEnumeration = "tokens_of_owner"
	// balanceOf(address) followed by tokenOfOwnerByIndex(address, i)
	OwnerEnumerationByIndex OwnerEnumeration = "by_index"
)

type CatalogConfig struct {
	// MaxTypeId is the inclusive scan ceiling; types above it are never seen.
	MaxTypeId         uint64
	Concurrency       int
	ItemTimeout       time.Duration
	SupplyPolicy      SupplyPolicy
	OwnerEnumeration  OwnerEnumeration
	ResolveTokenTypes bool
	HideOwnedTypes    bool
	CategoryAttribute string
	DefaultCategory   string
	ModelAttribute    string
	IpfsGateway       string
	RefreshInterval   time.Duration
	OwnedCacheSize    int
}

func (cc CatalogConfig) Validate() error {
	if cc.MaxTypeId < 1 {
		return types.NewValidationError("MAX_TYPE_ID", "must be at least 1")
	}
	if cc.MaxTypeId > MaxAllowedTypeId {
		return types.NewInvalidValueError("MAX_TYPE_ID", fmt.Sprintf("%d", cc.MaxTypeId), fmt.Sprintf("must not exceed %d", MaxAllowedTypeId))
	}
	if cc.Concurrency < 1 {
		return types.NewValidationError("SCAN_CONCURRENCY", "must be at least 1")
	}
	if cc.ItemTimeout <= 0 {
		return types.NewValidationError("ITEM_TIMEOUT", "must be positive")
	}

	switch cc.SupplyPolicy {
	case SupplyPolicyInclude, SupplyPolicyExcludeExhausted:
	default:
		return types.NewInvalidValueError("SUPPLY_POLICY", string(cc.SupplyPolicy), "must be 'include' or 'exclude_exhausted'")
	}

	switch cc.OwnerEnumeration {
	case OwnerEnumerationTokensOfOwner, OwnerEnumerationByIndex:
	default:
		return types.NewInvalidValueError("OWNER_ENUMERATION", string(cc.OwnerEnumeration), "must be 'tokens_of_owner' or 'by_index'")
	}

	if cc.HideOwnedTypes && !cc.ResolveTokenTypes {
		return types.NewValidationError("HIDE_OWNED_TYPES", "requires RESOLVE_TOKEN_TYPES")
	}
	if cc.CategoryAttribute == "" {
		return types.NewValidationError("CATEGORY_ATTRIBUTE", "required field is missing")
	}
	if cc.RefreshInterval < 0 {
		return types.NewValidationError("REFRESH_INTERVAL", "must be non-negative")
	}
	if cc.OwnedCacheSize < 1 {
		return types.NewValidationError("OWNED_CACHE_SIZE", "must be at least 1")
	}
	return nil
}

type TemplateConfig struct {
	Repo        string
	Branch      string
	Path        string
	GithubToken string
	CacheTTL    time.Duration
}

func (tc TemplateConfig) Validate() error {
	if tc.Repo == "" {
		return types.NewValidationError("TEMPLATE_REPO", "required field is missing")
	}
	if tc.Branch == "" {
		return types.NewValidationError("TEMPLATE_BRANCH", "required field is missing")
	}
	if tc.CacheTTL <= 0 {
		return types.NewValidationError("TEMPLATE_CACHE_TTL", "must be positive")
	}
	return nil
}

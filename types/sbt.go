package types

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType is the on-chain record returned by sbtTypes(id).
type TokenType struct {
	Id        uint64 `json:"id"`
	Uri       string `json:"uri"`
	Active    bool   `json:"active"`
	MaxSupply uint64 `json:"max_supply"`
	Minted    uint64 `json:"minted"`
	Created   bool   `json:"created"`
	Burnable  bool   `json:"burnable"`
}

// Exhausted reports whether every unit of the type has been minted.
func (t TokenType) Exhausted() bool {
	return t.Minted >= t.MaxSupply
}

// TokensLeft is the remaining claimable supply, zero once exhausted.
func (t TokenType) TokensLeft() uint64 {
	if t.Exhausted() {
		return 0
	}
	return t.MaxSupply - t.Minted
}

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     any    `json:"value"`
}

// ValueString renders the attribute value the way it is displayed;
// metadata authors use strings, numbers and booleans interchangeably.
func (a Attribute) ValueString() string {
	switch v := a.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Metadata is the off-chain JSON document a token type URI points at.
type Metadata struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Image       string      `json:"image"`
	ExternalUrl string      `json:"external_url,omitempty"`
	Attributes  []Attribute `json:"attributes,omitempty"`
}

// Attr returns the value of the first attribute whose trait type matches
// name case-insensitively, or "" when there is none.
func (m Metadata) Attr(name string) string {
	for _, attr := range m.Attributes {
		if strings.EqualFold(attr.TraitType, name) {
			return attr.ValueString()
		}
	}
	return ""
}

// AttrOr is Attr with a fallback for missing or empty values.
func (m Metadata) AttrOr(name, fallback string) string {
	if v := m.Attr(name); v != "" {
		return v
	}
	return fallback
}

// Tags splits the comma separated "tags" (or "tag") attribute.
func (m Metadata) Tags() []string {
	raw := m.Attr("tags")
	if raw == "" {
		raw = m.Attr("tag")
	}
	if raw == "" {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CatalogEntry is a claimable token type joined with its metadata.
type CatalogEntry struct {
	TypeId      uint64   `json:"type_id"`
	Uri         string   `json:"uri"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	ExternalUrl string   `json:"external_url,omitempty"`
	Category    string   `json:"category"`
	Model       string   `json:"model,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Minted      uint64   `json:"minted"`
	MaxSupply   uint64   `json:"max_supply"`
	TokensLeft  uint64   `json:"tokens_left"`
	Burnable    bool     `json:"burnable"`
	Metadata    Metadata `json:"metadata"`
}

// OwnedToken is a token held by a wallet together with its metadata.
// TypeId is zero when the token type was not resolved.
type OwnedToken struct {
	TokenId     string   `json:"token_id"`
	TypeId      uint64   `json:"type_id,omitempty"`
	Uri         string   `json:"uri"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags,omitempty"`
	Metadata    Metadata `json:"metadata"`
}

// DashboardEntry is one row of the admin view over every initialized type.
type DashboardEntry struct {
	Id        uint64 `json:"id"`
	Uri       string `json:"uri"`
	Title     string `json:"title"`
	Active    bool   `json:"active"`
	Burnable  bool   `json:"burnable"`
	MaxSupply uint64 `json:"max_supply"`
	Minted    uint64 `json:"minted"`
}

// Template is a selectable metadata file for new token types.
type Template struct {
	File        string `json:"file"`
	DisplayName string `json:"display_name"`
	Uri         string `json:"uri"`
}

// ActionResult describes a confirmed contract mutation.
type ActionResult struct {
	ActionId string `json:"action_id"`
	Action   string `json:"action"`
	Key      string `json:"key"`
	TxHash   string `json:"tx_hash"`
}

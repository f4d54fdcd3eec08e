package sbt

import (
	"time"

	"github.com/tea-network/sbtmarket/types"
)

type TypesResponse struct {
	Types      []types.CatalogEntry `json:"types" extensions:"x-order:0"`
	ScannedAt  time.Time            `json:"scanned_at" extensions:"x-order:1"`
	TotalCount int                  `json:"total_count" extensions:"x-order:2"`
}

type TypeResponse struct {
	Type types.CatalogEntry `json:"type"`
}

type TokensResponse struct {
	Account    string             `json:"account" extensions:"x-order:0"`
	Tokens     []types.OwnedToken `json:"tokens" extensions:"x-order:1"`
	ScannedAt  time.Time          `json:"scanned_at" extensions:"x-order:2"`
	TotalCount int                `json:"total_count" extensions:"x-order:3"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}

type ConsentRequest struct {
	Accepted bool `json:"accepted"`
}

type ConsentResponse struct {
	TypeId   uint64 `json:"type_id"`
	Accepted bool   `json:"accepted"`
}

type ActionResponse struct {
	Result types.ActionResult `json:"result"`
}

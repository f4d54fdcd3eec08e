package status

import "github.com/tea-network/sbtmarket/catalog"

type StatusResponse struct {
	Version    string         `json:"version" extensions:"x-order:0"`
	CommitHash string         `json:"commit_hash" extensions:"x-order:1"`
	ChainId    int64          `json:"chain_id" extensions:"x-order:2"`
	Contract   string         `json:"contract" extensions:"x-order:3"`
	Wallet     string         `json:"wallet,omitempty" extensions:"x-order:4"`
	Connected  bool           `json:"connected" extensions:"x-order:5"`
	Admin      bool           `json:"admin" extensions:"x-order:6"`
	Scans      catalog.Status `json:"scans" extensions:"x-order:7"`
}

package admin

import (
	"time"

	"github.com/tea-network/sbtmarket/types"
)

type DashboardResponse struct {
	Types      []types.DashboardEntry `json:"types" extensions:"x-order:0"`
	ScannedAt  time.Time              `json:"scanned_at" extensions:"x-order:1"`
	TotalCount int                    `json:"total_count" extensions:"x-order:2"`
}

type TemplatesResponse struct {
	Templates []types.Template `json:"templates"`
}

type PreviewResponse struct {
	File     string         `json:"file"`
	Uri      string         `json:"uri"`
	Metadata types.Metadata `json:"metadata"`
}

type ActionResponse struct {
	Result types.ActionResult `json:"result"`
}

package catalog

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type ScanStatus struct {
	State      ScanState  `json:"state"`
	Entries    int        `json:"entries"`
	LastScanAt *time.Time `json:"last_scan_at,omitempty"`
}

// Status summarizes the available and dashboard scans and the owned scan
// of owner. CachedAccounts counts the accounts with an owned snapshot.
type Status struct {
	Available      ScanStatus `json:"available"`
	Owned          ScanStatus `json:"owned"`
	Dashboard      ScanStatus `json:"dashboard"`
	CachedAccounts int        `json:"cached_accounts"`
}

func (r *Reconciler) Status(owner common.Address) Status {
	return Status{
		Available:      r.scanStatus(KindAvailable, r.Available().Len()),
		Owned:          r.scanStatus(KindOwned, r.Owned(owner).Len()),
		Dashboard:      r.scanStatus(KindDashboard, r.Dashboard().Len()),
		CachedAccounts: r.owned.Len(),
	}
}

func (r *Reconciler) scanStatus(kind Kind, entries int) ScanStatus {
	state, last := r.State(kind)
	status := ScanStatus{State: state, Entries: entries}
	if !last.IsZero() {
		status.LastScanAt = &last
	}
	return status
}

package catalog

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/tea-network/sbtmarket/types"
)

// FilterByTags keeps the entries carrying every wanted tag. Tags match
// exactly; no wanted tags keeps everything.
func FilterByTags[T any](entries []T, wanted []string, tagsOf func(T) []string) []T {
	if len(wanted) == 0 {
		return entries
	}
	return lo.Filter(entries, func(e T, _ int) bool {
		return lo.Every(tagsOf(e), wanted)
	})
}

func CatalogEntryTags(e types.CatalogEntry) []string { return e.Tags }
func OwnedTokenTags(t types.OwnedToken) []string     { return t.Tags }

// Tags is the sorted union of the tags found on the available snapshot and
// on the owned snapshot of owner. Scans that have not run contribute
// nothing.
func (r *Reconciler) Tags(owner common.Address) []string {
	var all []string
	if snap := r.Available(); snap != nil {
		all = append(all, lo.FlatMap(snap.Entries, func(e types.CatalogEntry, _ int) []string { return CatalogEntryTags(e) })...)
	}
	if snap := r.Owned(owner); snap != nil {
		all = append(all, lo.FlatMap(snap.Entries, func(t types.OwnedToken, _ int) []string { return OwnedTokenTags(t) })...)
	}

	tags := lo.Uniq(all)
	slices.Sort(tags)
	return tags
}

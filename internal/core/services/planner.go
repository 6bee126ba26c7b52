package services

import (
	"sort"

	"github.com/custodia-labs/getlicense/internal/core/domain"
)

// Plan diffs a remote listing against the cache index of one collection.
//
// Entries without a cached record, with a different hash or with no hash
// at all are fetched. Unchanged entries are retained, or rekeyed when the
// record's declared key no longer matches its index key. Records whose
// filename is not listed are deleted. When the listing repeats a name the
// later entry wins; Order keeps the listing sequence for the merge.
func Plan(remote []domain.RemoteEntry, index map[string]domain.Record) domain.SyncPlan {
	keys := sortedKeys(index)

	// Sorted so a filename indexed twice resolves to the same record.
	byFilename := make(map[string]domain.Record, len(index))
	for _, key := range keys {
		rec := index[key]
		rec.Key = key
		byFilename[rec.Filename] = rec
	}

	last := make(map[string]int, len(remote))
	for i, entry := range remote {
		last[entry.Name] = i
	}

	plan := domain.SyncPlan{
		Retain: []string{},
		Fetch:  []domain.RemoteEntry{},
		Delete: []string{},
		Rekey:  []domain.Rekey{},
		Order:  []string{},
	}

	for i, entry := range remote {
		if last[entry.Name] != i {
			continue
		}
		plan.Order = append(plan.Order, entry.Name)
		rec, ok := byFilename[entry.Name]
		switch {
		case !ok, entry.ContentHash == "", entry.ContentHash != rec.ContentHash:
			plan.Fetch = append(plan.Fetch, entry)
		case rec.DeclaredKey() != rec.Key:
			plan.Rekey = append(plan.Rekey, domain.Rekey{OldKey: rec.Key, NewKey: rec.DeclaredKey()})
		default:
			plan.Retain = append(plan.Retain, rec.Key)
		}
	}

	for _, key := range keys {
		if _, listed := last[index[key].Filename]; !listed {
			plan.Delete = append(plan.Delete, key)
		}
	}

	sort.Strings(plan.Retain)
	return plan
}

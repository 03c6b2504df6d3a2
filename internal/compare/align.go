package compare

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/gocompare/internal/types"
)

// Alignment holds both datasets indexed by synthetic key, plus the unioned
// key and column sets the differ walks. The indexes preserve first-occurrence
// order; rows that shared a key with an earlier row are counted in the
// Dropped fields.
type Alignment struct {
	Main      *orderedmap.OrderedMap[string, types.Row]
	Secondary *orderedmap.OrderedMap[string, types.Row]

	// UnionKeys enumerates every surviving key from either side exactly
	// once, sorted for a stable report order.
	UnionKeys []string

	// UnionColumns lists the main dataset's columns in their original
	// order followed by any secondary-only columns.
	UnionColumns []string

	DroppedMain      int
	DroppedSecondary int
}

// Align indexes both datasets by their synthetic keys and computes the key
// and column unions. Both datasets must already share one column name space,
// meaning the secondary side has been renamed through the column mapping.
func Align(main, secondary *types.Dataset, keyColumns []string, caseSensitive bool) *Alignment {
	a := &Alignment{}
	a.Main, a.DroppedMain = index(main, keyColumns, caseSensitive)
	a.Secondary, a.DroppedSecondary = index(secondary, keyColumns, caseSensitive)

	a.UnionKeys = unionKeys(a.Main, a.Secondary)
	a.UnionColumns = unionColumns(main.Columns, secondary.Columns)
	return a
}

// index keys every row of the dataset, keeping only the first row seen for
// each key. Duplicates are dropped without error.
func index(ds *types.Dataset, keyColumns []string, caseSensitive bool) (*orderedmap.OrderedMap[string, types.Row], int) {
	idx := orderedmap.NewOrderedMap[string, types.Row]()
	dropped := 0
	for _, row := range ds.Rows {
		key := BuildKey(row, keyColumns, caseSensitive)
		if _, exists := idx.Get(key); exists {
			dropped++
			continue
		}
		idx.Set(key, row)
	}
	return idx, dropped
}

func unionKeys(main, secondary *orderedmap.OrderedMap[string, types.Row]) []string {
	keys := main.Keys()
	for el := secondary.Front(); el != nil; el = el.Next() {
		if _, exists := main.Get(el.Key); !exists {
			keys = append(keys, el.Key)
		}
	}
	sort.Strings(keys)
	return keys
}

func unionColumns(main, secondary []string) []string {
	columns := make([]string, len(main), len(main)+len(secondary))
	copy(columns, main)

	seen := make(map[string]bool, len(main))
	for _, c := range main {
		seen[c] = true
	}
	for _, c := range secondary {
		if !seen[c] {
			columns = append(columns, c)
			seen[c] = true
		}
	}
	return columns
}

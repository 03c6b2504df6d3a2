package compare

import (
	"strings"

	"github.com/dbsmedya/gocompare/internal/types"
)

// KeySeparator joins the parts of a synthetic row key.
const KeySeparator = "|"

// BuildKey derives the synthetic key for a row from its key columns. Each
// part is the textual form of the column value, so a missing or null cell
// contributes the "None" sentinel, and all parts are case folded when the
// comparison is case insensitive. Same row and key spec always yield the
// same key.
func BuildKey(row types.Row, keyColumns []string, caseSensitive bool) string {
	parts := make([]string, len(keyColumns))
	for i, column := range keyColumns {
		v := row.Value(column)
		if caseSensitive {
			parts[i] = v.String()
		} else {
			parts[i] = v.Fold()
		}
	}
	return strings.Join(parts, KeySeparator)
}

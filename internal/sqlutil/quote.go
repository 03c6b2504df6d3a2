// Package sqlutil provides SQL statement helpers for GoCompare.
package sqlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// QuoteIdentifier quotes a MySQL identifier (table name, column name) with
// backticks. It escapes any existing backticks by doubling them.
// Example: "my_table" -> "`my_table`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// validIdentifierRegex restricts identifiers to alphanumeric and underscore.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks if a name is a valid MySQL identifier.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe quotes a MySQL identifier after validating it.
// Returns an error if the identifier contains invalid characters. Use this
// when identifiers come from configuration or other untrusted sources.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// BuildSelect assembles a SELECT statement over validated identifiers.
// An empty column list selects every column.
func BuildSelect(table string, columns []string) (string, error) {
	quotedTable, err := QuoteIdentifierSafe(table)
	if err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "SELECT * FROM " + quotedTable, nil
	}

	quoted := make([]string, len(columns))
	for i, column := range columns {
		q, err := QuoteIdentifierSafe(column)
		if err != nil {
			return "", err
		}
		quoted[i] = q
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quotedTable), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}

package source

import (
	"context"
	"fmt"

	"github.com/dbsmedya/gocompare/internal/database"
	"github.com/dbsmedya/gocompare/internal/sqlutil"
	"github.com/dbsmedya/gocompare/internal/types"
)

// TableLoader reads a whole database table into a dataset.
type TableLoader struct {
	db    *database.Manager
	table string
}

// NewTableLoader creates a loader for a database table. Filters may
// reference any column, so the query never projects; selection happens
// after filtering like it does for files.
func NewTableLoader(db *database.Manager, table string) *TableLoader {
	return &TableLoader{db: db, table: table}
}

// Describe names the source table.
func (l *TableLoader) Describe() string {
	return fmt.Sprintf("table %s", l.table)
}

// Load reads every row of the table.
func (l *TableLoader) Load(ctx context.Context) (*types.Dataset, error) {
	if l.db == nil || l.db.DB == nil {
		return nil, &LoadError{Source: l.table, Err: fmt.Errorf("database is not connected")}
	}

	query, err := sqlutil.BuildSelect(l.table, nil)
	if err != nil {
		return nil, &LoadError{Source: l.table, Err: err}
	}

	rows, err := l.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, &LoadError{Source: l.table, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &LoadError{Source: l.table, Err: err}
	}

	ds := types.NewDataset(columns)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, &LoadError{Source: l.table, Err: err}
		}

		row := make(types.Row, len(columns))
		for i, column := range columns {
			row[column] = types.FromAny(values[i])
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &LoadError{Source: l.table, Err: err}
	}

	return ds, nil
}

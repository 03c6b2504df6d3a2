package source

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gocompare/internal/database"
	"github.com/dbsmedya/gocompare/internal/types"
)

func newMockManager(t *testing.T) (*database.Manager, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	m := database.NewManager(nil)
	m.DB = db
	return m, mock
}

func TestTableLoaderLoad(t *testing.T) {
	m, mock := newMockManager(t)

	created := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT \\* FROM `people`").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(int64(1), "Bob", created).
			AddRow(int64(2), nil, nil),
	)

	ds, err := NewTableLoader(m, "people").Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "created_at"}, ds.Columns)
	require.Equal(t, 2, ds.NumRows())

	assert.Equal(t, "1", ds.Rows[0].Value("id").String())
	assert.Equal(t, types.KindNumber, ds.Rows[0].Value("id").Kind())
	assert.Equal(t, "Bob", ds.Rows[0].Value("name").String())
	assert.Equal(t, "2025-03-14 09:30:00", ds.Rows[0].Value("created_at").String())
	assert.True(t, ds.Rows[1].Value("name").IsNull())
	assert.True(t, ds.Rows[1].Value("created_at").IsNull())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableLoaderByteSlicesBecomeText(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectQuery("SELECT \\* FROM `people`").WillReturnRows(
		sqlmock.NewRows([]string{"name"}).AddRow([]byte("Bob")),
	)

	ds, err := NewTableLoader(m, "people").Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, ds.NumRows())
	assert.Equal(t, types.KindText, ds.Rows[0].Value("name").Kind())
	assert.Equal(t, "Bob", ds.Rows[0].Value("name").String())
}

func TestTableLoaderQueryError(t *testing.T) {
	m, mock := newMockManager(t)

	mock.ExpectQuery("SELECT \\* FROM `people`").WillReturnError(fmt.Errorf("table gone"))

	_, err := NewTableLoader(m, "people").Load(context.Background())
	require.Error(t, err)

	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "people", lerr.Source)
	assert.Contains(t, err.Error(), "table gone")
}

func TestTableLoaderInvalidTableName(t *testing.T) {
	m, _ := newMockManager(t)

	_, err := NewTableLoader(m, "people; DROP TABLE people--").Load(context.Background())
	require.Error(t, err)

	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, err.Error(), "invalid identifier")
}

func TestTableLoaderNotConnected(t *testing.T) {
	_, err := NewTableLoader(nil, "people").Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is not connected")

	_, err = NewTableLoader(database.NewManager(nil), "people").Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is not connected")
}

func TestTableLoaderDescribe(t *testing.T) {
	assert.Equal(t, "table people", NewTableLoader(nil, "people").Describe())
}

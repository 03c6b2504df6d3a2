package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/gocompare/internal/types"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVLoaderLoad(t *testing.T) {
	path := writeTempFile(t, "data.csv", "id,name,amount\n1,Bob,100.5\n2,Alice,\n")

	ds, err := NewCSVLoader(path, "").Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "amount"}, ds.Columns)
	require.Equal(t, 2, ds.NumRows())

	assert.Equal(t, types.KindNumber, ds.Rows[0].Value("id").Kind())
	assert.Equal(t, "Bob", ds.Rows[0].Value("name").String())
	assert.Equal(t, "100.5", ds.Rows[0].Value("amount").String())
	assert.True(t, ds.Rows[1].Value("amount").IsNull())
}

func TestCSVLoaderCustomDelimiter(t *testing.T) {
	path := writeTempFile(t, "data.csv", "id;name\n1;Bob\n")

	ds, err := NewCSVLoader(path, ";").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Columns)
	require.Equal(t, 1, ds.NumRows())
	assert.Equal(t, "Bob", ds.Rows[0].Value("name").String())
}

func TestCSVLoaderTabDelimiter(t *testing.T) {
	path := writeTempFile(t, "data.tsv", "id\tname\n1\tBob\n")

	ds, err := NewCSVLoader(path, "\t").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Columns)
	assert.Equal(t, 1, ds.NumRows())
}

func TestCSVLoaderPadsShortRecords(t *testing.T) {
	path := writeTempFile(t, "data.csv", "id,name,amount\n1,Bob\n")

	ds, err := NewCSVLoader(path, "").Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, ds.NumRows())
	assert.True(t, ds.Rows[0].Value("amount").IsNull())
}

func TestCSVLoaderTrimsHeaderNames(t *testing.T) {
	path := writeTempFile(t, "data.csv", " id , name \n1,Bob\n")

	ds, err := NewCSVLoader(path, "").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Columns)
}

func TestCSVLoaderHeaderOnly(t *testing.T) {
	path := writeTempFile(t, "data.csv", "id,name\n")

	ds, err := NewCSVLoader(path, "").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ds.NumRows())
}

func TestCSVLoaderErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewCSVLoader(filepath.Join(t.TempDir(), "absent.csv"), "").Load(context.Background())
		require.Error(t, err)

		var lerr *LoadError
		require.ErrorAs(t, err, &lerr)
		assert.Contains(t, lerr.Source, "absent.csv")
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeTempFile(t, "empty.csv", "")
		_, err := NewCSVLoader(path, "").Load(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no header row")
	})
}

func TestCSVLoaderDescribe(t *testing.T) {
	l := NewCSVLoader("/data/input.csv", "")
	assert.Equal(t, "file /data/input.csv", l.Describe())
}

package frame

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows([]string{"id", "name", "total"}).
		AddRow(1, []byte("alice"), 10.5).
		AddRow(2, []byte("bob"), 20.0).
		AddRow(3, nil, 3.25)
	mock.ExpectQuery("SELECT id, name, total FROM orders").WillReturnRows(rows)

	f, err := FromSQL(context.Background(), db, "SELECT id, name, total FROM orders")
	require.NoError(t, err)

	assert.Equal(t, 3, f.Len())
	assert.Equal(t, []string{"id", "name", "total"}, f.ColumnNames())
	assert.Equal(t, map[string]Dtype{
		"id":    DtypeInt,
		"name":  DtypeString,
		"total": DtypeFloat,
	}, f.Dtypes())

	// Driver []byte values are converted to strings.
	v, err := f.Value(0, "name")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	// NULL stays a missing value.
	v, err = f.Value(2, "name")
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFromSQLEmptyResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT id FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	f, err := FromSQL(context.Background(), db, "SELECT id FROM orders")
	require.NoError(t, err)
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, []string{"id"}, f.ColumnNames())
}

func TestFromSQLQueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT id FROM orders").
		WillReturnError(fmt.Errorf("connection failed"))

	_, err = FromSQL(context.Background(), db, "SELECT id FROM orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query failed")
}

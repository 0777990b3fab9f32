package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/volunteer-board/pkg/kvstore"
	"github.com/jakechorley/volunteer-board/pkg/kvstore/kvstoretest"
)

func TestStore(t *testing.T) {
	kvstoretest.Run(t, func(t *testing.T) kvstore.Store {
		s, err := Open(filepath.Join(t.TempDir(), "volunteer.db"))
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "volunteer.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "events", []byte(`[{"id":1}]`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "events")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(got))
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestNew_MigrationFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnError(errors.New("disk I/O error"))

	_, err = New(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create kv table")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WriteFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO kv").
		WithArgs("events", `[]`, sqlmock.AnyArg()).
		WillReturnError(errors.New("database is locked"))

	s, err := New(db)
	require.NoError(t, err)

	err = s.Set(context.Background(), "events", []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ReadFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT value FROM kv").
		WithArgs("events").
		WillReturnError(errors.New("no such table: kv"))

	s, err := New(db)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "events")
	require.Error(t, err)
	assert.NotErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestStore_MissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS kv").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT value FROM kv").
		WithArgs("managers").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	s, err := New(db)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "managers")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

package kvstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/volunteer-board/pkg/kvstore"
	"github.com/jakechorley/volunteer-board/pkg/kvstore/kvstoretest"
)

func TestMemory(t *testing.T) {
	kvstoretest.Run(t, func(t *testing.T) kvstore.Store {
		return kvstore.NewMemory()
	})
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	m := kvstore.NewMemory()

	value := []byte(`[1]`)
	require.NoError(t, m.Set(ctx, "events", value))
	value[1] = '2'

	got, err := m.Get(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
	assert.Equal(t, []string{"events"}, m.Keys())
}

func TestFile(t *testing.T) {
	kvstoretest.Run(t, func(t *testing.T) kvstore.Store {
		s, err := kvstore.NewFile(filepath.Join(t.TempDir(), "data", "store.json"))
		require.NoError(t, err)
		return s
	})
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	first, err := kvstore.NewFile(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "managers", []byte(`[{"email":"manager@example.com"}]`)))
	require.NoError(t, first.Close())

	second, err := kvstore.NewFile(path)
	require.NoError(t, err)
	got, err := second.Get(ctx, "managers")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"email":"manager@example.com"}]`, string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFile_RejectsInvalidJSON(t *testing.T) {
	s, err := kvstore.NewFile(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	err = s.Set(context.Background(), "events", []byte(`not json`))
	assert.Error(t, err)
}

func TestNewFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	_, err := kvstore.NewFile(path)
	assert.Error(t, err)
}

func TestNewFile_EmptyPath(t *testing.T) {
	_, err := kvstore.NewFile("")
	assert.Error(t, err)
}

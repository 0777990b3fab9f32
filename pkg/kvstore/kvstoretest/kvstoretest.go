// Package kvstoretest holds the behaviour every kvstore.Store backend must share.
package kvstoretest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/volunteer-board/pkg/kvstore"
)

// Run exercises a fresh store returned by newStore
func Run(t *testing.T, newStore func(t *testing.T) kvstore.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Get(ctx, "volunteers")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "events", []byte(`[{"id":1,"title":"Beach Cleanup"}]`)))

		got, err := s.Get(ctx, "events")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":1,"title":"Beach Cleanup"}]`, string(got))
	})

	t.Run("set replaces whole value", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "events", []byte(`[1,2,3]`)))
		require.NoError(t, s.Set(ctx, "events", []byte(`[]`)))

		got, err := s.Get(ctx, "events")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "profile_desc", []byte(`{"a@example.com":"hi"}`)))
		require.NoError(t, s.Set(ctx, "profile_pics", []byte(`{}`)))

		got, err := s.Get(ctx, "profile_desc")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a@example.com":"hi"}`, string(got))

		_, err = s.Get(ctx, "managers")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	})

	t.Run("unicode survives", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "profile_desc", []byte(`{"é@example.com":"Ça va ✓"}`)))

		got, err := s.Get(ctx, "profile_desc")
		require.NoError(t, err)
		assert.JSONEq(t, `{"é@example.com":"Ça va ✓"}`, string(got))
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := newStore(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		assert.Error(t, s.Set(cctx, "events", []byte(`[]`)))
	})
}
